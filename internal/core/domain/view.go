package domain

import "strings"

// View identifies the top-level screen currently rendered by the client.
type View string

const (
	ViewLanding   View = "landing"
	ViewLogin     View = "login"
	ViewSignup    View = "signup"
	ViewDashboard View = "dashboard"
	ViewDataForm  View = "dataform"
	ViewReport    View = "report"
	ViewTips      View = "tips"
	ViewAnalytics View = "analytics"
	ViewGames     View = "games"

	DefaultView = ViewLanding
)

// viewAliases maps legacy tags onto their canonical view.
var viewAliases = map[string]View{
	"home": ViewDashboard,
}

var knownViews = map[View]bool{
	ViewLanding:   true,
	ViewLogin:     true,
	ViewSignup:    true,
	ViewDashboard: true,
	ViewDataForm:  true,
	ViewReport:    true,
	ViewTips:      true,
	ViewAnalytics: true,
	ViewGames:     true,
}

// AllViews returns every canonical view in a stable order.
func AllViews() []View {
	return []View{
		ViewLanding, ViewLogin, ViewSignup, ViewDashboard, ViewDataForm,
		ViewReport, ViewTips, ViewAnalytics, ViewGames,
	}
}

// ParseView resolves a view tag, accepting aliases. The boolean is false for unknown tags.
func ParseView(tag string) (View, bool) {
	tag = strings.TrimSpace(tag)
	if alias, ok := viewAliases[tag]; ok {
		return alias, true
	}
	v := View(tag)
	if knownViews[v] {
		return v, true
	}
	return "", false
}

// PathForView returns the canonical location path of a view.
func PathForView(v View) string {
	if v == ViewLanding {
		return "/"
	}
	if canonical, ok := ParseView(string(v)); ok {
		if canonical == ViewLanding {
			return "/"
		}
		return "/" + string(canonical)
	}
	return "/"
}

// ViewForPath maps a location path to a view. It never fails: anything it
// does not recognise resolves to DefaultView.
func ViewForPath(path string) View {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	p := strings.Trim(path, "/")
	if p == "" {
		return DefaultView
	}
	if v, ok := ParseView(p); ok {
		return v
	}
	return DefaultView
}
