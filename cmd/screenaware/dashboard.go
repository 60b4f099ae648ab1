package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/screenaware/screenaware/internal/config"
	"github.com/screenaware/screenaware/internal/core/domain"
	"github.com/screenaware/screenaware/internal/core/services"
)

var dashboardActions = []domain.View{
	domain.ViewDataForm,
	domain.ViewReport,
	domain.ViewTips,
	domain.ViewAnalytics,
	domain.ViewGames,
}

// apiClient talks to the account endpoints of the API server.
type apiClient struct {
	baseURL string
	http    *http.Client
}

type loginResponse struct {
	Token string `json:"token"`
	User  struct {
		domain.User
		DisplayName string `json:"displayName"`
	} `json:"user"`
}

func (c *apiClient) login(ctx context.Context, email, password string) (*services.Session, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, domain.ErrInvalidCredentials
	case resp.StatusCode != http.StatusOK:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("login: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var decoded loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("login: decode response: %w", err)
	}

	user := decoded.User.User
	return &services.Session{
		Token:        decoded.Token,
		User:         &user,
		ProviderName: decoded.User.DisplayName,
	}, nil
}

func (c *apiClient) logout(ctx context.Context, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/auth/logout", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("logout: status %d", resp.StatusCode)
	}
	return nil
}

func runDashboard(ctx context.Context, cfg *config.Config, args []string, out io.Writer, now func() time.Time) error {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	fs.SetOutput(out)

	apiURL := fs.String("api", cfg.APIURL, "base URL of the API server")
	email := fs.String("email", "", "sign in with this email")
	password := fs.String("password", "", "password for --email")
	signOut := fs.Bool("logout", false, "sign out again after showing the dashboard")
	timeout := fs.Duration("timeout", 10*time.Second, "API request timeout")

	if err := fs.Parse(args); err != nil {
		return err
	}

	client := &apiClient{
		baseURL: strings.TrimRight(*apiURL, "/"),
		http:    &http.Client{Timeout: *timeout},
	}

	state := services.NewSessionState()
	unsubscribe := state.Subscribe(func(s *services.Session) {
		if s == nil {
			return
		}
		fmt.Fprintf(out, "%s, %s!\n", services.Greeting(now()), state.DisplayName())
	})
	defer unsubscribe()

	if *email == "" {
		fmt.Fprintf(out, "%s, %s!\n", services.Greeting(now()), state.DisplayName())
	} else {
		session, err := client.login(ctx, *email, *password)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidCredentials) {
				fmt.Fprintln(out, "Invalid email or password.")
			}
			return err
		}
		state.SignIn(session)
	}

	for _, v := range dashboardActions {
		fmt.Fprintf(out, "  -> %s (%s)\n", v, domain.PathForView(v))
	}

	session, ok := state.Current()
	if !*signOut || !ok {
		return nil
	}
	if err := client.logout(ctx, session.Token); err != nil {
		return err
	}
	state.SignOut()
	fmt.Fprintln(out, "Signed out.")
	return nil
}
