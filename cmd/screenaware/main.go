// Command screenaware drives the client flow from a terminal: fill in the
// habit form, get a report, and reopen the last report later.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/screenaware/screenaware/internal/adapters/cache"
	"github.com/screenaware/screenaware/internal/adapters/history"
	"github.com/screenaware/screenaware/internal/adapters/kvstore"
	"github.com/screenaware/screenaware/internal/adapters/scoring"
	"github.com/screenaware/screenaware/internal/config"
	"github.com/screenaware/screenaware/internal/core/domain"
	"github.com/screenaware/screenaware/internal/core/services"
)

const usage = `usage: screenaware <command> [flags]

commands:
  report     score a day of habits and show the report
  show       show the last generated report
  dashboard  greet the signed-in user and list where to go next
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(out, usage)
		return errors.New("missing command")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	switch args[0] {
	case "report":
		return runReport(ctx, cfg, args[1:], out)
	case "show":
		return runShow(ctx, cfg, args[1:], out)
	case "dashboard":
		return runDashboard(ctx, cfg, args[1:], out, time.Now)
	case "help", "-h", "--help":
		fmt.Fprint(out, usage)
		return nil
	default:
		fmt.Fprint(out, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

type storeFlags struct {
	engine string
	path   string
}

func (s *storeFlags) register(fs *flag.FlagSet, cfg *config.Config) {
	fs.StringVar(&s.engine, "store-engine", cfg.KVEngine, "durable store: sqlite, redis or memory")
	fs.StringVar(&s.path, "store", cfg.LocalStorePath, "sqlite file holding the last report")
}

func (s *storeFlags) open(cfg *config.Config) (domain.KeyValueStore, func() error, error) {
	opts := kvstore.Options{Path: s.path, RedisPrefix: "client"}
	if strings.EqualFold(s.engine, kvstore.EngineRedis) {
		rdb, err := cache.NewRedisClient(cache.Options{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		opts.RedisClient = rdb
		store, closeStore, err := kvstore.NewByEngine(s.engine, opts)
		if err != nil {
			_ = rdb.Close()
			return nil, nil, err
		}
		return store, func() error {
			_ = closeStore()
			return rdb.Close()
		}, nil
	}
	return kvstore.NewByEngine(s.engine, opts)
}

func runReport(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(out)

	var form domain.HabitForm
	fs.StringVar(&form.DailyScreenTimeHours, "screen", "", "daily screen time in hours (required)")
	fs.StringVar(&form.SleepDurationHours, "sleep", "", "sleep duration in hours (required)")
	fs.StringVar(&form.StressLevel, "stress", "", "stress level 1-5")
	fs.StringVar(&form.SleepQuality, "quality", "", "sleep quality 1-5")
	fs.StringVar(&form.PhysicalActivityHoursPerWeek, "activity", "", "physical activity hours per week")
	fs.StringVar(&form.SocialMediaHours, "social", "", "social media hours")
	fs.StringVar(&form.GamingHours, "gaming", "", "gaming hours")
	fs.StringVar(&form.EntertainmentHours, "entertainment", "", "entertainment hours")
	fs.StringVar(&form.WorkRelatedHours, "work", "", "work related hours")

	scorerURL := fs.String("scorer", cfg.ScoringURL, "base URL of the scoring service")
	timeout := fs.Duration("timeout", cfg.ScoringTimeout, "scoring request timeout")
	policyName := fs.String("policy", cfg.ScoringFailurePolicy, "on scoring failure: surface or local_fallback")

	var sf storeFlags
	sf.register(fs, cfg)

	if err := fs.Parse(args); err != nil {
		return err
	}

	policy, err := services.ParseFailurePolicy(*policyName)
	if err != nil {
		return err
	}

	store, closeStore, err := sf.open(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	nav := history.NewMemoryHistory(domain.PathForView(domain.ViewDataForm))
	router := services.NewViewRouter(nav)
	router.Mount()
	defer router.Unmount()

	scorer := scoring.NewHTTPScorer(scoring.Config{
		BaseURL:      *scorerURL,
		Timeout:      *timeout,
		MaxFailures:  cfg.ScoringMaxFailures,
		ResetTimeout: cfg.ScoringResetTimeout,
	}, nil)

	generator := services.NewReportGenerator(scorer, store, router, policy)
	if _, err := generator.Generate(ctx, form); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			fmt.Fprintln(out, "Please fill in the required fields.")
		} else if errors.Is(err, domain.ErrScoringUnavailable) {
			fmt.Fprintln(out, "Failed to generate report. Please try again.")
		}
		return err
	}

	fmt.Fprintf(out, "view: %s\n", router.Current())
	return render(ctx, services.NewReportViewer(nav, store), out)
}

func runShow(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(out)

	var sf storeFlags
	sf.register(fs, cfg)

	if err := fs.Parse(args); err != nil {
		return err
	}

	store, closeStore, err := sf.open(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	// A fresh session opened directly on the report page carries no payload.
	nav := history.NewMemoryHistory(domain.PathForView(domain.ViewReport))
	return render(ctx, services.NewReportViewer(nav, store), out)
}

func render(ctx context.Context, viewer *services.ReportViewer, out io.Writer) error {
	report, ok := viewer.Load(ctx)
	if !ok {
		fmt.Fprintln(out, "No report available yet.")
		for _, v := range services.EmptyStateActions() {
			fmt.Fprintf(out, "  -> %s (%s)\n", v, domain.PathForView(v))
		}
		return nil
	}

	fmt.Fprintln(out, "Your Digital Wellness Report")
	fmt.Fprintf(out, "  Risk Level:        %s (%s)\n", report.RiskText(), report.RiskLevel)
	fmt.Fprintf(out, "  Mood Rating:       %s / 5\n", report.MoodRating)
	fmt.Fprintf(out, "  Dominant Category: %s\n", report.DominantCategory)
	fmt.Fprintf(out, "  Usage Pattern:     %s\n", report.ClusterLabel)
	fmt.Fprintf(out, "  Screen Time:       %gh/day, sleep %gh\n", report.Raw.DailyScreenTimeHours, report.Raw.SleepDurationHours)
	if report.Source == domain.SourceLocalFallback {
		fmt.Fprintln(out, "  (scored locally: the scoring service was unreachable)")
	}
	if !report.GeneratedAt.IsZero() {
		fmt.Fprintf(out, "  Generated:         %s\n", report.GeneratedAt.Local().Format(time.RFC1123))
	}
	return nil
}
