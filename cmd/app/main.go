package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/maloquacious/apprater/internal/config"
	"github.com/maloquacious/apprater/internal/logger"
	"github.com/maloquacious/apprater/internal/rater"
	"github.com/maloquacious/apprater/internal/store"
	"github.com/maloquacious/apprater/internal/store/redis"
	"github.com/maloquacious/apprater/internal/store/sqlite"
	"github.com/maloquacious/apprater/internal/storelink"
	"github.com/maloquacious/semver"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var (
	version   = semver.Version{Minor: 1, PreRelease: "alpha", Build: semver.Commit()}
	buildDate = ""
)

var (
	configPath string
	verbose    bool
	jsonOutput bool

	cfg config.Config
	log logger.Logger = logger.Default
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "app",
		Short:         "Rate-this-app prompt state and dialog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zl, err := logger.New(verbose)
			if err != nil {
				return err
			}
			log = zl
			logger.Default = zl

			cfg, err = config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if zl, ok := log.(*logger.ZapLogger); ok {
				_ = zl.Sync()
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "optional YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	launchCmd := &cobra.Command{
		Use:   "launch",
		Short: "Record an application launch and prompt when due",
		RunE:  runLaunch,
	}
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the rating dialog now",
		RunE:  runShow,
	}
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Print the stored prompt state",
		RunE:  runStatus,
	}
	statusCmd.Flags().BoolVar(&jsonOutput, "json", false, "print status as JSON")

	rateCmd := &cobra.Command{
		Use:   "rate",
		Short: "Mark the app as rated and open its store page",
		RunE:  runRate,
	}
	remindCmd := &cobra.Command{
		Use:   "remind-later",
		Short: "Restart the prompt window from now",
		RunE:  withPolicy(func(p *rater.Policy) { p.RemindLater() }),
	}
	cancelCmd := &cobra.Command{
		Use:   "cancel",
		Short: "Never prompt again",
		RunE:  withPolicy(func(p *rater.Policy) { p.CancelReminders() }),
	}
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}

	// db command group
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Database management commands",
	}
	dbCreateCmd := &cobra.Command{
		Use:   "create",
		Short: "Create and initialize the datastore",
		RunE:  runDBCreate,
	}
	dbVerifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify schema integrity and version",
		RunE:  runDBVerify,
	}

	dbCmd.AddCommand(dbCreateCmd, dbVerifyCmd)
	rootCmd.AddCommand(launchCmd, showCmd, statusCmd, rateCmd, remindCmd, cancelCmd, versionCmd, dbCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// openSettings returns the configured record and a function releasing it.
func openSettings() (store.Settings, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendMemory:
		return store.NewMemory(), func() {}, nil
	case config.BackendRedis:
		rdb := goredis.NewClient(&goredis.Options{
			Addr: cfg.Store.RedisAddr,
			DB:   cfg.Store.RedisDB,
		})
		return redis.New(rdb, cfg.Store.Namespace, log), func() { _ = rdb.Close() }, nil
	}

	dbPath := store.GetDBPath(cfg.Store.DBPath)
	s := sqlite.New(dbPath, sqlite.SchemaVersion, log)
	if err := s.Open(); err != nil {
		return nil, nil, err
	}
	// the schema is created on first use so hosts need no setup step
	if err := s.InitSchema(sqlite.SchemaVersion); err != nil {
		_ = s.Close()
		return nil, nil, err
	}
	closer := func() {
		if err := s.Close(); err != nil {
			log.Warn("close %s: %v", dbPath, err)
		}
	}
	return s.Settings(cfg.Store.Namespace), closer, nil
}

func newPolicy(cmd *cobra.Command, settings store.Settings) *rater.Policy {
	notifier := storelink.NotifierFunc(func(msg string) {
		fmt.Fprintln(cmd.ErrOrStderr(), msg)
	})
	link := storelink.New(storelink.NewSystemOpener(), notifier,
		storelink.WithTemplates(cfg.Link.MarketURI, cfg.Link.WebURL),
		storelink.WithLogger(log),
	)
	return rater.New(settings, cfg.Thresholds,
		rater.WithStoreLink(cfg.AppID, link),
		rater.WithLogger(log),
	)
}

func withPolicy(fn func(*rater.Policy)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		settings, closeFn, err := openSettings()
		if err != nil {
			return err
		}
		defer closeFn()
		fn(newPolicy(cmd, settings))
		return nil
	}
}

// listeners echo the user's answer after the policy has stored it.
func listeners(cmd *cobra.Command) rater.Listeners {
	echo := func(r rater.Response) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: done\n", r)
	}
	return rater.Listeners{OnRate: echo, OnRemindLater: echo, OnCancel: echo}
}

func runLaunch(cmd *cobra.Command, args []string) error {
	settings, closeFn, err := openSettings()
	if err != nil {
		return err
	}
	defer closeFn()

	p := newPolicy(cmd, settings)
	presenter := newTerminalPresenter(cmd.InOrStdin(), cmd.OutOrStdout())
	shown, err := p.AppLaunched(cmd.Context(), presenter, listeners(cmd))
	if err != nil {
		return err
	}
	log.Debug("launch %d recorded, dialog shown: %v", p.LaunchCount(), shown)
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	settings, closeFn, err := openSettings()
	if err != nil {
		return err
	}
	defer closeFn()

	p := newPolicy(cmd, settings)
	presenter := newTerminalPresenter(cmd.InOrStdin(), cmd.OutOrStdout())
	return p.ShowDialog(cmd.Context(), presenter, listeners(cmd))
}

func runRate(cmd *cobra.Command, args []string) error {
	settings, closeFn, err := openSettings()
	if err != nil {
		return err
	}
	defer closeFn()

	return newPolicy(cmd, settings).RateApp(cmd.Context())
}

type statusReport struct {
	AppID           string `json:"appId"`
	FirstLaunchDate string `json:"firstLaunchDate,omitempty"`
	LaunchCount     int    `json:"launchCount"`
	DoNotShowAgain  bool   `json:"doNotShowAgain"`
	TimeToRate      bool   `json:"timeToRate"`
	Version         string `json:"version"`
	BuildDate       string `json:"buildDate,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	settings, closeFn, err := openSettings()
	if err != nil {
		return err
	}
	defer closeFn()

	p := newPolicy(cmd, settings)
	report := statusReport{
		AppID:          cfg.AppID,
		LaunchCount:    p.LaunchCount(),
		DoNotShowAgain: p.IsDoNotShowAgain(),
		TimeToRate:     p.ShouldPrompt(),
		Version:        version.String(),
		BuildDate:      buildDate,
	}
	if !p.IsFirstLaunch() {
		report.FirstLaunchDate = p.FirstLaunchDate().UTC().Format(time.RFC3339)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	firstLaunch := report.FirstLaunchDate
	if firstLaunch == "" {
		firstLaunch = "never"
	}
	fmt.Fprintf(out, "app:                %s\n", report.AppID)
	fmt.Fprintf(out, "first launch:       %s\n", firstLaunch)
	fmt.Fprintf(out, "launch count:       %d\n", report.LaunchCount)
	fmt.Fprintf(out, "do not show again:  %s\n", yesNo(report.DoNotShowAgain))
	fmt.Fprintf(out, "time to rate:       %s\n", yesNo(report.TimeToRate))
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// --- DB commands ---

func runDBCreate(cmd *cobra.Command, args []string) error {
	if cfg.Store.Backend != config.BackendSQLite {
		return fmt.Errorf("db create: backend is %q, not sqlite", cfg.Store.Backend)
	}
	dbPath := store.GetDBPath(cfg.Store.DBPath)
	exists, err := store.CheckExists(dbPath)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("db create: %s already exists", dbPath)
	}

	s := sqlite.New(dbPath, sqlite.SchemaVersion, log)
	if err := s.Open(); err != nil {
		return err
	}
	defer s.Close()
	if err := s.InitSchema(sqlite.SchemaVersion); err != nil {
		return err
	}
	log.Info("db create: initialized %s (schema %s)", dbPath, sqlite.SchemaVersion)
	return nil
}

func runDBVerify(cmd *cobra.Command, args []string) error {
	if cfg.Store.Backend != config.BackendSQLite {
		return fmt.Errorf("db verify: backend is %q, not sqlite", cfg.Store.Backend)
	}
	dbPath := store.GetDBPath(cfg.Store.DBPath)
	state := store.StateMissing
	schemaVersion := ""

	exists, err := store.CheckExists(dbPath)
	if err != nil {
		return err
	}
	if exists {
		s := sqlite.New(dbPath, sqlite.SchemaVersion, log)
		if err := s.Open(); err != nil {
			return err
		}
		defer s.Close()
		if state, err = s.CheckState(); err != nil {
			return err
		}
		if state != store.StateUninitialized {
			if schemaVersion, err = s.GetSchemaVersion(); err != nil {
				return err
			}
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]string{
		"path":           dbPath,
		"state":          state.String(),
		"schemaVersion":  schemaVersion,
		"expectedSchema": sqlite.SchemaVersion,
	}); err != nil {
		return err
	}
	if state != store.StateReady {
		return fmt.Errorf("db verify: datastore is %s", state)
	}
	return nil
}
