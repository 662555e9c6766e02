// Package cli wires the netscope commands: the local dashboard, the SSH
// server and theme listing.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/tnguyen21/netscope/internal/app"
	"github.com/tnguyen21/netscope/internal/art"
	"github.com/tnguyen21/netscope/internal/config"
	"github.com/tnguyen21/netscope/internal/data"
	"github.com/tnguyen21/netscope/internal/logging"
	"github.com/tnguyen21/netscope/internal/server"
	"github.com/tnguyen21/netscope/internal/theme"
)

// Version is reported by --version and the menu title.
var Version = "2.0.11"

// EnvPrefix prefixes the environment overrides, e.g. NETSCOPE_THEME.
const EnvPrefix = "NETSCOPE"

// overrides are the config keys settable by flag and environment. Flag
// names use dashes for underscores.
var overrides = []string{"interval", "theme", "theme_dir", "conn_kind", "log_file", "log_level", "log_format"}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "netscope",
		Short: "Terminal dashboard for connections, processes and system info",
		Long: `NetScope shows established and listening connections, running
processes and a system summary in a themed terminal dashboard.

Examples:
  netscope
  netscope -t dracula -d 5
  netscope serve --port 2222`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runDashboard(cfg)
		},
	}
	root.SetVersionTemplate("NetScope {{.Version}}\n")

	flags := root.PersistentFlags()
	flags.String("config", config.DefaultConfigPath, "path to config file")
	flags.IntP("interval", "d", 3, "data refresh interval in seconds")
	flags.StringP("theme", "t", theme.DefaultTheme, "theme name")
	flags.String("theme-dir", theme.DefaultThemeDir, "directory holding theme files")
	flags.String("conn-kind", "tcp", "connection kind: "+strings.Join(data.ConnKinds, ", "))
	flags.String("log-file", config.DefaultLogFile(), `log file ("" disables logging)`)
	flags.String("log-level", "info", "log level")
	flags.String("log-format", "json", "log format: json or console")

	root.AddCommand(newServeCmd(), newThemesCmd())
	return root
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "netscope:", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and layers environment variables and
// explicitly set flags over it.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	if env := os.Getenv(EnvPrefix + "_CONFIG"); env != "" && !cmd.Flags().Changed("config") {
		path = env
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	fileValues := map[string]any{
		"interval":   cfg.Interval,
		"theme":      cfg.Theme,
		"theme_dir":  cfg.ThemeDir,
		"conn_kind":  cfg.ConnKind,
		"log_file":   cfg.LogFile,
		"log_level":  cfg.LogLevel,
		"log_format": cfg.LogFormat,
	}
	for _, key := range overrides {
		v.SetDefault(key, fileValues[key])
		if f := cmd.Flags().Lookup(strings.ReplaceAll(key, "_", "-")); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return cfg, fmt.Errorf("binding --%s: %w", f.Name, err)
			}
		}
	}

	cfg.Interval = v.GetInt("interval")
	cfg.Theme = v.GetString("theme")
	cfg.ThemeDir = v.GetString("theme_dir")
	cfg.ConnKind = v.GetString("conn_kind")
	cfg.LogFile = v.GetString("log_file")
	cfg.LogLevel = v.GetString("log_level")
	cfg.LogFormat = v.GetString("log_format")

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setupLogging(cfg config.Config) (io.Closer, error) {
	return logging.Setup(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel, Format: cfg.LogFormat})
}

// hostArt is the splash and the logo of the running distribution.
func hostArt() (splash, logo []string) {
	distro := art.Detect(runtime.GOOS, data.ReadOSRelease(data.OSReleasePath))
	return art.Splash(), art.Logo(distro)
}

func runDashboard(cfg config.Config) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal")
	}
	closer, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	ts := theme.Open(cfg.Theme, theme.Options{
		Dir:      cfg.ThemeDir,
		Env:      theme.OSEnviron{},
		Terminal: theme.NewTerminal(os.Stdout, nil),
	})
	defer ts.Close()

	splash, logo := hostArt()
	model := app.New(app.Options{
		Version:   Version,
		Themer:    ts,
		Provider:  data.NewHostProvider(),
		Scheduler: server.NewScheduler(cfg),
		ConnKind:  cfg.ConnKind,
		Splash:    splash,
		Logo:      logo,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	// bubbletea turns SIGINT and SIGTERM into a normal exit; a hangup kills
	// the program so the deferred Close still runs.
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	done := make(chan struct{})
	defer close(done)
	go watchHangup(hup, done, p.Kill)

	log.Info().Str("theme", cfg.Theme).Int("interval", cfg.Interval).Msg("starting dashboard")
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}

// watchHangup calls kill on the first signal and returns once done closes.
func watchHangup(sig <-chan os.Signal, done <-chan struct{}, kill func()) {
	select {
	case <-sig:
		kill()
	case <-done:
	}
}
