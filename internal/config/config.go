package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tnguyen21/netscope/internal/data"
	"github.com/tnguyen21/netscope/internal/theme"
)

const DefaultConfigPath = "~/.config/netscope/netscope.yaml"

// Poll holds the render loop input waits, in milliseconds.
type Poll struct {
	IdleMS   int `yaml:"idle_ms"`
	ScrollMS int `yaml:"scroll_ms"`
	BoostMS  int `yaml:"boost_ms"`
}

// Server configures `netscope serve`.
type Server struct {
	Port       int    `yaml:"port"`
	HostKeyDir string `yaml:"host_key_dir"`
	// AllowKill lets remote sessions terminate host processes.
	AllowKill bool `yaml:"allow_kill"`
}

type Config struct {
	// Interval is the data refresh period in seconds.
	Interval  int    `yaml:"interval"`
	Theme     string `yaml:"theme"`
	ThemeDir  string `yaml:"theme_dir"`
	ConnKind  string `yaml:"conn_kind"`
	Poll      Poll   `yaml:"poll"`
	LogFile   string `yaml:"log_file"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	Server    Server `yaml:"server"`
}

func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		Interval: 3,
		Theme:    theme.DefaultTheme,
		ThemeDir: theme.DefaultThemeDir,
		ConnKind: "tcp",
		Poll: Poll{
			IdleMS:   80,
			ScrollMS: 15,
			BoostMS:  250,
		},
		LogFile:   DefaultLogFile(),
		LogLevel:  "info",
		LogFormat: "json",
		Server: Server{
			Port:       2222,
			HostKeyDir: filepath.Join(home, ".ssh"),
		},
	}
}

// DefaultLogFile is netscope.log under the XDG state directory.
func DefaultLogFile() string {
	state := os.Getenv("XDG_STATE_HOME")
	if state == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		state = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(state, "netscope", "netscope.log")
}

// ExpandPath replaces a leading ~ with the home directory.
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}

func Load(path string) (Config, error) {
	cfg := Default()

	resolved := ExpandPath(path)
	raw, err := os.ReadFile(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", resolved, err)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", resolved, err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Normalize expands paths. Call it again after overriding fields.
func (c *Config) Normalize() {
	c.ThemeDir = ExpandPath(c.ThemeDir)
	c.LogFile = ExpandPath(c.LogFile)
	c.Server.HostKeyDir = ExpandPath(c.Server.HostKeyDir)
}

// Refresh is the data refresh period.
func (c Config) Refresh() time.Duration {
	return time.Duration(c.Interval) * time.Second
}

func (p Poll) Idle() time.Duration   { return time.Duration(p.IdleMS) * time.Millisecond }
func (p Poll) Scroll() time.Duration { return time.Duration(p.ScrollMS) * time.Millisecond }
func (p Poll) Boost() time.Duration  { return time.Duration(p.BoostMS) * time.Millisecond }

func (c Config) Validate() error {
	if c.Interval < 1 {
		return fmt.Errorf("interval must be >= 1")
	}
	if !data.ValidConnKind(c.ConnKind) {
		return fmt.Errorf("conn_kind %q must be one of %v", c.ConnKind, data.ConnKinds)
	}

	if c.Poll.IdleMS < 1 {
		return fmt.Errorf("poll.idle_ms must be >= 1")
	}
	if c.Poll.ScrollMS < 1 {
		return fmt.Errorf("poll.scroll_ms must be >= 1")
	}
	if c.Poll.BoostMS < 1 {
		return fmt.Errorf("poll.boost_ms must be >= 1")
	}

	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("log_format %q must be json or console", c.LogFormat)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range (1-65535)", c.Server.Port)
	}

	return nil
}
