// Package runtime provides application runtime context for hydrate.
package runtime

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/manav03panchal/hydrate/internal/config"
	"github.com/manav03panchal/hydrate/internal/logging"
	"github.com/manav03panchal/hydrate/internal/output"
	"github.com/manav03panchal/hydrate/internal/storage"
)

// Context holds what every command needs: settings, the intake log and
// the output formatter.
type Context struct {
	Settings  *config.Store
	Config    *config.Config
	Log       *storage.IntakeLog
	Formatter *output.Formatter
	Session   context.Context
	Logger    *slog.Logger

	// Debug mode
	Debug bool
}

// Options configures the runtime context.
type Options struct {
	ConfigPath string
	StorePath  string // overrides the configured store_path when set
	Format     output.Format
	ColorMode  output.ColorMode
	Debug      bool
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		Format:    output.FormatCLI,
		ColorMode: output.ColorAuto,
	}
}

// New loads configuration, sets up logging and opens the intake log.
func New(parent context.Context, opts Options) (*Context, error) {
	settings, err := config.Open(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.StorePath != "" {
		if err := settings.Override(config.KeyStorePath, opts.StorePath); err != nil {
			return nil, err
		}
	}

	cfg, err := settings.Config()
	if err != nil {
		return nil, err
	}

	initLogging(cfg, opts.Debug)

	session := logging.NewSessionContext(parent)
	logger := logging.LoggerFromContext(session)
	logger.Debug("runtime ready",
		logging.KeyStore, cfg.StorePath,
		logging.KeyInterval, cfg.IntervalMinutes,
		"config", settings.Path())

	formatter := output.NewFormatter()
	formatter.Format = opts.Format
	formatter.ColorMode = opts.ColorMode

	return &Context{
		Settings:  settings,
		Config:    cfg,
		Log:       storage.NewIntakeLog(cfg.StorePath),
		Formatter: formatter,
		Session:   session,
		Logger:    logger,
		Debug:     opts.Debug,
	}, nil
}

func initLogging(cfg *config.Config, debug bool) {
	logCfg := logging.DefaultConfig()
	if debug {
		logCfg = logging.DebugConfig()
	}
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err == nil {
			logCfg.File = cfg.LogFile
			if !debug {
				logCfg.Level = slog.LevelInfo
			}
		}
	}
	logging.Init(logCfg)
}

// Close flushes the log file.
func (c *Context) Close() error {
	return logging.Close()
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// JSONFormatter returns a JSON formatter.
func (c *Context) JSONFormatter() *output.JSONFormatter {
	return output.NewJSONFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.Format == output.FormatJSON
}

// Debugf prints debug output if debug mode is enabled.
func (c *Context) Debugf(format string, args ...interface{}) {
	if c.Debug {
		c.Formatter.Printf("[DEBUG] "+format+"\n", args...)
	}
}
