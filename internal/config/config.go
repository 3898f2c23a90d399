// Package config loads and persists hydrate settings. Values come from, in
// increasing precedence: built-in defaults, the YAML config file and
// HYDRATE_* environment variables.
package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/adrg/xdg"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/manav03panchal/hydrate/internal/errors"
	"github.com/manav03panchal/hydrate/internal/notify"
	"github.com/manav03panchal/hydrate/internal/parser"
	"github.com/manav03panchal/hydrate/internal/scheduler"
	"github.com/manav03panchal/hydrate/internal/storage"
	"github.com/manav03panchal/hydrate/internal/validate"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "HYDRATE"

// Configuration keys.
const (
	KeyIntervalMinutes = "interval_minutes"
	KeyStorePath       = "store_path"
	KeyTick            = "tick"
	KeyNotifier        = "notifier"
	KeyLogFile         = "log_file"
)

// Keys lists every configuration key in display order.
var Keys = []string{KeyIntervalMinutes, KeyStorePath, KeyTick, KeyNotifier, KeyLogFile}

// Config is the resolved configuration.
type Config struct {
	IntervalMinutes int           `json:"interval_minutes"`
	StorePath       string        `json:"store_path"`
	Tick            time.Duration `json:"tick"`
	Notifier        string        `json:"notifier"`
	LogFile         string        `json:"log_file,omitempty"`
}

// DefaultPath returns the config file location following the XDG spec.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, storage.AppName, "config.yaml")
}

// DefaultLogFile returns the suggested location for the rotating log file.
func DefaultLogFile() string {
	return filepath.Join(xdg.StateHome, storage.AppName, "hydrate.log")
}

// Store reads settings through viper and writes changes back to the
// config file.
type Store struct {
	v    *viper.Viper
	path string
}

// Open loads the config file at path (DefaultPath when empty). A missing
// file is not an error.
func Open(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath()
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := readFile(v); err != nil {
		return nil, errors.NewSystemErrorWithOp("read config", fmt.Sprintf("cannot load %s", path), err)
	}

	return &Store{v: v, path: path}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyIntervalMinutes, scheduler.DefaultIntervalMinutes)
	v.SetDefault(KeyStorePath, storage.DefaultPath())
	v.SetDefault(KeyTick, scheduler.DefaultTick.String())
	v.SetDefault(KeyNotifier, notify.KindAuto)
	v.SetDefault(KeyLogFile, "")
}

func readFile(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Path returns the config file location.
func (s *Store) Path() string {
	return s.path
}

// Config resolves and validates the current settings.
func (s *Store) Config() (*Config, error) {
	interval, err := validate.ParseIntervalMinutes(s.v.GetString(KeyIntervalMinutes))
	if err != nil {
		return nil, err
	}

	storePath, err := expandPath(KeyStorePath, s.v.GetString(KeyStorePath))
	if err != nil {
		return nil, err
	}
	if err := validate.StorePath(storePath); err != nil {
		return nil, err
	}

	tick, err := parseTick(s.v.GetString(KeyTick))
	if err != nil {
		return nil, err
	}

	kind := s.v.GetString(KeyNotifier)
	if err := notify.ValidateKind(kind); err != nil {
		return nil, err
	}

	logFile, err := expandPath(KeyLogFile, s.v.GetString(KeyLogFile))
	if err != nil {
		return nil, err
	}

	return &Config{
		IntervalMinutes: interval,
		StorePath:       storePath,
		Tick:            tick,
		Notifier:        kind,
		LogFile:         logFile,
	}, nil
}

// Get returns the effective value of key as text.
func (s *Store) Get(key string) (string, error) {
	if err := checkKey(key); err != nil {
		return "", err
	}
	return s.v.GetString(key), nil
}

// All returns every key with its effective value.
func (s *Store) All() map[string]string {
	all := make(map[string]string, len(Keys))
	for _, key := range Keys {
		all[key] = s.v.GetString(key)
	}
	return all
}

// Set validates value for key and persists it to the config file. Only
// values from the file itself are written back; defaults and environment
// overrides are not.
func (s *Store) Set(key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}

	typed, err := parseValue(key, value)
	if err != nil {
		return err
	}

	file := viper.New()
	file.SetConfigFile(s.path)
	file.SetConfigType("yaml")
	if err := readFile(file); err != nil {
		return errors.NewSystemErrorWithOp("read config", fmt.Sprintf("cannot load %s", s.path), err)
	}
	file.Set(key, typed)

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.NewSystemErrorWithOp("write config", "cannot create config directory", err)
	}
	if err := file.WriteConfigAs(s.path); err != nil {
		return errors.NewSystemErrorWithOp("write config", fmt.Sprintf("cannot write %s", s.path), err)
	}

	s.v.Set(key, typed)
	return nil
}

// Override sets a value for this process only, e.g. from a command flag.
func (s *Store) Override(key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	typed, err := parseValue(key, value)
	if err != nil {
		return err
	}
	s.v.Set(key, typed)
	return nil
}

// SortedKeys returns Keys in alphabetical order.
func SortedKeys() []string {
	keys := append([]string(nil), Keys...)
	sort.Strings(keys)
	return keys
}

func checkKey(key string) error {
	for _, k := range Keys {
		if k == key {
			return nil
		}
	}
	return errors.NewValidationError("config key", key, "unknown key", errors.ErrInvalidConfigKey)
}

// parseValue converts text to the type stored for key.
func parseValue(key, value string) (any, error) {
	switch key {
	case KeyIntervalMinutes:
		return validate.ParseIntervalMinutes(value)
	case KeyTick:
		tick, err := parseTick(value)
		if err != nil {
			return nil, err
		}
		return tick.String(), nil
	case KeyNotifier:
		if err := notify.ValidateKind(value); err != nil {
			return nil, err
		}
		return value, nil
	case KeyStorePath:
		if err := validate.NonEmpty(key, value); err != nil {
			return nil, err
		}
		return value, nil
	default:
		return value, nil
	}
}

func parseTick(value string) (time.Duration, error) {
	tick, err := parser.ParseDuration(value, time.Second)
	if err != nil {
		return 0, errors.NewValidationError(KeyTick, value, "must be a duration such as 1s or 1m", err)
	}
	if err := validate.Tick(tick); err != nil {
		return 0, err
	}
	return tick, nil
}

func expandPath(key, path string) (string, error) {
	if path == "" {
		return "", nil
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", errors.NewValidationError(key, path, err.Error(), nil)
	}
	return expanded, nil
}
