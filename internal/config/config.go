// Package config loads the TOML settings file and applies KARIO_*
// environment overrides on top of it.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "kario.db"
	DefaultLogFile        = "kario.log"
	DefaultChatEndpoint   = "https://api.openai.com/v1"
	DefaultChatModel      = "gpt-4o-mini"
)

type Keymap struct {
	Quit        string `toml:"quit"`
	Up          string `toml:"up"`
	Down        string `toml:"down"`
	Toggle      string `toml:"toggle"`
	Delete      string `toml:"delete"`
	Restore     string `toml:"restore"`
	MoveUp      string `toml:"move_up"`
	MoveDown    string `toml:"move_down"`
	DateFilter  string `toml:"date_filter"`
	SortStatus  string `toml:"sort_status"`
	SortCreated string `toml:"sort_created"`
	Palette     string `toml:"palette"`
	Help        string `toml:"help"`
}

type Chat struct {
	Endpoint string `toml:"endpoint"`
	Model    string `toml:"model"`
	// APIKey only comes from the environment.
	APIKey string `toml:"-"`
}

type Config struct {
	DBPath               string `toml:"db_path"`
	PurgeAfterDays       int    `toml:"purge_after_days"`
	SchedulerBuffer      int    `toml:"scheduler_buffer"`
	DesktopNotifications bool   `toml:"desktop_notifications"`
	LogFile              string `toml:"log_file"`
	LogLevel             string `toml:"log_level"`
	Chat                 Chat   `toml:"chat"`
	Keys                 Keymap `toml:"keys"`
}

func Default() Config {
	return Config{
		DBPath:          DefaultDBName,
		PurgeAfterDays:  7,
		SchedulerBuffer: 64,
		LogFile:         DefaultLogFile,
		LogLevel:        "info",
		Chat: Chat{
			Endpoint: DefaultChatEndpoint,
			Model:    DefaultChatModel,
		},
		Keys: Keymap{
			Quit:        "q",
			Up:          "k",
			Down:        "j",
			Toggle:      " ",
			Delete:      "d",
			Restore:     "r",
			MoveUp:      "K",
			MoveDown:    "J",
			DateFilter:  "f",
			SortStatus:  "s",
			SortCreated: "c",
			Palette:     "/",
			Help:        "?",
		},
	}
}

// Path picks the settings file: an explicit flag value, then KARIO_CONFIG,
// then $XDG_CONFIG_HOME/kario, then the working directory.
func Path(flag string) string {
	if flag != "" {
		return flag
	}
	if v := strings.TrimSpace(os.Getenv("KARIO_CONFIG")); v != "" {
		return v
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "kario", DefaultConfigFileName)
	}
	return DefaultConfigFileName
}

// LoadOrCreate reads path, writing the defaults there first if it does not
// exist. Empty or invalid fields fall back to their defaults.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return normalize(cfg), nil
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func normalize(cfg Config) Config {
	def := Default()
	if cfg.DBPath == "" {
		cfg.DBPath = def.DBPath
	}
	if cfg.PurgeAfterDays <= 0 {
		cfg.PurgeAfterDays = def.PurgeAfterDays
	}
	if cfg.SchedulerBuffer <= 0 {
		cfg.SchedulerBuffer = def.SchedulerBuffer
	}
	if cfg.LogFile == "" {
		cfg.LogFile = def.LogFile
	}
	if cfg.Chat.Endpoint == "" {
		cfg.Chat.Endpoint = def.Chat.Endpoint
	}
	if cfg.Chat.Model == "" {
		cfg.Chat.Model = def.Chat.Model
	}
	cfg.Keys = fillKeys(cfg.Keys, def.Keys)
	return cfg
}

func fillKeys(k, def Keymap) Keymap {
	pick := func(v, d string) string {
		if v == "" {
			return d
		}
		return v
	}
	return Keymap{
		Quit:        pick(k.Quit, def.Quit),
		Up:          pick(k.Up, def.Up),
		Down:        pick(k.Down, def.Down),
		Toggle:      pick(k.Toggle, def.Toggle),
		Delete:      pick(k.Delete, def.Delete),
		Restore:     pick(k.Restore, def.Restore),
		MoveUp:      pick(k.MoveUp, def.MoveUp),
		MoveDown:    pick(k.MoveDown, def.MoveDown),
		DateFilter:  pick(k.DateFilter, def.DateFilter),
		SortStatus:  pick(k.SortStatus, def.SortStatus),
		SortCreated: pick(k.SortCreated, def.SortCreated),
		Palette:     pick(k.Palette, def.Palette),
		Help:        pick(k.Help, def.Help),
	}
}

// FromEnv applies KARIO_* overrides. Values that do not parse are ignored.
func FromEnv(base Config) Config {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("KARIO_DB_PATH")); v != "" {
		cfg.DBPath = v
	}
	if v, ok := getEnvInt("KARIO_PURGE_AFTER_DAYS"); ok && v > 0 {
		cfg.PurgeAfterDays = v
	}
	if v, ok := getEnvInt("KARIO_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v, ok := getEnvBool("KARIO_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v := strings.TrimSpace(os.Getenv("KARIO_LOG_FILE")); v != "" {
		cfg.LogFile = v
	}
	if v := strings.TrimSpace(os.Getenv("KARIO_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("KARIO_CHAT_ENDPOINT")); v != "" {
		cfg.Chat.Endpoint = v
	}
	if v := strings.TrimSpace(os.Getenv("KARIO_CHAT_MODEL")); v != "" {
		cfg.Chat.Model = v
	}
	cfg.Chat.APIKey = strings.TrimSpace(os.Getenv("KARIO_CHAT_API_KEY"))
	return cfg
}

// Level maps LogLevel onto slog; unknown names mean info.
func (c Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
