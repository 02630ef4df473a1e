package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jordanbtucker/video-clerk/internal/prompt"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Setting keys, as they appear in the config file. Environment variables
// use the same names upper-cased with a VIDEO_CLERK_ prefix.
const (
	KeyAccessToken      = "access_token"
	KeyAPIKey           = "api_key"
	KeyLanguage         = "language"
	KeyInputDir         = "input_dir"
	KeyMoviesDir        = "movies_dir"
	KeyShowsDir         = "shows_dir"
	KeyRenameMk3dToMkv  = "rename_mk3d_to_mkv"
	KeyEnableLogging    = "enable_logging"
	KeyLogRetentionDays = "log_retention_days"
	KeyLogLevel         = "log_level"
	KeyLogFile          = "log_file"
)

// Command-line flags that override a setting for one run.
var flagKeys = map[string]string{
	KeyAccessToken: "token",
	KeyAPIKey:      "api-key",
	KeyLanguage:    "language",
	KeyInputDir:    "input",
	KeyMoviesDir:   "movies",
	KeyShowsDir:    "shows",
	KeyLogLevel:    "log-level",
	KeyLogFile:     "log-file",
}

// NoMk3dToMkvFlag disables the .mk3d to .mkv rename for one run.
const NoMk3dToMkvFlag = "no-mk3d-to-mkv"

// ErrCanceled is returned when the user leaves a required setting blank.
var ErrCanceled = errors.New("configuration canceled")

// Settings holds the user configuration.
type Settings struct {
	AccessToken      string `mapstructure:"access_token"`
	APIKey           string `mapstructure:"api_key"`
	Language         string `mapstructure:"language"`
	InputDir         string `mapstructure:"input_dir"`
	MoviesDir        string `mapstructure:"movies_dir"`
	ShowsDir         string `mapstructure:"shows_dir"`
	RenameMk3dToMkv  *bool  `mapstructure:"rename_mk3d_to_mkv"` // nil until the user has been asked
	EnableLogging    bool   `mapstructure:"enable_logging"`
	LogRetentionDays int    `mapstructure:"log_retention_days"`
	LogLevel         string `mapstructure:"log_level"`
	LogFile          string `mapstructure:"log_file"`

	path string
}

// DefaultPath returns ~/.video-clerk/config.json.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".video-clerk", "config.json"), nil
}

// Load reads the settings from the JSON file at path (DefaultPath when
// empty), the environment and, when flags is non-nil, the command-line
// overrides. A missing file is not an error.
func Load(path string, flags *pflag.FlagSet) (*Settings, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	v := viper.New()
	v.SetDefault(KeyLanguage, "en-US")
	v.SetDefault(KeyEnableLogging, true)
	v.SetDefault(KeyLogRetentionDays, 30)
	v.SetDefault(KeyLogLevel, "info")

	v.SetConfigFile(path)
	v.SetConfigType("json")

	v.SetEnvPrefix("VIDEO_CLERK")
	for _, key := range []string{
		KeyAccessToken, KeyAPIKey, KeyLanguage, KeyInputDir, KeyMoviesDir, KeyShowsDir,
		KeyRenameMk3dToMkv, KeyEnableLogging, KeyLogRetentionDays, KeyLogLevel, KeyLogFile,
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind --%s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil && !missing(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	s := &Settings{path: path}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if flags != nil {
		if off, err := flags.GetBool(NoMk3dToMkvFlag); err == nil && off {
			rename := false
			s.RenameMk3dToMkv = &rename
		}
	}
	return s, nil
}

// Path returns the file the settings are saved to.
func (s *Settings) Path() string {
	return s.path
}

// Save writes one setting to the config file. Other keys already in the
// file are kept; overrides from flags and the environment are not written.
func (s *Settings) Save(key string, value any) error {
	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil && !missing(err) {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	v.Set(key, value)

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func missing(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// Ensure asks for every required setting that is still missing and saves
// each answer as it is given. Leaving an answer blank returns ErrCanceled.
// Either an access token or an API key satisfies the credential.
func Ensure(ctx context.Context, s *Settings, p prompt.Prompter) error {
	if s.AccessToken == "" && s.APIKey == "" {
		if err := ask(ctx, s, p, KeyAccessToken, &s.AccessToken,
			"Please visit https://www.themoviedb.org/settings/api to acquire an API Read Access Token (v4 auth) and enter it here:"); err != nil {
			return err
		}
	}

	dirs := []struct {
		key     string
		field   *string
		message string
	}{
		{KeyInputDir, &s.InputDir, "In what folder are the files you want to rename?"},
		{KeyMoviesDir, &s.MoviesDir, "In what folder does your movie library reside?"},
		{KeyShowsDir, &s.ShowsDir, "In what folder does your TV show library reside?"},
	}
	for _, d := range dirs {
		if *d.field != "" {
			continue
		}
		if err := ask(ctx, s, p, d.key, d.field, d.message); err != nil {
			return err
		}
	}

	if s.RenameMk3dToMkv == nil {
		rename, err := p.Confirm(ctx, "Do you want to rename *.mk3d files to *.mkv? (Plex does not support the *.mk3d file extension.)")
		if err != nil {
			return err
		}
		s.RenameMk3dToMkv = &rename
		if err := s.Save(KeyRenameMk3dToMkv, rename); err != nil {
			return err
		}
	}
	return nil
}

func ask(ctx context.Context, s *Settings, p prompt.Prompter, key string, field *string, message string) error {
	value, ok, err := p.Input(ctx, message)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCanceled
	}
	*field = value
	return s.Save(key, value)
}
