package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/handiism/bandcamp-player/internal/logger"
	"github.com/handiism/bandcamp-player/internal/model"
)

// EnvPrefix prefixes every environment override key.
const EnvPrefix = "PLAYER_"

// Settings holds all configuration options.
type Settings struct {
	// Track source
	LibraryPath  string        `json:"library_path"`
	PlaylistPath string        `json:"playlist_path"` // .m3u or .pls, takes precedence over Tracks
	ScanLibrary  bool          `json:"scan_library"`  // build the playlist from the library tags
	Tracks       []model.Track `json:"tracks"`

	// Playback
	AutoAdvance bool `json:"auto_advance"`
	SampleRate  int  `json:"sample_rate"`
	BufferMs    int  `json:"buffer_ms"`

	// Library scanning and covers
	CoverSize       int `json:"cover_size"` // thumbnail edge in terminal cells
	ScanConcurrency int `json:"scan_concurrency"`

	// Logging
	LogLevel      string `json:"log_level"`
	LogFile       string `json:"log_file"`
	LogMaxSizeMB  int    `json:"log_max_size_mb"`
	LogMaxBackups int    `json:"log_max_backups"`
	LogMaxAgeDays int    `json:"log_max_age_days"`
}

// DefaultTracks returns the built-in demo playlist. File and cover IDs are
// resolved against the library directory.
func DefaultTracks() []model.Track {
	return []model.Track{
		model.NewTrack("Training Season", "Dua Lipa", "track1", "cover1"),
		model.NewTrack("Москва любит...", "Скриптонит", "track2", "cover2"),
		model.NewTrack("Ночная хроника", "Ямыч Восточный Округ, Гио Пика", "track3", "cover3"),
		model.NewTrack("Indian Rap", "Indian Rapper", "track4", "cover4"),
		model.NewTrack("Stil D.R.E", "Dr. D.R.E, Snopp Dogg", "track5", "cover5"),
	}
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		LibraryPath: "assets",
		Tracks:      DefaultTracks(),

		AutoAdvance: false,
		SampleRate:  44100,
		BufferMs:    100,

		CoverSize:       16,
		ScanConcurrency: 8,

		LogLevel:      "info",
		LogMaxSizeMB:  10,
		LogMaxBackups: 3,
		LogMaxAgeDays: 28,
	}
}

// DefaultPath returns the settings file location under the user config
// directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "player.json"
	}
	return filepath.Join(dir, "bandcamp-player", "settings.json")
}

// Load reads settings from a JSON file. A missing file yields defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return settings, nil
}

// Resolve loads settings from path, or from DefaultPath when path is
// empty, then applies environment overrides from envFile.
func Resolve(path, envFile string) (*Settings, error) {
	if path == "" {
		path = DefaultPath()
	}
	settings, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := settings.ApplyEnv(envFile); err != nil {
		return nil, err
	}
	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides settings from PLAYER_* environment variables and from
// the dotenv file at envFile, if it exists. Process environment wins over
// the file. Unparsable numbers and booleans are reported as errors.
func (s *Settings) ApplyEnv(envFile string) error {
	fileValues := map[string]string{}
	if envFile != "" {
		values, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			fileValues = values
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("read %s: %w", envFile, err)
		}
	}

	lookup := func(key string) (string, bool) {
		key = EnvPrefix + key
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileValues[key]
		return v, ok
	}

	var errs []error
	setString := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) {
		if v, ok := lookup(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = n
		}
	}
	setBool := func(key string, dst *bool) {
		if v, ok := lookup(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = b
		}
	}

	setString("LIBRARY_PATH", &s.LibraryPath)
	setString("PLAYLIST_PATH", &s.PlaylistPath)
	setBool("SCAN_LIBRARY", &s.ScanLibrary)
	setBool("AUTO_ADVANCE", &s.AutoAdvance)
	setInt("SAMPLE_RATE", &s.SampleRate)
	setInt("BUFFER_MS", &s.BufferMs)
	setInt("COVER_SIZE", &s.CoverSize)
	setInt("SCAN_CONCURRENCY", &s.ScanConcurrency)
	setString("LOG_LEVEL", &s.LogLevel)
	setString("LOG_FILE", &s.LogFile)
	setInt("LOG_MAX_SIZE_MB", &s.LogMaxSizeMB)
	setInt("LOG_MAX_BACKUPS", &s.LogMaxBackups)
	setInt("LOG_MAX_AGE_DAYS", &s.LogMaxAgeDays)

	return errors.Join(errs...)
}

// Validate reports every setting that cannot be used.
func (s *Settings) Validate() error {
	var errs []error
	if s.LibraryPath == "" {
		errs = append(errs, errors.New("library_path is empty"))
	}
	if len(s.Tracks) == 0 && s.PlaylistPath == "" && !s.ScanLibrary {
		errs = append(errs, errors.New("no tracks: set tracks, playlist_path or scan_library"))
	}
	if s.SampleRate < 8000 || s.SampleRate > 192000 {
		errs = append(errs, fmt.Errorf("sample_rate %d out of range [8000, 192000]", s.SampleRate))
	}
	if s.BufferMs < 10 {
		errs = append(errs, fmt.Errorf("buffer_ms %d below 10", s.BufferMs))
	}
	if s.CoverSize < 0 {
		errs = append(errs, fmt.Errorf("cover_size %d is negative", s.CoverSize))
	}
	if s.ScanConcurrency < 1 {
		errs = append(errs, fmt.Errorf("scan_concurrency %d below 1", s.ScanConcurrency))
	}
	if _, err := logger.ParseLevel(s.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ToLoggerConfig converts settings to a logger.Config writing to console
// (nil for file only).
func (s *Settings) ToLoggerConfig(console io.Writer) logger.Config {
	return logger.Config{
		Level:      s.LogLevel,
		Console:    console,
		OutputPath: s.LogFile,
		MaxSize:    s.LogMaxSizeMB,
		MaxBackups: s.LogMaxBackups,
		MaxAge:     s.LogMaxAgeDays,
	}
}
