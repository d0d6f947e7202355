package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if len(s.Tracks) != 5 {
		t.Fatalf("got %d default tracks, want 5", len(s.Tracks))
	}
	first := s.Tracks[0]
	if first.Title != "Training Season" || first.FileID != "track1" || first.CoverID != "cover1" {
		t.Errorf("first track = %+v", first)
	}
	if s.AutoAdvance {
		t.Error("auto-advance should default to off")
	}
}

func TestLoadMissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatal(err)
	}
	if s.SampleRate != 44100 {
		t.Errorf("SampleRate = %d, want default", s.SampleRate)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "settings.json")
	s := DefaultSettings()
	s.LibraryPath = "/music"
	s.AutoAdvance = true
	s.Tracks = s.Tracks[:2]

	if err := s.Save(path); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.LibraryPath != "/music" || !got.AutoAdvance || len(got.Tracks) != 2 {
		t.Errorf("loaded %+v", got)
	}
	if got.Tracks[1].Artist != "Скриптонит" {
		t.Errorf("track 2 artist = %q", got.Tracks[1].Artist)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"buffer_ms": 250}`), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.BufferMs != 250 || s.SampleRate != 44100 || len(s.Tracks) != 5 {
		t.Errorf("loaded %+v", s)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "PLAYER_LOG_LEVEL=debug\nPLAYER_LIBRARY_PATH=/from/file\nPLAYER_AUTO_ADVANCE=true\n"
	if err := os.WriteFile(envFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PLAYER_LIBRARY_PATH", "/from/env")
	t.Setenv("PLAYER_SAMPLE_RATE", "48000")

	s := DefaultSettings()
	if err := s.ApplyEnv(envFile); err != nil {
		t.Fatal(err)
	}

	if s.LibraryPath != "/from/env" {
		t.Errorf("LibraryPath = %q, process env should win", s.LibraryPath)
	}
	if s.LogLevel != "debug" || !s.AutoAdvance {
		t.Errorf("file values not applied: %+v", s)
	}
	if s.SampleRate != 48000 {
		t.Errorf("SampleRate = %d, want 48000", s.SampleRate)
	}
}

func TestApplyEnvMissingFile(t *testing.T) {
	s := DefaultSettings()
	if err := s.ApplyEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Errorf("missing env file should be ignored: %v", err)
	}
}

func TestApplyEnvInvalid(t *testing.T) {
	t.Setenv("PLAYER_BUFFER_MS", "lots")
	t.Setenv("PLAYER_SCAN_LIBRARY", "maybe")

	s := DefaultSettings()
	err := s.ApplyEnv("")
	if err == nil {
		t.Fatal("expected error")
	}
	for _, key := range []string{"PLAYER_BUFFER_MS", "PLAYER_SCAN_LIBRARY"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error %q does not mention %s", err, key)
		}
	}
	if s.BufferMs != 100 {
		t.Errorf("BufferMs = %d, invalid value should be ignored", s.BufferMs)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
		want   string
	}{
		{"no tracks", func(s *Settings) { s.Tracks = nil }, "no tracks"},
		{"sample rate", func(s *Settings) { s.SampleRate = 100 }, "sample_rate"},
		{"buffer", func(s *Settings) { s.BufferMs = 0 }, "buffer_ms"},
		{"concurrency", func(s *Settings) { s.ScanConcurrency = 0 }, "scan_concurrency"},
		{"log level", func(s *Settings) { s.LogLevel = "loud" }, "log level"},
		{"empty library", func(s *Settings) { s.LibraryPath = "" }, "library_path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(s)
			err := s.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.want)
			}
		})
	}

	s := DefaultSettings()
	s.Tracks = nil
	s.ScanLibrary = true
	if err := s.Validate(); err != nil {
		t.Errorf("scan without tracks should be valid: %v", err)
	}
}

func TestToLoggerConfig(t *testing.T) {
	s := DefaultSettings()
	s.LogFile = "/tmp/player.log"
	cfg := s.ToLoggerConfig(nil)
	if cfg.OutputPath != "/tmp/player.log" || cfg.MaxSize != 10 || cfg.Level != "info" || cfg.Console != nil {
		t.Errorf("logger config = %+v", cfg)
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	if err := os.WriteFile(path, []byte(`{"library_path": "/json"}`), 0644); err != nil {
		t.Fatal(err)
	}
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("PLAYER_AUTO_ADVANCE=1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Resolve(path, envFile)
	if err != nil {
		t.Fatal(err)
	}
	if s.LibraryPath != "/json" || !s.AutoAdvance {
		t.Errorf("resolved %+v", s)
	}
}
