// Package config provides configuration management for the player.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values, including the demo playlist
//   - Environment overrides from PLAYER_* variables and a .env file
//   - Conversion to logger.Config
//
// # Default Settings
//
//	settings := config.DefaultSettings()
//	// Library in ./assets, five demo tracks track1..track5
//	// 44.1 kHz output, no auto-advance
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/settings.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Environment
//
// ApplyEnv reads PLAYER_LIBRARY_PATH, PLAYER_PLAYLIST_PATH,
// PLAYER_SCAN_LIBRARY, PLAYER_AUTO_ADVANCE, PLAYER_SAMPLE_RATE,
// PLAYER_BUFFER_MS, PLAYER_COVER_SIZE, PLAYER_SCAN_CONCURRENCY,
// PLAYER_LOG_LEVEL, PLAYER_LOG_FILE, PLAYER_LOG_MAX_SIZE_MB,
// PLAYER_LOG_MAX_BACKUPS and PLAYER_LOG_MAX_AGE_DAYS:
//
//	if err := settings.ApplyEnv(".env"); err != nil {
//	    return err
//	}
//	if err := settings.Validate(); err != nil {
//	    return err
//	}
package config
