package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
)

const appName = "mcpchat"

// GetConfigPaths returns the configuration file paths to check
func GetConfigPaths() ConfigPrecedence {
	systemDir := filepath.Join("/etc", appName)
	if runtime.GOOS == "windows" {
		systemDir = filepath.Join(os.Getenv("PROGRAMDATA"), appName)
	}
	userDir := filepath.Join(xdg.ConfigHome, appName)

	return ConfigPrecedence{
		SystemConfig:      candidates(systemDir, "config"),
		UserConfig:        candidates(userDir, "config"),
		ProjectConfig:     candidates(".", "."+appName),
		EnvironmentPrefix: "MCPCHAT",
	}
}

// UserConfigPath is where `config init` writes by default.
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

// DefaultDatabasePath is the transcript archive location under XDG_STATE_HOME.
func DefaultDatabasePath() string {
	return filepath.Join(xdg.StateHome, appName, "transcripts.db")
}

// DefaultLogPath is the chat log file location under XDG_STATE_HOME.
func DefaultLogPath() string {
	return filepath.Join(xdg.StateHome, appName, "logs", appName+".log")
}

// DatabasePath returns the configured archive path or the default.
func (c *Config) DatabasePath() string {
	if c.Storage.DatabasePath != "" {
		return c.Storage.DatabasePath
	}
	return DefaultDatabasePath()
}

// LogPath returns the configured log file path or the default.
func (c *Config) LogPath() string {
	if c.Observability.Logging.File.Path != "" {
		return c.Observability.Logging.File.Path
	}
	return DefaultLogPath()
}

func candidates(dir, base string) []string {
	return []string{
		filepath.Join(dir, base+".json"),
		filepath.Join(dir, base+".yaml"),
		filepath.Join(dir, base+".yml"),
	}
}
