package domain

import "strconv"

// Config represents the application configuration
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Download     DownloadConfig     `mapstructure:"download"`
	Engine       EngineConfig       `mapstructure:"engine"`
	History      HistoryConfig      `mapstructure:"history"`
	Notification NotificationConfig `mapstructure:"notification"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// ServerConfig contains settings for the optional HTTP server mode
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// DownloadConfig contains download output configuration
type DownloadConfig struct {
	OutputDir      string `mapstructure:"output_dir"`
	LogsDir        string `mapstructure:"logs_dir"`
	OutputTemplate string `mapstructure:"output_template"`
	Format         string `mapstructure:"format"`
	MergeFormat    string `mapstructure:"merge_format"`
}

// EngineConfig contains settings for the external download engine
type EngineConfig struct {
	Binary        string `mapstructure:"binary"`
	CookieFile    string `mapstructure:"cookie_file"`
	Retries       int    `mapstructure:"retries"`
	SocketTimeout int    `mapstructure:"socket_timeout"`
}

// HistoryConfig contains dispatch history configuration
type HistoryConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	DatabasePath string `mapstructure:"database_path"`
}

// NotificationConfig contains desktop notification configuration
type NotificationConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Method  string `mapstructure:"method"` // osascript, notify-send
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Download: DownloadConfig{
			OutputDir:      "$HOME/Downloads/mediagrab",
			LogsDir:        "$HOME/Downloads/mediagrab/logs",
			OutputTemplate: "%(uploader_id)s_%(id)s.%(ext)s",
			Format:         "best",
			MergeFormat:    "mp4",
		},
		Engine: EngineConfig{
			Binary:        "yt-dlp",
			CookieFile:    "",
			Retries:       3,
			SocketTimeout: 30,
		},
		History: HistoryConfig{
			Enabled:      true,
			DatabasePath: "$HOME/Downloads/mediagrab/history.db",
		},
		Notification: NotificationConfig{
			Enabled: false,
			Method:  "notify-send",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stderr",
		},
	}
}

// GlobalEngineOptions builds the baseline engine option mapping from the
// configuration. Handler options and user overrides are layered on top.
func (c *Config) GlobalEngineOptions() map[string]string {
	options := map[string]string{
		OptionOutputTemplate: c.Download.OutputTemplate,
		OptionFormat:         c.Download.Format,
		OptionMergeFormat:    c.Download.MergeFormat,
	}
	if c.Engine.Retries > 0 {
		options[OptionRetries] = strconv.Itoa(c.Engine.Retries)
	}
	if c.Engine.SocketTimeout > 0 {
		options[OptionSocketTimeout] = strconv.Itoa(c.Engine.SocketTimeout)
	}
	if c.Engine.CookieFile != "" {
		options[OptionCookieFile] = c.Engine.CookieFile
	}
	return options
}
