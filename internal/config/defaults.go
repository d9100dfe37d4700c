package config

// NewDefaultConfig creates a new Config with default values
func NewDefaultConfig() *Config {
	return &Config{
		Core: Core{
			BinDir:           "~/.rsyclebin",
			AllowCrossDevice: false,
			Recycle: RecycleConfig{
				Verbose: false,
			},
			Restore: RestoreConfig{
				Verbose: true,
			},
			Empty: EmptyConfig{
				Confirm: true,
			},
			Logging: LoggingConfig{
				Enabled: false,
				Level:   "info",
				Format:  "text",
				Rotation: RotationConfig{
					MaxSize:  "10MB",
					MaxFiles: 3,
				},
			},
		},
		UI: UI{
			DateFormat:  "relative",
			ExitMessage: "bye!",
		},
		List: List{
			Include: IncludeConfig{
				Period: 0,
			},
			Exclude: ExcludeConfig{
				Files:    []string{},
				Patterns: []string{},
				Globs:    []string{},
			},
		},
	}
}
