package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.MaxUploadBytes == 0 {
		cfg.Server.MaxUploadBytes = 20 * 1024 * 1024
	}
	if cfg.Search.NGramSize == 0 {
		cfg.Search.NGramSize = 3
	}
	if cfg.Search.DefaultLimit == 0 {
		cfg.Search.DefaultLimit = 5
	}
	if cfg.Search.MaxLimit == 0 {
		cfg.Search.MaxLimit = 100
	}
	if cfg.Search.MaxSectionChars == 0 {
		cfg.Search.MaxSectionChars = 2000
	}
	if cfg.Search.SnippetLength == 0 {
		cfg.Search.SnippetLength = 200
	}
}

// Default returns a config with all defaults applied (no file needed).
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
