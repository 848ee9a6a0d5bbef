package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:     "http://127.0.0.1:9000",
			Timeout:     5 * time.Second,
			UserAgent:   "seek-test/1.0",
			ProbeImages: false,
		},
		Search: defaultConfig().Search,
		UI:     defaultConfig().UI,
		Opener: defaultConfig().Opener,
		Keys:   defaultConfig().Keys,
		Log: LogConfig{
			Level: "off",
		},
	}
}
