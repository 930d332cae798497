package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/postfx"
)

// loadConfig reads a YAML pipeline config. Missing keys keep their defaults.
// An empty path returns the defaults.
//
//	enable_bloom: true
//	enable_color_grading: true
//	bloom_extend: 6
//	bloom_color: {r: 1, g: 0.8, b: 0.6, a: 1}
//	global_bloom_strength: 1.2
func loadConfig(path string) (postfx.Config, error) {
	cfg := postfx.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
