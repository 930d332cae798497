package postfx

import (
	"errors"
	"testing"

	"github.com/gogpu/postfx/render"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	if !c.EnableBloom || c.EnableColorGrading {
		t.Errorf("default flags = bloom %v grading %v, want bloom only", c.EnableBloom, c.EnableColorGrading)
	}
	if c.BloomExtend != 4 {
		t.Errorf("BloomExtend = %d, want 4", c.BloomExtend)
	}
	if c.BloomColor != render.White {
		t.Errorf("BloomColor = %+v, want white", c.BloomColor)
	}
	if c.GlobalBloomStrength != 1.5 {
		t.Errorf("GlobalBloomStrength = %g, want 1.5", c.GlobalBloomStrength)
	}
	if c.Mode() != ModeBloom {
		t.Errorf("Mode() = %v, want Bloom", c.Mode())
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"extend 2", func(c *Config) { c.BloomExtend = 2 }, false},
		{"extend 16", func(c *Config) { c.BloomExtend = 16 }, false},
		{"extend 1", func(c *Config) { c.BloomExtend = 1 }, true},
		{"extend 17", func(c *Config) { c.BloomExtend = 17 }, true},
		{"zero strength", func(c *Config) { c.GlobalBloomStrength = 0 }, false},
		{"negative strength", func(c *Config) { c.GlobalBloomStrength = -0.1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.modify(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
