package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"avatarfetch/internal/progress"
	"avatarfetch/internal/request"
)

// Config defines configuration for the avatarfetch CLI.
type Config struct {
	URL          string        `yaml:"url"`
	Pose         string        `yaml:"pose"`
	MorphTargets []string      `yaml:"morph_targets"`
	OutputDir    string        `yaml:"output_dir"`
	ChunkSize    int64         `yaml:"chunk_size"`
	Timeout      time.Duration `yaml:"timeout"`
	LogLevel     string        `yaml:"log_level"`
	Quiet        bool          `yaml:"quiet"`
}

// Default returns a Config with sensible defaults. The output directory
// defaults to the working directory, mirroring the original tool's
// "directory of the current project" behavior.
func Default() Config {
	return Config{
		Pose:      string(request.PoseT),
		OutputDir: ".",
		ChunkSize: 1 << 20, // 1MB
		Timeout:   10 * time.Minute,
		LogLevel:  "info",
	}
}

// yamlConfig is used for YAML unmarshaling with human-readable sizes and
// durations.
type yamlConfig struct {
	URL          string   `yaml:"url"`
	Pose         string   `yaml:"pose"`
	MorphTargets []string `yaml:"morph_targets"`
	OutputDir    string   `yaml:"output_dir"`
	ChunkSize    string   `yaml:"chunk_size"`
	Timeout      string   `yaml:"timeout"`
	LogLevel     string   `yaml:"log_level"`
	Quiet        bool     `yaml:"quiet"`
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	cfg := Default()

	if yc.URL != "" {
		cfg.URL = yc.URL
	}
	if yc.Pose != "" {
		cfg.Pose = yc.Pose
	}
	if len(yc.MorphTargets) > 0 {
		cfg.MorphTargets = yc.MorphTargets
	}
	if yc.OutputDir != "" {
		cfg.OutputDir = yc.OutputDir
	}
	if yc.ChunkSize != "" {
		size, err := progress.ParseBytes(yc.ChunkSize)
		if err != nil {
			return Config{}, fmt.Errorf("parse chunk_size: %w", err)
		}
		cfg.ChunkSize = size
	}
	if yc.Timeout != "" {
		d, err := time.ParseDuration(yc.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse timeout: %w", err)
		}
		cfg.Timeout = d
	}
	if yc.LogLevel != "" {
		cfg.LogLevel = yc.LogLevel
	}
	cfg.Quiet = yc.Quiet

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables use the AVATARFETCH_ prefix.
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("AVATARFETCH_URL"); v != "" {
		c.URL = v
	}
	if v := os.Getenv("AVATARFETCH_POSE"); v != "" {
		c.Pose = v
	}
	if v := os.Getenv("AVATARFETCH_MORPH_TARGETS"); v != "" {
		c.MorphTargets = splitList(v)
	}
	if v := os.Getenv("AVATARFETCH_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("AVATARFETCH_CHUNK_SIZE"); v != "" {
		size, err := progress.ParseBytes(v)
		if err != nil {
			return fmt.Errorf("parse AVATARFETCH_CHUNK_SIZE: %w", err)
		}
		c.ChunkSize = size
	}
	if v := os.Getenv("AVATARFETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse AVATARFETCH_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	if v := os.Getenv("AVATARFETCH_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("AVATARFETCH_QUIET"); v != "" {
		c.Quiet = v == "true" || v == "1"
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.URL) == "" {
		return errors.New("config: url is required")
	}
	if _, err := ParsePose(c.Pose); err != nil {
		return err
	}
	if _, err := ParseMorphTargets(c.MorphTargets); err != nil {
		return err
	}
	if c.ChunkSize <= 0 {
		return errors.New("config: chunk_size must be positive")
	}
	if c.Timeout <= 0 {
		return errors.New("config: timeout must be positive")
	}
	return nil
}

// RequestOptions maps the configuration to core request options. Validate
// must have passed.
func (c *Config) RequestOptions() request.Options {
	pose, _ := ParsePose(c.Pose)
	tags, _ := ParseMorphTargets(c.MorphTargets)
	return request.Options{
		BaseURL:      c.URL,
		Pose:         pose,
		MorphTargets: tags,
	}
}

// ParsePose maps a configuration string to a pose identifier. The match is
// case-insensitive; empty stays empty (parameter omitted).
func ParsePose(s string) (request.Pose, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "T":
		return request.PoseT, nil
	case "A":
		return request.PoseA, nil
	default:
		return "", fmt.Errorf("config: unknown pose %q (want T or A)", s)
	}
}

// ParseMorphTargets maps configuration strings to the morph target
// vocabulary.
func ParseMorphTargets(names []string) (request.MorphTargetSet, error) {
	if len(names) == 0 {
		return nil, nil
	}
	set := request.NewMorphTargetSet()
	for _, name := range names {
		switch strings.TrimSpace(name) {
		case string(request.MorphARKit):
			set.Add(request.MorphARKit)
		case string(request.MorphOculusVisemes):
			set.Add(request.MorphOculusVisemes)
		case string(request.MorphMouthSmile):
			set.Add(request.MorphMouthSmile)
		case string(request.MorphMouthOpen):
			set.Add(request.MorphMouthOpen)
		default:
			return nil, fmt.Errorf("config: unknown morph target %q", name)
		}
	}
	return set, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
