package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/msgwebdev-git/goqode-sub000/pkg/errors"
)

// Environment variables read by ApplyEnv.
const (
	EnvChromeBin  = "CASE_CAPTURE_CHROME_BIN"
	EnvHeadless   = "CASE_CAPTURE_HEADLESS"
	EnvFFmpeg     = "CASE_CAPTURE_FFMPEG"
	EnvOutputRoot = "CASE_CAPTURE_OUTPUT_ROOT"
)

// Load reads a configuration file over Default.
// The format is chosen by extension: .toml, or .yaml/.yml.
// Keys absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	if err := Decode(data, filepath.Ext(path), &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode decodes data in the format implied by ext into cfg.
func Decode(data []byte, ext string, cfg *Config) error {
	switch strings.ToLower(ext) {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode toml")
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode yaml")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q (use .toml, .yaml or .yml)", ext)
	}
	return nil
}

// ApplyEnv loads a .env file from the working directory when present and
// applies CASE_CAPTURE_* overrides to cfg. Variables already set in the
// process environment win over .env entries.
func ApplyEnv(cfg *Config) error {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "load .env")
		}
	}

	if v, ok := os.LookupEnv(EnvChromeBin); ok {
		cfg.Browser.Bin = v
	}
	if v, ok := os.LookupEnv(EnvHeadless); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", EnvHeadless)
		}
		cfg.Browser.Headless = b
	}
	if v, ok := os.LookupEnv(EnvFFmpeg); ok && v != "" {
		cfg.Video.FFmpeg = v
	}
	if v, ok := os.LookupEnv(EnvOutputRoot); ok && v != "" {
		cfg.Output.Root = v
	}
	return nil
}
