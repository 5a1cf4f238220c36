// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package config loads the logicsimd configuration from defaults, an optional
// YAML file and LOGICSIM_* environment variables, in that order.
//
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Environments.
//
const (
	Development = "development"
	Production  = "production"
)

// Config is the service configuration.
//
type Config struct {
	Addr            string        `yaml:"addr" validate:"required"`
	Environment     string        `yaml:"environment" validate:"oneof=development production"`
	LogLevel        string        `yaml:"log_level" validate:"oneof=debug info warn error"`
	MaxNodes        int           `yaml:"max_nodes" validate:"min=1,max=100000"`
	MaxTruthInputs  int           `yaml:"max_truth_inputs" validate:"min=1,max=20"`
	OTLPEndpoint    string        `yaml:"otlp_endpoint" validate:"omitempty,hostname_port"`
	CORSOrigins     []string      `yaml:"cors_origins" validate:"dive,required"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"min=0"`
}

// Default returns the default configuration.
//
func Default() *Config {
	return &Config{
		Addr:            ":8080",
		Environment:     Development,
		LogLevel:        "info",
		MaxNodes:        500,
		MaxTruthInputs:  12,
		CORSOrigins:     []string{"*"},
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load loads the configuration file at path, if not empty, then applies the
// environment.
//
func Load(path string) (*Config, error) {
	return LoadFrom(path, os.LookupEnv)
}

// LoadFrom is like Load with a custom environment lookup function.
//
func LoadFrom(path string, lookup func(string) (string, bool)) (*Config, error) {
	c := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read config")
		}
		if err = yaml.Unmarshal(b, c); err != nil {
			return nil, errors.Wrapf(err, "parse %s", path)
		}
	}
	if err := c.applyEnv(lookup); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}
	num := func(name string, dst *int) error {
		v, ok := lookup(name)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errors.Wrapf(err, "%s", name)
		}
		*dst = n
		return nil
	}

	str("LOGICSIM_ADDR", &c.Addr)
	str("LOGICSIM_ENV", &c.Environment)
	str("LOGICSIM_LOG_LEVEL", &c.LogLevel)
	str("LOGICSIM_OTLP_ENDPOINT", &c.OTLPEndpoint)
	if err := num("LOGICSIM_MAX_NODES", &c.MaxNodes); err != nil {
		return err
	}
	if err := num("LOGICSIM_MAX_TRUTH_INPUTS", &c.MaxTruthInputs); err != nil {
		return err
	}
	if v, ok := lookup("LOGICSIM_CORS_ORIGINS"); ok {
		c.CORSOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.CORSOrigins = append(c.CORSOrigins, o)
			}
		}
	}
	return nil
}

var validate = validator.New()

// Validate checks c for invalid values.
//
func (c *Config) Validate() error {
	return errors.Wrap(validate.Struct(c), "invalid configuration")
}

// IsDevelopment reports whether c is a development configuration.
//
func (c *Config) IsDevelopment() bool { return c.Environment == Development }
