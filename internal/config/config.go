/*
 * Copyright (C) 2026 Mustafa Naseer (Mustafa Gaeed)
 *
 * This file is part of sentrywatch.
 *
 * sentrywatch is free software: you can redistribute it and/or modify
 * it under the terms of the MIT License as described in the
 * LICENSE file distributed with this project.
 *
 * sentrywatch is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
 * MIT License for more details.
 *
 * You should have received a copy of the MIT License
 * along with sentrywatch. If not, see the LICENSE file in the project root.
 */

package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/urustack/sentrywatch/pkg/helper"
	"gopkg.in/yaml.v3"
)

type Config struct {
	API     APIConfig     `yaml:"api"`
	Sync    SyncConfig    `yaml:"sync"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

type APIConfig struct {
	Host     string        `yaml:"host" validate:"required,url"`
	BasePath string        `yaml:"base_path" validate:"required"`
	Timeout  time.Duration `yaml:"timeout" validate:"gt=0"`
}

type SyncConfig struct {
	Interval      time.Duration `yaml:"interval" validate:"gt=0"`
	SettleDelay   time.Duration `yaml:"settle_delay" validate:"gte=0,ltefield=Interval"`
	IncidentLimit int           `yaml:"incident_limit" validate:"min=1,max=500"`
}

type ServerConfig struct {
	Listen string `yaml:"listen" validate:"required,hostname_port"`
}

type StorageConfig struct {
	DataDir      string `yaml:"data_dir"`
	HistoryLimit int    `yaml:"history_limit" validate:"gte=0"`
}

type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	File  string `yaml:"file"`
}

const (
	DefaultAPIHost       = "http://localhost:8000"
	DefaultBasePath      = "/api"
	DefaultTimeout       = 10 * time.Second
	DefaultInterval      = 30 * time.Second
	DefaultSettleDelay   = 3 * time.Second
	DefaultIncidentLimit = 50
	DefaultListen        = "127.0.0.1:9300"
	DefaultHistoryLimit  = 500
)

var (
	DefaultConfigPath = filepath.Join(userDir(os.UserConfigDir, ".config"), "sentrywatch", "config.yaml")
	DefaultDataDir    = filepath.Join(userDir(dataHome, filepath.Join(".local", "share")), "sentrywatch")
)

var validate = validator.New()

// Load reads path when it exists and falls back to defaults otherwise.
// Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" && helper.Exists(path) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.setDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.API.Host == "" {
		c.API.Host = DefaultAPIHost
	}
	if c.API.BasePath == "" {
		c.API.BasePath = DefaultBasePath
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultTimeout
	}
	if c.Sync.Interval == 0 {
		c.Sync.Interval = DefaultInterval
	}
	if c.Sync.SettleDelay == 0 {
		c.Sync.SettleDelay = DefaultSettleDelay
	}
	if c.Sync.IncidentLimit == 0 {
		c.Sync.IncidentLimit = DefaultIncidentLimit
	}
	if c.Server.Listen == "" {
		c.Server.Listen = DefaultListen
	}
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = DefaultDataDir
	}
	if c.Storage.HistoryLimit == 0 {
		c.Storage.HistoryLimit = DefaultHistoryLimit
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SENTRYWATCH_API_BASE"); v != "" {
		c.API.BasePath = v
	}
	if v := os.Getenv("SENTRYWATCH_API_HOST"); v != "" {
		c.API.Host = v
	}
	if v := os.Getenv("SENTRYWATCH_LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("SENTRYWATCH_LISTEN"); v != "" {
		c.Server.Listen = v
	}
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// BaseURL joins the API host and base path. A base path that is already an
// absolute URL is used as is.
func (a APIConfig) BaseURL() string {
	if u, err := url.Parse(a.BasePath); err == nil && u.IsAbs() {
		return strings.TrimRight(a.BasePath, "/")
	}
	host := strings.TrimRight(a.Host, "/")
	path := strings.Trim(a.BasePath, "/")
	if path == "" {
		return host
	}
	return host + "/" + path
}

func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

func dataHome() (string, error) {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("XDG_DATA_HOME not set")
}

func userDir(lookup func() (string, error), homeRel string) string {
	if dir, err := lookup(); err == nil && dir != "" {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, homeRel)
	}
	return "."
}
