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

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/urustack/sentrywatch/internal/config"
	"github.com/urustack/sentrywatch/internal/models"
)

const Version = "1.0.0"

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 4 << 20

// Client talks to the detection backend's HTTP API. It never retries.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func New(cfg config.APIConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}
	c := &Client{
		baseURL:    cfg.BaseURL(),
		userAgent:  "sentrywatch/" + Version,
		httpClient: &http.Client{Timeout: timeout},
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchIncidents returns the most recent incidents, at most limit of them.
func (c *Client) FetchIncidents(ctx context.Context, limit int) ([]models.Incident, error) {
	const op = "fetch incidents"
	if limit <= 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidLimit)
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))

	var raw []wireIncident
	if err := c.get(ctx, op, "/incidents?"+q.Encode(), &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, &DecodeError{Op: op, Err: errors.New("expected a JSON array")}
	}
	incidents, err := decodeIncidents(raw)
	if err != nil {
		return nil, &DecodeError{Op: op, Err: err}
	}
	return incidents, nil
}

func (c *Client) FetchDailyStats(ctx context.Context) (*models.DailyStats, error) {
	const op = "fetch daily stats"

	var raw wireDailyStats
	if err := c.get(ctx, op, "/stats/daily", &raw); err != nil {
		return nil, err
	}
	stats, err := raw.toModel()
	if err != nil {
		return nil, &DecodeError{Op: op, Err: err}
	}
	return stats, nil
}

func (c *Client) FetchHealth(ctx context.Context) (*models.Health, error) {
	const op = "fetch health"

	var h models.Health
	if err := c.get(ctx, op, "/health", &h); err != nil {
		return nil, err
	}
	if h.Status == "" {
		return nil, &DecodeError{Op: op, Err: errors.New("missing status")}
	}
	return &h, nil
}

// TriggerDemoTraffic asks the backend to generate synthetic events. Each call
// creates new incidents server side.
func (c *Client) TriggerDemoTraffic(ctx context.Context) (*models.DemoAck, error) {
	const op = "trigger demo traffic"

	body, err := c.do(ctx, op, http.MethodPost, "/test-event")
	if err != nil {
		return nil, err
	}

	ack := &models.DemoAck{}
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" || !strings.HasPrefix(trimmed, "{") {
		return ack, nil
	}
	if err := json.Unmarshal(body, ack); err != nil {
		return nil, &DecodeError{Op: op, Err: err}
	}
	return ack, nil
}

func (c *Client) get(ctx context.Context, op, path string, result any) error {
	body, err := c.do(ctx, op, http.MethodGet, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, result); err != nil {
		return &DecodeError{Op: op, Err: err}
	}
	return nil
}

func (c *Client) do(ctx context.Context, op, method, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request done")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &HTTPError{Op: op, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	return body, nil
}
