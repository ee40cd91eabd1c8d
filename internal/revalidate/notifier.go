// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package revalidate tells the marketing frontends to drop cached pages
// after content changes. Delivery is best effort: one attempt, no retry,
// failures are logged and counted but never returned to the caller.
package revalidate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/dualsite/internal/model"
	"github.com/olegiv/dualsite/internal/util"
)

// Delivery defaults
const (
	DefaultTimeout = 5 * time.Second
	MaxResponseLen = 4 * 1024
	UserAgent      = "dualsite-revalidate/1.0"
)

// Results reported to the ResultFunc.
const (
	ResultOK            = "ok"
	ResultError         = "error"
	ResultNotConfigured = "not_configured"
)

// Target selects what the frontend should revalidate: a cache tag or a path.
type Target struct {
	Tag  model.CacheTag
	Path string
}

// ForTag returns a tag target.
func ForTag(tag model.CacheTag) Target {
	return Target{Tag: tag}
}

// ForPath returns a path target.
func ForPath(path string) Target {
	return Target{Path: path}
}

func (t Target) String() string {
	if t.Tag != "" {
		return "tag:" + string(t.Tag)
	}
	return "path:" + t.Path
}

type payload struct {
	Secret string `json:"secret"`
	Tag    string `json:"tag,omitempty"`
	Path   string `json:"path,omitempty"`
}

// ResultFunc observes the outcome of every notification.
type ResultFunc func(website, result string)

// Config configures a Notifier.
type Config struct {
	// URLs maps each website to its revalidation endpoint. A website
	// without a URL is skipped with a warning.
	URLs    map[model.Website]string
	Secret  string
	Timeout time.Duration
	Logger  *slog.Logger
	// OnResult is optional.
	OnResult ResultFunc
	// BlockPrivate refuses connections to private or reserved addresses.
	// Ignored when Client is set.
	BlockPrivate bool
	// Client overrides the HTTP client; its Timeout is left as is.
	Client *http.Client
}

// Notifier sends revalidation requests in the background.
type Notifier struct {
	urls     map[model.Website]string
	secret   string
	client   *http.Client
	timeout  time.Duration
	logger   *slog.Logger
	onResult ResultFunc
	wg       sync.WaitGroup
}

// New creates a Notifier.
func New(cfg Config) *Notifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := cfg.Client
	if client == nil {
		transport := &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     90 * time.Second,
		}
		if cfg.BlockPrivate {
			transport.DialContext = util.SSRFSafeDialContext(&net.Dialer{Timeout: timeout})
		}
		client = &http.Client{Timeout: timeout, Transport: transport}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	urls := make(map[model.Website]string, len(cfg.URLs))
	for w, u := range cfg.URLs {
		if u != "" {
			urls[w] = u
		}
	}
	return &Notifier{
		urls:     urls,
		secret:   cfg.Secret,
		client:   client,
		timeout:  timeout,
		logger:   logger.With("component", "revalidate"),
		onResult: cfg.OnResult,
	}
}

// Notify schedules one revalidation request per target and returns at once.
// It never blocks on the network and never reports failure to the caller.
func (n *Notifier) Notify(website model.Website, targets ...Target) {
	for _, t := range targets {
		n.wg.Add(1)
		go func(t Target) {
			defer n.wg.Done()
			n.deliver(website, t)
		}(t)
	}
}

// Wait blocks until every scheduled notification has finished.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) deliver(website model.Website, t Target) {
	url, ok := n.urls[website]
	if !ok {
		n.logger.Warn("revalidation skipped, no URL configured",
			"website", website, "target", t.String())
		n.record(website, ResultNotConfigured)
		return
	}

	// Detached from the request context: the triggering request has
	// usually finished by the time this runs.
	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	requestID := uuid.NewString()
	start := time.Now()
	status, err := n.post(ctx, url, requestID, t)
	if err != nil {
		n.logger.Warn("revalidation failed",
			"website", website,
			"target", t.String(),
			"request_id", requestID,
			"status_code", status,
			"duration", time.Since(start),
			"error", err)
		n.record(website, ResultError)
		return
	}

	n.logger.Debug("revalidation sent",
		"website", website,
		"target", t.String(),
		"request_id", requestID,
		"status_code", status,
		"duration", time.Since(start))
	n.record(website, ResultOK)
}

func (n *Notifier) post(ctx context.Context, url, requestID string, t Target) (int, error) {
	body, err := json.Marshal(payload{Secret: n.secret, Tag: string(t.Tag), Path: t.Path})
	if err != nil {
		return 0, fmt.Errorf("encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("X-Request-ID", requestID)

	resp, err := n.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Drain a bounded amount so the connection can be reused
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, MaxResponseLen))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return resp.StatusCode, nil
}

func (n *Notifier) record(website model.Website, result string) {
	if n.onResult != nil {
		n.onResult(string(website), result)
	}
}
