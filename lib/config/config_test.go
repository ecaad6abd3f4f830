// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/lobby/lib/testutil"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.URL != "http://localhost:8000" {
		t.Errorf("expected server.url=http://localhost:8000, got %s", cfg.Server.URL)
	}
	if cfg.Polling.Interval != 30*time.Second {
		t.Errorf("expected polling.interval=30s, got %s", cfg.Polling.Interval)
	}
	if cfg.Notices.Fade != 5*time.Second {
		t.Errorf("expected notices.fade=5s, got %s", cfg.Notices.Fade)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := testutil.WriteFile(t, "lobby.yaml", `
server:
  url: https://rooms.example.com
  timeout: 3s
viewport:
  threshold: 90
  compact_items_per_page: 3
join:
  username: ana
log:
  file: ${LOBBY_TEST_LOG_DIR:-/tmp}/lobby.log
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}

	if cfg.Server.URL != "https://rooms.example.com" {
		t.Errorf("expected server.url from file, got %s", cfg.Server.URL)
	}
	if cfg.Server.Timeout != 3*time.Second {
		t.Errorf("expected server.timeout=3s, got %s", cfg.Server.Timeout)
	}
	if cfg.Viewport.Threshold != 90 || cfg.Viewport.CompactItemsPerPage != 3 {
		t.Errorf("viewport = %+v", cfg.Viewport)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Viewport.FullItemsPerPage != 10 {
		t.Errorf("expected full_items_per_page default 10, got %d", cfg.Viewport.FullItemsPerPage)
	}
	if cfg.Join.Username != "ana" {
		t.Errorf("expected join.username=ana, got %q", cfg.Join.Username)
	}
	if cfg.Log.File != "/tmp/lobby.log" {
		t.Errorf("expected expanded log.file=/tmp/lobby.log, got %s", cfg.Log.File)
	}
}

func TestLoadFile_RejectsUnknownKeys(t *testing.T) {
	path := testutil.WriteFile(t, "lobby.yaml", "server:\n  adress: http://x\n")

	_, err := LoadFile(path)
	if err == nil {
		t.Fatal("expected error for misspelled key, got nil")
	}
	if !strings.Contains(err.Error(), "adress") {
		t.Errorf("error should name the bad key, got %v", err)
	}
}

func TestLoadFile_EmptyFile(t *testing.T) {
	path := testutil.WriteFile(t, "lobby.yaml", "")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile(empty) failed: %v", err)
	}
	if cfg.Server.URL != Default().Server.URL {
		t.Errorf("empty file changed server.url to %s", cfg.Server.URL)
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := testutil.WriteFile(t, "lobby.yaml", "server:\n  url: http://from-file:8000\nlog:\n  level: debug\n")
	t.Setenv(EnvConfig, path)
	t.Setenv(EnvServerURL, "http://from-env:9000")
	t.Setenv(EnvUsername, "  bea ")
	t.Setenv(EnvLogLevel, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Server.URL != "http://from-env:9000" {
		t.Errorf("expected LOBBY_SERVER_URL to win, got %s", cfg.Server.URL)
	}
	if cfg.Join.Username != "bea" {
		t.Errorf("expected trimmed LOBBY_USERNAME, got %q", cfg.Join.Username)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("empty LOBBY_LOG_LEVEL should not override, got %q", cfg.Log.Level)
	}
}

func TestLoad_WithoutFile(t *testing.T) {
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvServerURL, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() without any file failed: %v", err)
	}
	if cfg.Server.URL != "http://localhost:8000" {
		t.Errorf("expected default server.url, got %s", cfg.Server.URL)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(t.TempDir() + "/absent.yaml"); err == nil {
		t.Fatal("expected error for a named config that does not exist")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Server.URL = "ftp://rooms"
	cfg.Polling.Interval = 0
	cfg.Viewport.CompactItemsPerPage = 0
	cfg.Join.AttemptLimit = -1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors, got nil")
	}
	for _, want := range []string{"server.url", "polling.interval", "page sizes", "join.attempt_limit"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("validation error missing %q: %v", want, err)
		}
	}
}

func TestViewportPolicy(t *testing.T) {
	cfg := Default()
	policy := cfg.ViewportPolicy()
	if policy.Threshold != 100 || policy.CompactItemsPerPage != 4 || policy.FullItemsPerPage != 10 {
		t.Errorf("ViewportPolicy() = %+v", policy)
	}
	if policy.QuietWindow != 250*time.Millisecond {
		t.Errorf("quiet window = %s, want 250ms", policy.QuietWindow)
	}
}
