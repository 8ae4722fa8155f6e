package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoad_Defaults(t *testing.T) {
	// Server section absent: every field falls back to its default.
	p := writeConfig(t, `other:
  key: value
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s := cfg.Server
	if s.HTTPPort != DefaultHTTPPort {
		t.Errorf("http_port: got %d, want %d", s.HTTPPort, DefaultHTTPPort)
	}
	if s.Timezone != DefaultTimezone {
		t.Errorf("timezone: got %q, want %q", s.Timezone, DefaultTimezone)
	}
	if s.Profiles.TTL != DefaultProfileTTL {
		t.Errorf("profiles.ttl: got %v, want %v", s.Profiles.TTL, DefaultProfileTTL)
	}
	if s.Stream.Interval != DefaultStreamInterval {
		t.Errorf("stream.interval: got %v, want %v", s.Stream.Interval, DefaultStreamInterval)
	}
	if s.Reminders.MaxPerMedication != DefaultReminderLimit {
		t.Errorf("reminders.max_per_medication: got %d, want %d", s.Reminders.MaxPerMedication, DefaultReminderLimit)
	}
	if s.Reminders.AppointmentLead != DefaultAppointmentLead {
		t.Errorf("reminders.appointment_lead: got %v, want %v", s.Reminders.AppointmentLead, DefaultAppointmentLead)
	}
	if s.Level() != slog.LevelInfo {
		t.Errorf("level: got %v, want info", s.Level())
	}
	if s.Location() != time.UTC {
		t.Errorf("location: got %v, want UTC", s.Location())
	}
}

func TestLoad_FullServer(t *testing.T) {
	p := writeConfig(t, `server:
  http_port: 9091
  timezone: Europe/Berlin
  log_level: debug
  profiles:
    ttl: 10m
  stream:
    interval: 5s
  reminders:
    max_per_medication: 12
    appointment_lead: 2h
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s := cfg.Server
	if s.HTTPPort != 9091 {
		t.Errorf("http_port: got %d, want 9091", s.HTTPPort)
	}
	if s.Location().String() != "Europe/Berlin" {
		t.Errorf("location: got %v, want Europe/Berlin", s.Location())
	}
	if s.Level() != slog.LevelDebug {
		t.Errorf("level: got %v, want debug", s.Level())
	}
	if s.Profiles.TTL != 10*time.Minute {
		t.Errorf("profiles.ttl: got %v, want 10m", s.Profiles.TTL)
	}
	if s.Stream.Interval != 5*time.Second {
		t.Errorf("stream.interval: got %v, want 5s", s.Stream.Interval)
	}
	if s.Reminders.MaxPerMedication != 12 {
		t.Errorf("reminders.max_per_medication: got %d, want 12", s.Reminders.MaxPerMedication)
	}
	if s.Reminders.AppointmentLead != 2*time.Hour {
		t.Errorf("reminders.appointment_lead: got %v, want 2h", s.Reminders.AppointmentLead)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"port zero", "server:\n  http_port: 0\n", "http_port"},
		{"port too high", "server:\n  http_port: 70000\n", "http_port"},
		{"bad timezone", "server:\n  timezone: Mars/Olympus\n", "timezone"},
		{"bad level", "server:\n  log_level: loud\n", "log_level"},
		{"zero ttl", "server:\n  profiles:\n    ttl: 0s\n", "profiles.ttl"},
		{"zero interval", "server:\n  stream:\n    interval: 0s\n", "stream.interval"},
		{"zero reminder cap", "server:\n  reminders:\n    max_per_medication: 0\n", "max_per_medication"},
		{"negative lead", "server:\n  reminders:\n    appointment_lead: -1h\n", "appointment_lead"},
		{"malformed yaml", "server: [unterminated\n", "parse yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
			if !strings.HasPrefix(err.Error(), "server config:") {
				t.Errorf("error %q missing package prefix", err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	p := writeConfig(t, "server:\n  log_level: info\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Config, 4)
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, p, func(c *Config) { got <- c }) }()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)

	// An invalid file must not reach onChange.
	if err := os.WriteFile(p, []byte("server:\n  log_level: loud\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(p, []byte("server:\n  log_level: error\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.After(3 * time.Second)
	for {
		select {
		case c := <-got:
			if c.Server.LogLevel == "loud" {
				t.Fatal("invalid config delivered to onChange")
			}
			if c.Server.Level() == slog.LevelError {
				cancel()
				if err := <-done; err != nil {
					t.Fatalf("Watch: %v", err)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for reload")
		}
	}
}

func TestWatch_ReloadsAfterRenameOverFile(t *testing.T) {
	p := writeConfig(t, "server:\n  log_level: info\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Config, 4)
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, p, func(c *Config) { got <- c }) }()

	time.Sleep(100 * time.Millisecond)

	// Save the way editors do: write a sibling temp file, rename it over p.
	// Two rounds, so the second proves the watch outlived the inode swap.
	for _, level := range []string{"warn", "debug"} {
		tmp := filepath.Join(filepath.Dir(p), ".config.yaml.swp")
		if err := os.WriteFile(tmp, []byte("server:\n  log_level: "+level+"\n"), 0o600); err != nil {
			t.Fatalf("write temp: %v", err)
		}
		if err := os.Rename(tmp, p); err != nil {
			t.Fatalf("rename: %v", err)
		}

		deadline := time.After(3 * time.Second)
	wait:
		for {
			select {
			case c := <-got:
				if c.Server.LogLevel == level {
					break wait
				}
			case <-deadline:
				t.Fatalf("timed out waiting for reload to %q", level)
			}
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Watch: %v", err)
	}
}

func TestWatch_IgnoresSiblingFiles(t *testing.T) {
	p := writeConfig(t, "server:\n  log_level: info\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Config, 4)
	go func() { _ = Watch(ctx, p, func(c *Config) { got <- c }) }()

	time.Sleep(100 * time.Millisecond)

	other := filepath.Join(filepath.Dir(p), "notes.txt")
	if err := os.WriteFile(other, []byte("server:\n  log_level: error\n"), 0o600); err != nil {
		t.Fatalf("write sibling: %v", err)
	}

	select {
	case c := <-got:
		t.Fatalf("sibling write triggered reload: %+v", c.Server)
	case <-time.After(300 * time.Millisecond):
	}
}
