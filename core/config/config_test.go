package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{Token: "123:abc"},
		Sheets:   SheetsConfig{SpreadsheetID: "sheet-id"},
	}
}

func TestNormalizeFillsDefaults(t *testing.T) {
	cfg := validConfig()

	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Errorf("run mode = %q, want %q", cfg.Telegram.RunMode, RunModeLongpoll)
	}
	if cfg.Limiter.WindowMS != 5000 {
		t.Errorf("limiter window = %d, want 5000", cfg.Limiter.WindowMS)
	}
	if cfg.Limiter.SweepIntervalSeconds != 60 {
		t.Errorf("sweep interval = %d, want 60", cfg.Limiter.SweepIntervalSeconds)
	}
	if cfg.Limiter.IdleEvictSeconds != 30 {
		t.Errorf("idle evict = %d, want 30", cfg.Limiter.IdleEvictSeconds)
	}
	if cfg.Sheets.SheetName != "Pagos" {
		t.Errorf("sheet name = %q, want Pagos", cfg.Sheets.SheetName)
	}
	if cfg.Sheets.CredentialsFile != "credentials.json" {
		t.Errorf("credentials file = %q, want credentials.json", cfg.Sheets.CredentialsFile)
	}
}

func TestNormalizeAcceptsPollingAlias(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = "polling"

	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Errorf("run mode = %q, want %q", cfg.Telegram.RunMode, RunModeLongpoll)
	}
}

func TestNormalizeRequiresToken(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.Token = ""

	err := Normalize(cfg)
	if err == nil || !strings.Contains(err.Error(), "token") {
		t.Fatalf("Normalize() error = %v, want token error", err)
	}
}

func TestNormalizeRequiresSpreadsheet(t *testing.T) {
	cfg := validConfig()
	cfg.Sheets.SpreadsheetID = ""

	if err := Normalize(cfg); err == nil {
		t.Fatal("Normalize() expected error for missing spreadsheet id")
	}
}

func TestNormalizeWebhookValidation(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = RunModeWebhook

	if err := Normalize(cfg); err == nil {
		t.Fatal("Normalize() expected error for webhook mode without url")
	}

	cfg.Webhook = WebhookConfig{URL: "https://bot.example", Listen: "0.0.0.0", Port: 8443}
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
}

func TestNormalizeRejectsUnknownRunMode(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = "carrier-pigeon"

	if err := Normalize(cfg); err == nil {
		t.Fatal("Normalize() expected error for unknown run mode")
	}
}

func TestArchiveEnabled(t *testing.T) {
	cfg := validConfig()
	if cfg.ArchiveEnabled() {
		t.Error("archive should be disabled without a host")
	}
	cfg.Database.Host = "localhost"
	if !cfg.ArchiveEnabled() {
		t.Error("archive should be enabled with a host")
	}
}
