package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	content := `
server:
  port: 9090
  host: "127.0.0.1"

database:
  host: "testdb"
  port: 5432
  user: "testuser"
  password: "testpass"
  dbname: "testdb"

quota:
  freeLimit: 3
  signedInLimit: 10
`

	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Server.Port)
	}

	if cfg.Database.Host != "testdb" {
		t.Errorf("Expected database host testdb, got %s", cfg.Database.Host)
	}

	if cfg.Quota.FreeLimit != 3 {
		t.Errorf("Expected free limit 3, got %d", cfg.Quota.FreeLimit)
	}

	if cfg.Quota.SignedInLimit != 10 {
		t.Errorf("Expected signed-in limit 10, got %d", cfg.Quota.SignedInLimit)
	}
}

func TestLoadDefaults(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte("server:\n  port: 8081\n")); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if !cfg.Quota.Enforced {
		t.Error("Expected quota enforcement on by default")
	}

	if cfg.Quota.FreeLimit != 5 {
		t.Errorf("Expected default free limit 5, got %d", cfg.Quota.FreeLimit)
	}

	if cfg.Quota.SignedInLimit != 25 {
		t.Errorf("Expected default signed-in limit 25, got %d", cfg.Quota.SignedInLimit)
	}

	if cfg.Chat.StreamBuffer != 32 {
		t.Errorf("Expected default stream buffer 32, got %d", cfg.Chat.StreamBuffer)
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Expected error when loading nonexistent file")
	}
}
