package cfg

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestLoadDefaults(t *testing.T) {
	baseDir := t.TempDir()

	cfg, err := Load([]string{"--base-dir", baseDir, "refs.bib"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.File != filepath.Join(baseDir, "refs.bib") {
		t.Errorf("Expected file resolved against base dir, got '%s'", cfg.File)
	}
	if cfg.Indent != 4 {
		t.Errorf("Expected default indent 4, got %d", cfg.Indent)
	}
	if cfg.DBPath != "" || cfg.Listen != "" || cfg.APIAccessKey != "" {
		t.Errorf("Expected optional features disabled, got %+v", cfg)
	}
	if cfg.ServeMode() {
		t.Error("Expected file mode")
	}
	if cfg.Debug {
		t.Error("Expected debug to be disabled by default")
	}
}

func TestLoadAllFlags(t *testing.T) {
	cfg, err := Load([]string{
		"--tables", "tables.yml",
		"--indent", "2",
		"--db", "pubs.db",
		"--listen", ":8080",
		"--api-key", "secret",
		"--debug",
	})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.TablesPath != "tables.yml" {
		t.Errorf("Expected tables path 'tables.yml', got '%s'", cfg.TablesPath)
	}
	if cfg.Indent != 2 {
		t.Errorf("Expected indent 2, got %d", cfg.Indent)
	}
	if cfg.DBPath != "pubs.db" {
		t.Errorf("Expected db path 'pubs.db', got '%s'", cfg.DBPath)
	}
	if !cfg.ServeMode() || cfg.Listen != ":8080" {
		t.Errorf("Expected serve mode on ':8080', got '%s'", cfg.Listen)
	}
	if cfg.APIAccessKey != "secret" {
		t.Errorf("Expected API key 'secret', got '%s'", cfg.APIAccessKey)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
	if cfg.File != "" {
		t.Errorf("Expected no file in serve mode, got '%s'", cfg.File)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("BIB_INDENT", "8")
	t.Setenv("BIB_DB", "env.db")

	abs := filepath.Join(t.TempDir(), "refs.bib")
	cfg, err := Load([]string{abs})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Indent != 8 {
		t.Errorf("Expected indent 8 from environment, got %d", cfg.Indent)
	}
	if cfg.DBPath != "env.db" {
		t.Errorf("Expected db path from environment, got '%s'", cfg.DBPath)
	}
	if cfg.File != abs {
		t.Errorf("Expected absolute path to be kept, got '%s'", cfg.File)
	}
}

func TestLoadResolvesAgainstProgramDirectory(t *testing.T) {
	cfg, err := Load([]string{"refs.bib"})
	if err != nil {
		t.Fatal(err)
	}

	exe, err := os.Executable()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.File != filepath.Join(filepath.Dir(exe), "refs.bib") {
		t.Errorf("Expected file next to the executable, got '%s'", cfg.File)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load([]string{})
	if !errors.Is(err, ErrMissingFile) {
		t.Errorf("Expected ErrMissingFile, got %v", err)
	}
}

func TestLoadInvalidIndent(t *testing.T) {
	if _, err := Load([]string{"--indent=-1", "refs.bib"}); err == nil {
		t.Error("Expected error for negative indent")
	}
}

func TestLoadHelp(t *testing.T) {
	cfg, err := Load([]string{"--help"})
	if err != nil {
		t.Fatalf("Expected no error for help, got %v", err)
	}
	if cfg != nil {
		t.Error("Expected nil configuration when help is requested")
	}
}
