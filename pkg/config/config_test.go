package config

import (
	"os"
	"testing"
)

type testConfig struct {
	Var1 string `envconfig:"VAR1"`
	Var2 string `envconfig:"VAR2"`
}

func TestLoadConfigFiles(t *testing.T) {
	envContent := "VAR1=hello\nVAR2=world\n"
	tmpFile := "test.env"
	err := os.WriteFile(tmpFile, []byte(envContent), 0644)
	if err != nil {
		t.Fatalf("could not create temporary .env: %v", err)
	}
	defer os.Remove(tmpFile)

	var cfg testConfig
	configFile := &ConfigFile{
		Path:   tmpFile,
		Config: &cfg,
	}

	os.Unsetenv("VAR1")
	os.Unsetenv("VAR2")

	err = LoadConfigFiles(configFile)
	if err != nil {
		t.Fatalf("LoadConfigFiles returned an error: %v", err)
	}

	if cfg.Var1 != "hello" {
		t.Errorf("expected Var1=hello, got %s", cfg.Var1)
	}
	if cfg.Var2 != "world" {
		t.Errorf("expected Var2=world, got %s", cfg.Var2)
	}
}

func TestLoadConfigs(t *testing.T) {
	os.Setenv("VAR1", "foo")
	os.Setenv("VAR2", "bar")
	defer os.Unsetenv("VAR1")
	defer os.Unsetenv("VAR2")

	var cfg testConfig
	err := LoadConfigs(&cfg)
	if err != nil {
		t.Fatalf("LoadConfigs returned an error: %v", err)
	}

	if cfg.Var1 != "foo" {
		t.Errorf("expected Var1=foo, got %s", cfg.Var1)
	}
	if cfg.Var2 != "bar" {
		t.Errorf("expected Var2=bar, got %s", cfg.Var2)
	}
}

func TestLoadConfigFiles_FileNotFound(t *testing.T) {
	var cfg testConfig
	configFile := &ConfigFile{
		Path:   "nonexistent.env",
		Config: &cfg,
	}
	err := LoadConfigFiles(configFile)
	if err == nil {
		t.Error("expected an error for a missing file, got none")
	}
}
