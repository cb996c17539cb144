package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig() should validate, got %v", err)
	}
}

func TestInitConfigCreatesDefaultFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")

	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if cfg.Engine.TopK != 5 {
		t.Errorf("TopK = %d, want 5", cfg.Engine.TopK)
	}

	reloaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if reloaded.Engine.TopK != cfg.Engine.TopK {
		t.Errorf("reloaded TopK = %d, want %d", reloaded.Engine.TopK, cfg.Engine.TopK)
	}
}

func TestValidateRejectsBadTopK(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine.TopK = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected Validate to reject top_k=0")
	}
}

func TestValidateRejectsBadCombineStrategy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine.CombineStrategy = "average"
	if err := cfg.Validate(); err == nil {
		t.Error("expected Validate to reject unknown combine_strategy")
	}
}

func TestToEngineConfigTranslatesSumStrategy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine.CombineStrategy = "sum"
	ec := cfg.ToEngineConfig()
	if string(ec.CombineStrategy) != "sum" {
		t.Errorf("CombineStrategy = %v, want sum", ec.CombineStrategy)
	}
}
