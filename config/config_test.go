package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.Threads < 1 {
		t.Errorf("threads %d", cfg.Threads)
	}
}

func TestLoadYAMLAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hwr.yaml")
	yaml := "data_dir: /data/chars\ntopology: shallow\nepochs: 3\noffset: 65\nvalidation_split: 0.2\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("HWR_THREADS=3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HWR_EPOCHS", "7")
	// registered for restore, then removed so the .env file can set it
	t.Setenv("HWR_THREADS", "")
	os.Unsetenv("HWR_THREADS")

	cfg, err := Load(path, envFile, filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataDir != "/data/chars" || cfg.Topology != "shallow" || cfg.Offset != 65 {
		t.Errorf("yaml not applied: %+v", cfg)
	}
	if cfg.Epochs != 7 {
		t.Errorf("environment must override the file, epochs %d", cfg.Epochs)
	}
	if cfg.Threads != 3 {
		t.Errorf(".env not applied, threads %d", cfg.Threads)
	}
	if cfg.ValidationSplit != 0.2 {
		t.Errorf("split %v", cfg.ValidationSplit)
	}
	hp := cfg.Hyperparameters(nil)
	if hp.Epochs != 7 || hp.Threads != 3 {
		t.Errorf("hyperparameters %+v", hp)
	}
}

func TestSolverEnv(t *testing.T) {
	t.Setenv("HWR_SIGNIFICANCE", "95")
	t.Setenv("HWR_FACTOR", "4")
	t.Setenv("HWR_SUBTRACTOR", "2")
	t.Setenv("HWR_DEADLINE_MS", "250")
	t.Setenv("HWR_DEADLINE_RETRY", "9")
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	hp := cfg.Hyperparameters(nil)
	if hp.Significance != 95 || hp.Factor != 4 || hp.Subtractor != 2 || hp.DeadlineMs != 250 || hp.DeadlineRetry != 9 {
		t.Errorf("solver settings not overridden: %+v", hp)
	}

	// out of range values keep the default
	t.Setenv("HWR_SIGNIFICANCE", "300")
	t.Setenv("HWR_FACTOR", "-1")
	cfg, err = Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Significance != Default().Significance || cfg.Factor != 1 {
		t.Errorf("significance %d factor %d", cfg.Significance, cfg.Factor)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"topology": func(c *Config) { c.Topology = "wide" },
		"threads":  func(c *Config) { c.Threads = 0 },
		"split":    func(c *Config) { c.ValidationSplit = 1 },
		"level":    func(c *Config) { c.LogLevel = "loud" },
		"format":   func(c *Config) { c.LogFormat = "xml" },
		"model":    func(c *Config) { c.ModelPath = "" },
	}
	for name, mutate := range cases {
		cfg := Default()
		mutate(cfg)
		if cfg.Validate() == nil {
			t.Errorf("%s: invalid config accepted", name)
		}
	}
}

func TestLogger(t *testing.T) {
	cfg := Default()
	cfg.LogFormat = "json"
	cfg.LogLevel = "debug"
	logger, err := cfg.Logger()
	if err != nil {
		t.Fatal(err)
	}
	if !logger.Core().Enabled(-1) {
		t.Errorf("debug level not enabled")
	}
}
