package cmd

import (
	"path/filepath"
	"testing"

	"github.com/zhubert/banter/internal/config"
	"github.com/zhubert/banter/internal/logger"
	"github.com/zhubert/banter/internal/store"
)

func TestPersistentFlags(t *testing.T) {
	tests := []struct {
		name string
		def  string
	}{
		{"debug", "false"},
		{"log-file", logger.DefaultLogPath},
		{"provider", ""},
		{"env-file", config.DefaultEnvFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := rootCmd.PersistentFlags().Lookup(tt.name)
			if flag == nil {
				t.Fatalf("--%s flag not found", tt.name)
			}
			if flag.DefValue != tt.def {
				t.Errorf("--%s default = %q, want %q", tt.name, flag.DefValue, tt.def)
			}
		})
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	for _, name := range []string{"ask", "setup", "theme"} {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestVersionTemplate(t *testing.T) {
	origV, origC, origD := version, commit, date
	defer SetVersionInfo(origV, origC, origD)

	SetVersionInfo("1.2.3", "none", "unknown")
	if got := versionTemplate(); got != "banter 1.2.3\n" {
		t.Errorf("versionTemplate() = %q", got)
	}

	SetVersionInfo("1.2.3", "abc123", "2026-01-01")
	want := "banter 1.2.3\n  commit: abc123\n  built:  2026-01-01\n"
	if got := versionTemplate(); got != want {
		t.Errorf("versionTemplate() = %q, want %q", got, want)
	}
}

func TestLoadConfig_ProviderFlag(t *testing.T) {
	origProvider, origEnv := providerName, envFile
	defer func() { providerName, envFile = origProvider, origEnv }()

	t.Setenv(config.EnvProvider, "groq")
	providerName = "openai"
	envFile = filepath.Join(t.TempDir(), "missing.env")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Provider.Name != "openai" {
		t.Errorf("Provider.Name = %q, want openai", cfg.Provider.Name)
	}
}

func TestOpenPrefs(t *testing.T) {
	cfg := &config.Config{DataDir: t.TempDir()}

	kv, closePrefs := openPrefs(cfg)
	db, ok := kv.(*store.Bolt)
	if !ok {
		t.Fatalf("openPrefs() = %T, want *store.Bolt", kv)
	}
	if db.Path() != cfg.PrefsPath() {
		t.Errorf("Path() = %q, want %q", db.Path(), cfg.PrefsPath())
	}
	if err := kv.Set("theme", "dark"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	closePrefs()

	kv, closePrefs = openPrefs(cfg)
	defer closePrefs()
	if v, ok, _ := kv.Get("theme"); !ok || v != "dark" {
		t.Errorf("Get(theme) = %q, %v after reopen", v, ok)
	}
}

func TestOpenPrefs_FallsBackToMemory(t *testing.T) {
	// A regular file where the data directory should be
	blocker := filepath.Join(t.TempDir(), "file")
	if err := writeFile(blocker, "x"); err != nil {
		t.Fatal(err)
	}
	cfg := &config.Config{DataDir: filepath.Join(blocker, "sub")}

	kv, closePrefs := openPrefs(cfg)
	defer closePrefs()
	if _, ok := kv.(*store.Memory); !ok {
		t.Errorf("openPrefs() = %T, want *store.Memory", kv)
	}
}
