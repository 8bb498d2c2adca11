package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zhubert/banter/internal/config"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

func TestExistingSetup(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want setupValues
	}{
		{
			name: "empty file",
			env:  map[string]string{},
			want: setupValues{Provider: config.DefaultProvider},
		},
		{
			name: "prefilled",
			env: map[string]string{
				config.EnvProvider: "openai",
				config.EnvAPIKey:   "sk-1",
				config.EnvModel:    "gpt-4o",
				config.EnvNotify:   "true",
			},
			want: setupValues{Provider: "openai", APIKey: "sk-1", Model: "gpt-4o", Notify: true},
		},
		{
			name: "unknown provider",
			env:  map[string]string{config.EnvProvider: "acme"},
			want: setupValues{Provider: config.DefaultProvider},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := existingSetup(tt.env); got != tt.want {
				t.Errorf("existingSetup() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestWriteSetup(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := writeFile(path, "OTHER=keep\nBANTER_MODEL=old\n"); err != nil {
		t.Fatal(err)
	}

	err := writeSetup(path, setupValues{Provider: "openai", APIKey: " sk-2 ", Model: ""})
	if err != nil {
		t.Fatalf("writeSetup() error = %v", err)
	}

	got, err := config.ReadEnvFile(path)
	if err != nil {
		t.Fatalf("ReadEnvFile() error = %v", err)
	}
	want := map[string]string{
		"OTHER":            "keep",
		config.EnvProvider: "openai",
		config.EnvAPIKey:   "sk-2",
		config.EnvNotify:   "false",
	}
	if len(got) != len(want) {
		t.Errorf("file has %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
	if _, ok := got[config.EnvModel]; ok {
		t.Error("empty model should remove the variable")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("perm = %o, want 600", perm)
	}
}

func TestNewSetupForm(t *testing.T) {
	v := setupValues{Provider: "groq"}
	if newSetupForm(&v) == nil {
		t.Fatal("newSetupForm() returned nil")
	}
}
