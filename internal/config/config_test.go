package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY", "GEMINI_MODEL", "GEMINI_BASE_URL", "GEMINI_TIMEOUT", "GEMINI_TEMPERATURE", "SCRIPT_LANGUAGE", "SCRIPT_TONE", "EXPORT_DIR", "EXPORT_FORMAT"} {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Gemini.Model != "gemini-2.5-pro" || cfg.Script.Language != "Bahasa Indonesia" || cfg.Export.Format != "pdf" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("missing API key should fail validation")
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "scriptgen.yaml")
	yml := `
gemini:
  api_key: from-file
  model: gemini-2.5-flash
  timeout: 90s
  temperature: 0.4
script:
  language: English
export:
  format: xlsx
  dir: out
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("GEMINI_MODEL", "gemini-env")
	t.Setenv("SCRIPT_TONE", "Santai")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Gemini.APIKey != "from-file" || cfg.Gemini.Model != "gemini-env" || cfg.Gemini.Timeout != 90*time.Second {
		t.Fatalf("gemini = %+v", cfg.Gemini)
	}
	if cfg.Gemini.Temperature == nil || *cfg.Gemini.Temperature != 0.4 {
		t.Fatalf("temperature = %v", cfg.Gemini.Temperature)
	}
	if cfg.Script.Language != "English" || cfg.Script.Tone != "Santai" {
		t.Fatalf("script = %+v", cfg.Script)
	}
	if cfg.Export.Format != "xlsx" || cfg.Export.Dir != "out" {
		t.Fatalf("export = %+v", cfg.Export)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	if err := os.WriteFile(".env", []byte("GEMINI_API_KEY=from-dotenv\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	// godotenv never overrides a variable that is already set, even to "".
	os.Unsetenv("GEMINI_API_KEY")
	os.Unsetenv("GOOGLE_API_KEY")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Gemini.APIKey != "from-dotenv" {
		t.Fatalf("api key = %q", cfg.Gemini.APIKey)
	}
}

func TestValidateFormat(t *testing.T) {
	cfg := Default()
	cfg.Gemini.APIKey = "k"
	cfg.Export.Format = "docx"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected invalid format error")
	}
}
