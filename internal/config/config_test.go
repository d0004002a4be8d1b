package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func ptr[T any](v T) *T { return &v }

func TestLoad_YAML(t *testing.T) {
	data := []byte(`
base_url: https://example.test/api
token: secret
format: markdown
timeout: 30s
depth: 5
product: Fenix
`)
	got, err := Load(data, ".yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := &Config{
		BaseURL: "https://example.test/api",
		Token:   "secret",
		Format:  "markdown",
		Timeout: "30s",
		Depth:   ptr(5),
		Product: "Fenix",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_JSONByExtension(t *testing.T) {
	got, err := Load([]byte(`{"product":"Thunderbird","depth":0}`), ".JSON")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := &Config{Product: "Thunderbird", Depth: ptr(0)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_DetectsFormat(t *testing.T) {
	cases := map[string]string{
		"json": `  {"format": "json"}`,
		"yaml": "format: json\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := Load([]byte(data), "")
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got.Format != "json" {
				t.Errorf("Format = %q", got.Format)
			}
		})
	}
}

func TestLoad_YmlExtension(t *testing.T) {
	got, err := Load([]byte("product: Focus\n"), ".yml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Product != "Focus" {
		t.Errorf("Product = %q", got.Product)
	}
}

func TestLoad_Empty(t *testing.T) {
	got, err := Load(nil, ".yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(&Config{}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name, data, ext string
	}{
		{"bad yaml", "depth: [1", ".yaml"},
		{"bad json", `{"depth":`, ".json"},
		{"negative depth", "depth: -1", ".yaml"},
		{"bad timeout", "timeout: soon", ".yaml"},
		{"negative timeout", "timeout: -5s", ".yaml"},
		{"wrong type", "depth: deep", ".yaml"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load([]byte(tc.data), tc.ext); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestTimeoutDuration(t *testing.T) {
	c := &Config{Timeout: "1m30s"}
	d, err := c.TimeoutDuration()
	if err != nil {
		t.Fatalf("TimeoutDuration: %v", err)
	}
	if d != 90*time.Second {
		t.Errorf("got %s", d)
	}
	if d, _ := (&Config{}).TimeoutDuration(); d != 0 {
		t.Errorf("unset timeout = %s, want 0", d)
	}
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"base_url":"http://localhost:1"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if got.BaseURL != "http://localhost:1" {
		t.Errorf("BaseURL = %q", got.BaseURL)
	}
}

func TestLoadFromPath_Missing(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	got, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault without file: %v", err)
	}
	if diff := cmp.Diff(&Config{}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath: %v", err)
	}
	if want := filepath.Join(dir, "socorro-cli", "config.yaml"); path != want {
		t.Errorf("DefaultPath = %q, want %q", path, want)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("depth: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err = LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	if got.Depth == nil || *got.Depth != 3 {
		t.Errorf("Depth = %v, want 3", got.Depth)
	}
}

func TestLoadDefault_Malformed(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path := filepath.Join(dir, "socorro-cli", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("depth: [\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDefault(); err == nil {
		t.Error("expected parse error from default file")
	}
}
