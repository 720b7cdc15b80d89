package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	cfgDir := filepath.Join(dir, ConfigDir)
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		t.Fatalf("creating config dir: %v", err)
	}
	path := filepath.Join(cfgDir, ConfigFile)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadFrom(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("parses full config", func(t *testing.T) {
		path := writeConfig(t, tmpDir, `
[locations]
cities = ["Dresden", "Leipzig"]
canteens = [4, 6, 35]

[[locations.coordinates]]
city = "Dresden"
latitude = 51.0504
longitude = 13.7373
`)

		cfg, err := LoadFrom(path)
		if err != nil {
			t.Fatalf("LoadFrom() error = %v", err)
		}
		if got, want := len(cfg.Locations.Cities), 2; got != want {
			t.Errorf("len(Cities) = %d, want %d", got, want)
		}
		if got, want := len(cfg.Locations.Canteens), 3; got != want {
			t.Fatalf("len(Canteens) = %d, want %d", got, want)
		}
		if cfg.Locations.Canteens[0] != 4 {
			t.Errorf("Canteens[0] = %d, want 4", cfg.Locations.Canteens[0])
		}
		if len(cfg.Locations.Coordinates) != 1 || cfg.Locations.Coordinates[0].City != "Dresden" {
			t.Errorf("Coordinates = %+v, want one Dresden entry", cfg.Locations.Coordinates)
		}
	})

	t.Run("coordinates are optional", func(t *testing.T) {
		path := writeConfig(t, tmpDir, `
[locations]
cities = ["Dresden"]
canteens = [1]
`)

		cfg, err := LoadFrom(path)
		if err != nil {
			t.Fatalf("LoadFrom() error = %v", err)
		}
		if len(cfg.Locations.Coordinates) != 0 {
			t.Errorf("Coordinates = %+v, want empty", cfg.Locations.Coordinates)
		}
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := LoadFrom(filepath.Join(tmpDir, "nope", ConfigFile))
		if err == nil {
			t.Fatal("LoadFrom() error = nil, want error for missing file")
		}
	})

	t.Run("malformed toml is an error", func(t *testing.T) {
		path := writeConfig(t, tmpDir, `[locations`)
		if _, err := LoadFrom(path); err == nil {
			t.Fatal("LoadFrom() error = nil, want parse error")
		}
	})
}

func TestPath(t *testing.T) {
	origXDG := os.Getenv("XDG_CONFIG_HOME")
	defer os.Setenv("XDG_CONFIG_HOME", origXDG)

	os.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	want := filepath.Join("/tmp/xdg", ConfigDir, ConfigFile)
	if got := Path(); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare tilde", "~", home},
		{"tilde prefix", "~/x/y", filepath.Join(home, "x/y")},
		{"no tilde", "/etc/passwd", "/etc/passwd"},
		{"tilde mid-path untouched", "/a/~/b", "/a/~/b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandTilde(tt.input); got != tt.want {
				t.Errorf("ExpandTilde(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
