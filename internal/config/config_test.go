package config

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no .env here
	c, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *c != *Defaults() {
		t.Fatalf("expected defaults, got %+v", c)
	}
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "billiard.toml")
	body := "window_width = 800\ntitle = \"Felt\"\nsound = false\nevent_lines = 4\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BILLIARD_EVENT_LINES", "12")
	t.Setenv("BILLIARD_VERBOSE", "true")
	t.Setenv("BILLIARD_TPS", "not-a-number")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.WindowWidth != 800 || c.Title != "Felt" || c.Sound {
		t.Errorf("file values not applied: %+v", c)
	}
	if c.EventLines != 12 || !c.Verbose {
		t.Errorf("environment should override the file: %+v", c)
	}
	if c.TPS != 60 {
		t.Errorf("unparseable env value should be ignored, tps=%d", c.TPS)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("BILLIARD_TITLE=FromDotEnv\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// godotenv sets the variable for the process; make sure it is cleared.
	t.Setenv("BILLIARD_TITLE", "")
	os.Unsetenv("BILLIARD_TITLE")

	c, err := Load(filepath.Join(dir, "absent.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Title != "FromDotEnv" {
		t.Fatalf("expected title from .env, got %q", c.Title)
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("tps = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for tps=0")
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(path, []byte("window_width = \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestValidate_FrameTimeBounds(t *testing.T) {
	for _, ft := range []float64{0, -0.01, 0.1} {
		c := Defaults()
		c.FrameTime = ft
		if err := c.Validate(); err == nil {
			t.Errorf("frame_time %g should be rejected", ft)
		}
	}
	c := Defaults()
	c.FrameTime = 1.0 / 30
	if err := c.Validate(); err != nil {
		t.Errorf("frame_time 1/30 should pass: %v", err)
	}
}

func TestLoad_UnreadableDotEnvIsLogged(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.Mkdir(filepath.Join(dir, ".env"), 0o755); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	if _, err := Load(filepath.Join(dir, "absent.toml")); err != nil {
		t.Fatalf("a broken .env should not fail the load: %v", err)
	}
	if !strings.Contains(buf.String(), "[CONFIG] .env not loaded") {
		t.Fatalf("expected a [CONFIG] line about .env, got %q", buf.String())
	}
}

func TestLoad_MissingDotEnvIsQuiet(t *testing.T) {
	t.Chdir(t.TempDir())
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err != nil {
		t.Fatalf("load: %v", err)
	}
	if strings.Contains(buf.String(), ".env") {
		t.Fatalf("a missing .env should not be logged, got %q", buf.String())
	}
}
