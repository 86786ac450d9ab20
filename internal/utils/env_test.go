package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file is not an error", func(t *testing.T) {
		set, err := LoadDotEnv(t.TempDir())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.FailTestIfDiff(t, len(set), 0)
	})

	t.Run("it should only set unset variables", func(t *testing.T) {
		dir := t.TempDir()
		content := "TOOLLOOP_TEST_NEW=from-file\nTOOLLOOP_TEST_EXISTING=from-file\n"
		err := os.WriteFile(filepath.Join(dir, DotEnvFile), []byte(content), 0o644)
		if err != nil {
			t.Fatalf("failed to write .env: %v", err)
		}
		t.Setenv("TOOLLOOP_TEST_EXISTING", "from-env")
		t.Setenv("TOOLLOOP_TEST_NEW", "")
		os.Unsetenv("TOOLLOOP_TEST_NEW")

		set, err := LoadDotEnv(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.FailTestIfDiff(t, len(set), 1)
		testboil.FailTestIfDiff(t, os.Getenv("TOOLLOOP_TEST_NEW"), "from-file")
		testboil.FailTestIfDiff(t, os.Getenv("TOOLLOOP_TEST_EXISTING"), "from-env")
	})
}

func TestGetConfigDir(t *testing.T) {
	t.Setenv("TOOLLOOP_CONFIG_HOME", "/tmp/somewhere")
	got, err := GetConfigDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testboil.FailTestIfDiff(t, got, "/tmp/somewhere")
}
