package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigDir(t *testing.T) {
	t.Run("override", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "/opt/lrsetup")
		assert.Equal(t, "/opt/lrsetup", ConfigDir())
	})

	t.Run("xdg config home", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "")
		t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
		assert.Equal(t, filepath.Join("/xdg/config", "lrsetup"), ConfigDir())
		assert.Equal(t, filepath.Join("/xdg/config", "lrsetup", "config.toml"), UserConfigPath())
	})
}

func TestStateDir(t *testing.T) {
	t.Setenv(EnvStateDir, "")
	t.Setenv("XDG_STATE_HOME", "/xdg/state")
	assert.Equal(t, filepath.Join("/xdg/state", "lrsetup"), StateDir())
}

func TestProjectConfigPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/content/so101ai", "lrsetup.toml"), ProjectConfigPath("/content/so101ai"))
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"absolute", "/workspace", "/workspace"},
		{"tilde only", "~", home},
		{"tilde slash", "~/so101ai", filepath.Join(home, "so101ai")},
		{"other user", "~bob/x", "~bob/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHome(tt.in))
		})
	}
}
