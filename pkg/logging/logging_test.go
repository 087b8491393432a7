package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			t.Setenv("LRSETUP_STATE_DIR", tempDir)

			SetupLogger(tt.verbosity)

			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())

			logPath := filepath.Join(tempDir, "lrsetup.log")
			_, err := os.Stat(logPath)
			assert.NoError(t, err, "log file was not created at %s", logPath)
		})
	}
}

func TestGetLogFilePath(t *testing.T) {
	t.Run("state dir override", func(t *testing.T) {
		t.Setenv("LRSETUP_STATE_DIR", "/custom/state")
		assert.Equal(t, filepath.Join("/custom/state", "lrsetup.log"), getLogFilePath())
	})

	t.Run("xdg state home", func(t *testing.T) {
		t.Setenv("LRSETUP_STATE_DIR", "")
		t.Setenv("XDG_STATE_HOME", "/xdg/state")
		assert.Equal(t, filepath.Join("/xdg/state", "lrsetup", "lrsetup.log"), getLogFilePath())
	})
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	logger := GetLogger("manifest")
	logger.Info().Msg("patched")

	assert.Contains(t, buf.String(), `"component":"manifest"`)
	assert.Contains(t, buf.String(), "patched")
}

func TestLogCommand(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := zerolog.New(&buf)

	LogCommand(logger, "git", "/content/so101ai", []string{"clone", "https://github.com/huggingface/lerobot.git"}, false)

	output := buf.String()
	assert.Contains(t, output, `"command":"git"`)
	assert.Contains(t, output, "lerobot.git")
	assert.Contains(t, output, "Executing command")
}

func TestLogCommand_Sensitive(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := zerolog.New(&buf)

	LogCommand(logger, "python3", "", []string{"-c", "secret-bearing script"}, true)

	output := buf.String()
	assert.Contains(t, output, `"redacted":true`)
	assert.NotContains(t, output, "secret-bearing")
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := zerolog.New(&buf)

	done := LogOperationStart(logger, "install")
	done()

	output := buf.String()
	require.Contains(t, output, "Operation started")
	assert.Contains(t, output, "Operation completed")
	assert.Contains(t, output, "duration")
}
