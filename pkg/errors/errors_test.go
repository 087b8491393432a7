package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/lrsetup/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "camera",
			code:    errors.ErrCameraNotFound,
			message: "no camera matches USB2.0_CAM1",
			wantStr: "[CAMERA_NOT_FOUND] no camera matches USB2.0_CAM1",
		},
		{
			name:    "invalid input",
			code:    errors.ErrInvalidInput,
			message: "unknown service",
			wantStr: "[INVALID_INPUT] unknown service",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrFileNotFound, "%s not found under %s", "pyproject.toml", "/content/so101ai/lerobot")
	assert.Equal(t, "pyproject.toml not found under /content/so101ai/lerobot", err.Message)
	assert.Equal(t, errors.ErrFileNotFound, err.Code)
}

func TestWrap(t *testing.T) {
	base := fmt.Errorf("exit status 128")

	err := errors.Wrap(base, errors.ErrCommandFailed, "git clone failed")
	require.NotNil(t, err)
	assert.Equal(t, "[COMMAND_FAILED] git clone failed: exit status 128", err.Error())
	assert.Same(t, base, err.Unwrap())
	assert.True(t, stderrors.Is(err, base))

	wrapped := errors.Wrapf(base, errors.ErrLoginFailed, "%s login failed", "wandb")
	assert.Equal(t, "wandb login failed", wrapped.Message)
}

func TestWrap_NilError(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "unused"))
	assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "unused %d", 1))
}

func TestIs_ComparesCodes(t *testing.T) {
	err := errors.Wrap(fmt.Errorf("boom"), errors.ErrSecretNotFound, "HF_TOKEN missing")

	assert.True(t, stderrors.Is(err, errors.New(errors.ErrSecretNotFound, "")))
	assert.False(t, stderrors.Is(err, errors.New(errors.ErrLoginFailed, "")))
}

func TestDetails(t *testing.T) {
	err := errors.New(errors.ErrFileWrite, "cannot write manifest").
		WithDetail("path", "/tmp/pyproject.toml").
		WithDetails(map[string]interface{}{"lines": 3, "dryRun": false})

	assert.Equal(t, map[string]interface{}{
		"path":   "/tmp/pyproject.toml",
		"lines":  3,
		"dryRun": false,
	}, errors.GetErrorDetails(err))

	bare := &errors.SetupError{Code: errors.ErrInternal}
	bare.WithDetail("k", "v")
	assert.Equal(t, "v", bare.Details["k"])
}

func TestCodeHelpers(t *testing.T) {
	inner := errors.New(errors.ErrManifestParse, "bad inline array")
	outer := fmt.Errorf("patching: %w", inner)

	assert.True(t, errors.IsErrorCode(outer, errors.ErrManifestParse))
	assert.False(t, errors.IsErrorCode(outer, errors.ErrFileAccess))
	assert.Equal(t, errors.ErrManifestParse, errors.GetErrorCode(outer))

	plain := fmt.Errorf("plain")
	assert.False(t, errors.IsErrorCode(plain, errors.ErrUnknown))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(plain))
	assert.Nil(t, errors.GetErrorDetails(plain))
}
