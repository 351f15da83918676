package common

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, "notices", cfg.Input.NoticeDir)
	assert.Equal(t, "combined_output.csv", cfg.Output.Path)
	assert.Equal(t, "auto", cfg.PDF.Method)
	assert.True(t, cfg.PDF.StrictRead)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "foreclosure.toml")
	body := `
log_level = "debug"

[input]
notice_dir = "in/notices"

[output]
path = "out/cases.xlsx"

[pdf]
workers = 8
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("PDF_WORKERS", "2")
	t.Setenv("PDF_TIMEOUT", "30s")
	t.Setenv("STRICT_READ", "false")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "in/notices", cfg.Input.NoticeDir)
	assert.Equal(t, "out/cases.xlsx", cfg.Output.Path)
	assert.Equal(t, 2, cfg.PDF.Workers)
	assert.Equal(t, 30*time.Second, cfg.PDF.Timeout)
	assert.False(t, cfg.PDF.StrictRead)
	assert.Equal(t, "DEBUG", cfg.SlogLevel())
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[input\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	var appErr *AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, "CONFIG_ERROR", appErr.Code)
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Path = "cases.txt"
	cfg.PDF.Method = "ocr"
	cfg.PDF.Workers = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Contains(t, err.Error(), "output.path")
	assert.Contains(t, err.Error(), "pdf.method")
	assert.Contains(t, err.Error(), "pdf.workers")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("WARN", &buf)
	logger.Info("dropped")
	logger.Warn("kept", "k", "v")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), `"msg":"kept"`)

	buf.Reset()
	NewLogger("chatty", &buf).Info("fallback")
	assert.Contains(t, buf.String(), "fallback")
}

func TestNewCLILogger(t *testing.T) {
	var buf bytes.Buffer
	NewCLILogger("INFO", &buf).Info("hello", "file", "a.pdf")
	assert.Equal(t, "msg=hello file=a.pdf\n", buf.String())
}
