package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/foreclosure-parser/internal/common"
)

func TestPromptPaths(t *testing.T) {
	cfg := common.DefaultConfig()
	in := strings.NewReader("in/notices\n\n  \nout.xlsx\n")
	var out bytes.Buffer

	promptPaths(in, &out, cfg)

	assert.Equal(t, "in/notices", cfg.Input.NoticeDir)
	assert.Equal(t, "judgments", cfg.Input.JudgmentDir)
	assert.Equal(t, "affirmations", cfg.Input.AffirmationDir)
	assert.Equal(t, "out.xlsx", cfg.Output.Path)
	assert.Contains(t, out.String(), "Judgment folder [judgments]: ")
}

func TestRun_EmptyFoldersAreCreated(t *testing.T) {
	dir := t.TempDir()
	cfg := common.DefaultConfig()
	cfg.Input.NoticeDir = filepath.Join(dir, "notices")
	cfg.Input.JudgmentDir = filepath.Join(dir, "judgments")
	cfg.Input.AffirmationDir = filepath.Join(dir, "affirmations")
	cfg.Output.Path = filepath.Join(dir, "out", "combined_output.csv")
	cfg.Database.DSN = filepath.Join(dir, "cases.db")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	res, err := run(context.Background(), cfg, logger)
	require.NoError(t, err)
	assert.Empty(t, res.Records)
	assert.NotEmpty(t, res.RunID)

	for _, d := range []string{cfg.Input.NoticeDir, cfg.Input.JudgmentDir, cfg.Input.AffirmationDir} {
		info, err := os.Stat(d)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	b, err := os.ReadFile(cfg.Output.Path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "Index Number,Plaintiff,Property Address,Borough"))

	_, err = os.Stat(cfg.Database.DSN)
	assert.NoError(t, err)
}

func TestOverrideString(t *testing.T) {
	v := "a"
	overrideString(&v, "")
	assert.Equal(t, "a", v)
	overrideString(&v, "b")
	assert.Equal(t, "b", v)
}
