package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.NRGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestRunSingleFileDefaultOutput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "photo.png")
	writePNG(t, src)

	core, logs := observer.New(zap.InfoLevel)
	require.NoError(t, run(context.Background(), []string{src}, &bytes.Buffer{}, zap.New(core)))

	assert.FileExists(t, filepath.Join(dir, "photo_clean.png"))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "image cleaned", logs.All()[0].Message)
}

func TestRunDirectory(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"))
	writePNG(t, filepath.Join(dir, "nested", "b.png"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	err := run(context.Background(), []string{"-d", dir, "-q", "80"}, &bytes.Buffer{}, zap.NewNop())
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "cleaned", "a.png"))
	assert.FileExists(t, filepath.Join(dir, "cleaned", "nested", "b.png"))
	assert.NoFileExists(t, filepath.Join(dir, "cleaned", "notes.txt"))
}

func TestRunDirectoryReportsFailures(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "good.png"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.jpg"), []byte("not an image"), 0o644))

	err := run(context.Background(), []string{"-d", dir}, &bytes.Buffer{}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
	assert.FileExists(t, filepath.Join(dir, "cleaned", "good.png"))
}

func TestRunUsage(t *testing.T) {
	var stderr bytes.Buffer
	err := run(context.Background(), nil, &stderr, zap.NewNop())
	assert.ErrorIs(t, err, errUsage)
	assert.Contains(t, stderr.String(), "usage:")

	err = run(context.Background(), []string{"-d", "x", "file.png"}, &stderr, zap.NewNop())
	assert.ErrorIs(t, err, errUsage)
}

func TestRunRejectsUnsupportedFile(t *testing.T) {
	err := run(context.Background(), []string{"model.stl"}, &bytes.Buffer{}, zap.NewNop())
	assert.Error(t, err)
}
