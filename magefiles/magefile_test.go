package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCountGoLines(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.go"), "package a\n\n  \nfunc A() {}\n")
	writeFile(t, filepath.Join(root, "a_test.go"), "package a\n\nfunc TestA() {}")
	writeFile(t, filepath.Join(root, "_examples", "x", "x.go"), "package x\nfunc X() {}\n")
	writeFile(t, filepath.Join(root, "notes.txt"), "not go\n")

	prod, test, err := countGoLines(root)
	require.NoError(t, err)
	assert.Equal(t, 2, prod)
	assert.Equal(t, 2, test)
}

func TestCountDocWords(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "DESIGN.md"), "# Design\n\nthree  words\there\n")
	writeFile(t, filepath.Join(root, "bin", "skip.md"), "ignored words\n")

	words, err := countDocWords(root)
	require.NoError(t, err)
	assert.Equal(t, 5, words)
}

func TestCountCorpusPapers(t *testing.T) {
	n, err := countCorpusPapers(filepath.Join("..", sampleCorpus))
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	n, err = countCorpusPapers(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Zero(t, n)
}
