package treesitter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marek/symq/internal/ports"
)

func TestDetect_Extensions(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"main.py", "python"},
		{"src/app.tsx", "tsx"},
		{"src/app.ts", "typescript"},
		{"lib/util.go", "go"},
		{"kernel.cu", "cuda"},
		{"infra/main.tf", "hcl"},
		{"mod.rs", "rust"},
		{"deep/nested/page.html", "html"},
		{"header.h", "c"},
		{"widget.hpp", "cpp"},
	}
	for _, tc := range cases {
		got, err := detectLanguage(tc.path, "", knownLanguage)
		require.NoError(t, err, tc.path)
		assert.Equal(t, tc.want, got, tc.path)
	}
}

func TestDetect_CaseInsensitiveExtension(t *testing.T) {
	got, err := detectLanguage("LEGACY.PY", "", knownLanguage)
	require.NoError(t, err)
	assert.Equal(t, "python", got)
}

func TestDetect_KnownFilenames(t *testing.T) {
	cases := map[string]string{
		"Dockerfile":         "dockerfile",
		"proj/Makefile":      "make",
		"sub/CMakeLists.txt": "cmake",
		"Gemfile":            "ruby",
		".bashrc":            "bash",
	}
	for path, want := range cases {
		got, err := detectLanguage(path, "", knownLanguage)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
}

func TestDetect_UnknownExtension(t *testing.T) {
	_, err := detectLanguage("data.xyz", "", knownLanguage)
	var detErr *ports.DetectionError
	require.ErrorAs(t, err, &detErr)
	assert.Equal(t, "data.xyz", detErr.Path)
	assert.Contains(t, err.Error(), "unknown extension")
}

func TestDetect_OverrideWins(t *testing.T) {
	// An override skips the extension table entirely.
	got, err := detectLanguage("notes.txt", "python", knownLanguage)
	require.NoError(t, err)
	assert.Equal(t, "python", got)
}

func TestDetect_OverrideUnknown(t *testing.T) {
	_, err := detectLanguage("notes.txt", "klingon", knownLanguage)
	var detErr *ports.DetectionError
	require.ErrorAs(t, err, &detErr)
	assert.Contains(t, err.Error(), "unknown language")
}

func TestDetect_Shebang(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"#!/usr/bin/env python3\nprint('hi')\n": "python",
		"#!/bin/bash\necho hi\n":                "bash",
		"#!/usr/bin/env node\n":                 "javascript",
	}
	i := 0
	for content, want := range cases {
		path := filepath.Join(dir, "script"+string(rune('a'+i)))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o755))
		got, err := detectLanguage(path, "", knownLanguage)
		require.NoError(t, err, content)
		assert.Equal(t, want, got, content)
		i++
	}
}

func TestDetect_ExtensionlessWithoutShebang(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "README")
	require.NoError(t, os.WriteFile(path, []byte("plain text\n"), 0o644))

	_, err := detectLanguage(path, "", knownLanguage)
	var detErr *ports.DetectionError
	require.ErrorAs(t, err, &detErr)
}

func TestDetect_ShebangNeverOverridesExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tool.rb")
	require.NoError(t, os.WriteFile(path, []byte("#!/usr/bin/env python3\n"), 0o755))

	got, err := detectLanguage(path, "", knownLanguage)
	require.NoError(t, err)
	assert.Equal(t, "ruby", got)
}
