package editor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// script writes an executable shell script standing in for the editor
func script(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-editor")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestEditor_Edit(t *testing.T) {
	editorPath := script(t, `printf 'edited: ' | cat - "$1" > "$1.new" && mv "$1.new" "$1"`)
	e := &Editor{lookup: func() string { return editorPath }}

	got, err := e.Edit(context.Background(), "Group A", "kick-off 18:00")
	require.NoError(t, err)
	assert.Equal(t, "edited: kick-off 18:00", got)
}

func TestEditor_EditorFails(t *testing.T) {
	e := &Editor{lookup: func() string { return script(t, "exit 3") }}

	_, err := e.Edit(context.Background(), "x", "content")
	assert.ErrorContains(t, err, "editor exited with error")
}

func TestEditor_NoEditor(t *testing.T) {
	for _, editor := range []string{"", "   ", "\t\n"} {
		e := &Editor{lookup: func() string { return editor }}

		_, err := e.Edit(context.Background(), "x", "content")
		assert.ErrorContains(t, err, "no editor found", "editor %q", editor)
	}
}

func TestEditor_LongName(t *testing.T) {
	editorPath := script(t, `printf 'ok' > "$1"`)
	e := &Editor{lookup: func() string { return editorPath }}

	got, err := e.Edit(context.Background(), strings.Repeat("Champions League Group Stage ", 50), "x")
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}

func TestFindEditor_PrefersEnv(t *testing.T) {
	t.Setenv("EDITOR", "my-editor")
	t.Setenv("VISUAL", "other")
	assert.Equal(t, "my-editor", findEditor())

	t.Setenv("EDITOR", "")
	assert.Equal(t, "other", findEditor())
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "Group_A__2026_", sanitize("Group A (2026)"))
	assert.Equal(t, "Z_rich", sanitize("Zürich"))
	assert.Len(t, sanitize(strings.Repeat("é", 500)), maxNameLen)
}
