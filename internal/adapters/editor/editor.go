package editor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"sportspack/internal/ports"
)

// Editor implements ports.ContentEditor by round-tripping content through a
// temporary file opened in the user's editor
type Editor struct {
	lookup func() string
}

// Ensure Editor implements ContentEditor
var _ ports.ContentEditor = (*Editor)(nil)

// New creates an editor using $EDITOR, $VISUAL or a common editor on PATH
func New() *Editor {
	return &Editor{lookup: findEditor}
}

// Edit writes content to a temporary file, waits for the editor to exit
// and returns the file's new content
func (e *Editor) Edit(ctx context.Context, name, content string) (string, error) {
	// $EDITOR may carry arguments, e.g. "code --wait"
	fields := strings.Fields(e.lookup())
	if len(fields) == 0 {
		return "", fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	f, err := os.CreateTemp("", "sportspack-"+sanitize(name)+"-*.md")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}

	cmd := exec.CommandContext(ctx, fields[0], append(fields[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor exited with error: %w", err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read edited file: %w", err)
	}
	return string(edited), nil
}

// findEditor returns the editor to use
func findEditor() string {
	// Check $EDITOR first
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}

	// Check $VISUAL
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}

	// Try common editors
	editors := []string{"nvim", "vim", "vi", "nano"}
	for _, editor := range editors {
		if path, err := exec.LookPath(editor); err == nil {
			return path
		}
	}

	return ""
}

// maxNameLen keeps temp file names well under filesystem limits
const maxNameLen = 40

// sanitize maps name to a short ASCII fragment safe for a file name
func sanitize(name string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	if len(safe) > maxNameLen {
		safe = safe[:maxNameLen]
	}
	return safe
}
