package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Editor edits event notes in the user's preferred editor.
type Editor struct {
	command string
}

// New creates an editor. An empty command is resolved from $EDITOR,
// $VISUAL and then common editors on the PATH.
func New(command string) *Editor {
	return &Editor{command: command}
}

// Edit writes initial to a temporary file, opens it and returns the saved
// text without trailing newlines.
func (e *Editor) Edit(initial string) (string, error) {
	f, err := os.CreateTemp("", "shiguang-note-*.md")
	if err != nil {
		return "", fmt.Errorf("failed to create note file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(initial); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write note file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	cmd, err := e.Command(path)
	if err != nil {
		return "", err
	}
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor exited: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read note file: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// Command returns an exec.Cmd that opens path in the editor, attached to
// the terminal.
func (e *Editor) Command(path string) (*exec.Cmd, error) {
	fields := strings.Fields(e.resolve())
	if len(fields) == 0 {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	// "code -w" and similar carry their own arguments
	cmd := exec.Command(fields[0], append(fields[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, nil
}

func (e *Editor) resolve() string {
	if e.command != "" {
		return e.command
	}
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}
	for _, editor := range []string{"nvim", "vim", "vi", "nano"} {
		if path, err := exec.LookPath(editor); err == nil {
			return path
		}
	}
	return ""
}
