package hook

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shnupta/sessioner/internal/tmux"
)

// Markers delimiting the block sessioner manages inside a tmux config file.
const (
	blockStart = "# >>> sessioner hooks >>>"
	blockEnd   = "# <<< sessioner hooks <<<"
)

// Command returns the shell command tmux runs for a hook event.
// #{q:...} makes tmux shell-quote the session name before expansion.
func Command(bin, event string) string {
	return fmt.Sprintf("%s hook %s #{q:hook_session_name}", tmux.Quote(bin), event)
}

// Install registers every sessioner hook with the running tmux server via
// setHook. It stops at the first failure.
func Install(bin string, setHook func(event, cmd string) error) error {
	for _, ev := range Events {
		if err := setHook(ev, Command(bin, ev)); err != nil {
			return fmt.Errorf("install %s: %w", ev, err)
		}
	}
	return nil
}

// WriteConf writes the hook registrations into a tmux config file so they
// survive a server restart. Everything outside the sessioner block is
// preserved and an existing block is replaced.
func WriteConf(path, bin string) error {
	var existing string
	if data, err := os.ReadFile(path); err == nil {
		existing = string(data)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var b strings.Builder
	b.WriteString(stripBlock(existing))
	if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(blockStart + "\n")
	for _, ev := range Events {
		fmt.Fprintf(&b, "set-hook -g %s %s\n", ev, tmux.Quote(tmux.RunShell(Command(bin, ev))))
	}
	b.WriteString(blockEnd + "\n")

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// stripBlock removes a previously written sessioner block. An unterminated
// block is removed through the end of the file.
func stripBlock(s string) string {
	start := strings.Index(s, blockStart)
	if start < 0 {
		return s
	}
	rest := s[start:]
	end := strings.Index(rest, blockEnd)
	if end < 0 {
		return s[:start]
	}
	tail := rest[end+len(blockEnd):]
	tail = strings.TrimPrefix(tail, "\n")
	return s[:start] + tail
}
