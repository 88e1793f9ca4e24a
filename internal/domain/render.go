package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/shnupta/sessioner/internal/session"
)

// NewSessionLabel is the header text of the synthetic new-session entry.
const NewSessionLabel = "New session"

// Status suffixes shown after a session name.
const (
	SuffixAttached  = " (attached)"
	SuffixExited    = " (exited)"
	SuffixConnected = " (connected)"
)

// Row is the textual content of one visible line. Header rows carry the
// session name and status suffix separately so they can be styled apart;
// sub rows carry their text in Text and are indented one level.
type Row struct {
	Entry    EntryKind
	Kind     LineKind
	Name     string
	Suffix   string
	Text     string
	Selected bool
}

// Indent returns the nesting level of the row.
func (r Row) Indent() int {
	if r.Kind == LineSub {
		return 1
	}
	return 0
}

// String returns the plain text of the row without styling.
func (r Row) String() string {
	if r.Kind == LineHeader {
		return r.Name + r.Suffix
	}
	return strings.Repeat("  ", r.Indent()) + r.Text
}

// BuildRows turns visible lines into row content. Lines whose entry no
// longer resolves against the snapshot are dropped.
func BuildRows(lines []VisibleLine, entries []Entry, snap session.Snapshot) []Row {
	rows := make([]Row, 0, len(lines))
	var (
		titlesFor = -1
		titles    []string
	)
	for _, vl := range lines {
		if vl.Entry < 0 || vl.Entry >= len(entries) {
			continue
		}
		e := entries[vl.Entry]
		row := Row{Entry: e.Kind, Kind: vl.Kind, Selected: vl.Selected}

		switch e.Kind {
		case KindNewSession:
			row.Name = NewSessionLabel

		case KindLive:
			if e.Index >= len(snap.Live) {
				continue
			}
			l := snap.Live[e.Index]
			if vl.Kind == LineHeader {
				row.Name, row.Suffix = l.Name, liveSuffix(l)
				break
			}
			if titlesFor != vl.Entry {
				titlesFor, titles = vl.Entry, l.PaneTitles()
			}
			if vl.Sub >= len(titles) {
				continue
			}
			row.Text = titles[vl.Sub]

		case KindDead:
			if e.Index >= len(snap.Dead) {
				continue
			}
			d := snap.Dead[e.Index]
			if vl.Kind == LineHeader {
				row.Name, row.Suffix = d.Name, SuffixExited
				break
			}
			row.Text = "exited " + FormatAge(d.Age)
		}
		rows = append(rows, row)
	}
	return rows
}

func liveSuffix(l session.Live) string {
	switch {
	case l.IsCurrent:
		return SuffixAttached
	case l.ConnectedClients > 0:
		return SuffixConnected
	default:
		return ""
	}
}

// FormatAge formats an elapsed duration using its largest whole unit,
// e.g. "45s ago", "2m ago", "3h ago" or "5d ago".
func FormatAge(d time.Duration) string {
	secs := int64(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	switch {
	case secs < 60:
		return fmt.Sprintf("%ds ago", secs)
	case secs < 3600:
		return fmt.Sprintf("%dm ago", secs/60)
	case secs < 86400:
		return fmt.Sprintf("%dh ago", secs/3600)
	default:
		return fmt.Sprintf("%dd ago", secs/86400)
	}
}

// TruncateLines truncates each line of s to at most maxWidth cells.
// Uses ANSI-aware truncation so escape codes don't corrupt the layout.
func TruncateLines(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, maxWidth, "")
	}
	return strings.Join(lines, "\n")
}
