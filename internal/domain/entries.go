package domain

import (
	"github.com/shnupta/sessioner/internal/session"
)

// EntryKind discriminates the three kinds of list entries.
type EntryKind int

const (
	KindNewSession EntryKind = iota
	KindLive
	KindDead
)

func (k EntryKind) String() string {
	switch k {
	case KindNewSession:
		return "new"
	case KindLive:
		return "live"
	case KindDead:
		return "dead"
	default:
		return "unknown"
	}
}

// deadLines is the fixed height of a dead entry: header plus exit age.
const deadLines = 2

// LineBlock is the range of display lines an entry occupies.
type LineBlock struct {
	Start int
	Len   int
}

// End returns the first line after the block.
func (b LineBlock) End() int { return b.Start + b.Len }

// Entry is a single navigable item in the session list.
type Entry struct {
	Kind  EntryKind
	Index int // index into the live or dead slice; unused for KindNewSession
	Block LineBlock
}

// DeriveEntries flattens the session lists into entries laid out on
// contiguous lines starting at 0: the optional new-session entry first, then
// live sessions, then dead sessions, each in list order. The result depends
// only on its arguments.
func DeriveEntries(live []session.Live, dead []session.Dead, includeNewSession bool) []Entry {
	n := len(live) + len(dead)
	if includeNewSession {
		n++
	}
	if n == 0 {
		return nil
	}

	entries := make([]Entry, 0, n)
	line := 0
	add := func(kind EntryKind, idx, size int) {
		entries = append(entries, Entry{Kind: kind, Index: idx, Block: LineBlock{Start: line, Len: size}})
		line += size
	}

	if includeNewSession {
		add(KindNewSession, 0, 1)
	}
	for i, s := range live {
		add(KindLive, i, 1+len(s.PaneTitles()))
	}
	for i := range dead {
		add(KindDead, i, deadLines)
	}
	return entries
}

// TotalLines returns the number of display lines the entries occupy.
func TotalLines(entries []Entry) int {
	if len(entries) == 0 {
		return 0
	}
	return entries[len(entries)-1].Block.End()
}
