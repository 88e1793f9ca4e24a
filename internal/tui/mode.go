package tui

// Mode represents the current input mode of the TUI.
type Mode int

const (
	// ModeWaiting shows only the waiting message until access is granted.
	ModeWaiting Mode = iota
	ModeBrowse
)
