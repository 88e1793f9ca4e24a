package domain

// LineKind tells a header line apart from an entry's sub-item lines.
type LineKind int

const (
	LineHeader LineKind = iota
	LineSub
)

// VisibleLine is one display line inside the viewport.
type VisibleLine struct {
	Entry    int // index into the entries slice
	Kind     LineKind
	Sub      int // sub-item index; meaningful only when Kind == LineSub
	Selected bool
}

// Viewport tracks the topmost visible line of the session list. The offset
// persists between computations so the list only scrolls when the selection
// would otherwise leave the view.
type Viewport struct {
	Offset int
}

// Compute adjusts the scroll offset so the selected entry is in view and
// returns the lines that fall inside [Offset, Offset+rows).
//
// A selected block taller than the viewport is anchored at its top line.
// When everything fits, the offset is always 0. With rows <= 0 nothing is
// emitted and the offset is left untouched.
func (v *Viewport) Compute(entries []Entry, selected, rows int) []VisibleLine {
	if rows <= 0 {
		return nil
	}

	total := TotalLines(entries)

	sel := LineBlock{Start: 0, Len: 1}
	if selected >= 0 && selected < len(entries) {
		sel = entries[selected].Block
	}

	if sel.Start < v.Offset {
		v.Offset = sel.Start
	} else if sel.End() > v.Offset+rows {
		if sel.Len > rows {
			v.Offset = sel.Start
		} else {
			v.Offset = sel.End() - rows
		}
	}

	if total <= rows {
		v.Offset = 0
	} else if v.Offset > total-rows {
		v.Offset = total - rows
	} else if v.Offset < 0 {
		v.Offset = 0
	}

	end := v.Offset + rows
	var lines []VisibleLine
	for i, e := range entries {
		if e.Block.End() <= v.Offset {
			continue
		}
		if e.Block.Start >= end {
			break
		}
		for line := e.Block.Start; line < e.Block.End(); line++ {
			if line < v.Offset || line >= end {
				continue
			}
			vl := VisibleLine{Entry: i, Kind: LineHeader, Selected: i == selected}
			if line > e.Block.Start {
				vl.Kind = LineSub
				vl.Sub = line - e.Block.Start - 1
			}
			lines = append(lines, vl)
		}
	}
	return lines
}
