package row

import (
	"fmt"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

type Control int

const (
	ControlNone Control = iota
	ControlMarker
	ControlTitle
	ControlEdit
	ControlTrash
)

func (c Control) String() string {
	switch c {
	case ControlMarker:
		return "marker"
	case ControlTitle:
		return "button"
	case ControlEdit:
		return "edit"
	case ControlTrash:
		return "trash"
	default:
		return "none"
	}
}

// ControlID returns the automation identifier for a control, e.g. "trash-3".
func (r *Row) ControlID(c Control) string {
	return fmt.Sprintf("%s-%d", c, r.index)
}

// Row layout, in cells:
//
//	<cursor> [✓] <title ...> <edit  > │ <del>
const (
	cursorW   = 1
	markerW   = 3
	editW     = 6
	trashW    = 3
	minTitleW = 4
)

type span struct{ start, end int }

func (s span) contains(x int) bool { return x >= s.start && x < s.end }

type rowLayout struct {
	marker, title, edit, trash span
	width                      int
}

func layoutFor(width int) rowLayout {
	fixed := cursorW + markerW + 1 + 1 + editW + 3 + trashW + 1
	titleW := width - fixed
	if titleW < minTitleW {
		titleW = minTitleW
	}

	var l rowLayout
	x := cursorW
	l.marker = span{x, x + markerW}
	x += markerW + 1
	l.title = span{x, x + titleW}
	x += titleW + 1
	l.edit = span{x, x + editW}
	x += editW + 3
	l.trash = span{x, x + trashW}
	x += trashW + 1
	l.width = x
	return l
}

// HitTest maps a cell offset within a row rendered at width to the control under it.
func (r *Row) HitTest(x, width int) Control {
	l := layoutFor(width)
	switch {
	case l.marker.contains(x):
		return ControlMarker
	case l.title.contains(x):
		return ControlTitle
	case l.edit.contains(x):
		return ControlEdit
	case l.trash.contains(x):
		return ControlTrash
	default:
		return ControlNone
	}
}

// View renders the row as a single line of the given width.
func (r *Row) View(width int, selected bool) string {
	l := layoutFor(width)
	look := r.theme.Look(r.task.Done, r.editing)
	titleW := l.title.end - l.title.start

	var b strings.Builder

	if selected {
		b.WriteString(r.theme.Cursor.Render(r.theme.Glyphs.Cursor))
	} else {
		b.WriteString(" ")
	}

	b.WriteString(look.Marker.Render("[" + look.MarkerGlyph + "]"))
	b.WriteString(" ")

	if r.editing {
		// Leave one cell for the cursor.
		r.input.Width = titleW - 1
		b.WriteString(fitCells(r.input.View(), titleW))
	} else {
		title := xansi.Truncate(r.input.Value(), titleW, "…")
		b.WriteString(fitCells(look.Title.Render(title), titleW))
	}
	b.WriteString(" ")

	b.WriteString(look.Edit.Render(padRight(look.EditLabel, editW)))
	b.WriteString(" " + r.theme.Divider.Render(r.theme.Glyphs.Divider) + " ")
	b.WriteString(look.Trash.Render(padRight("del", trashW)))
	b.WriteString(" ")

	return b.String()
}

func padRight(s string, w int) string {
	if n := xansi.StringWidth(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}

// fitCells pads or cuts a styled string to exactly w cells.
func fitCells(s string, w int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	n := xansi.StringWidth(s)
	switch {
	case n < w:
		return s + strings.Repeat(" ", w-n)
	case n > w:
		return xansi.Truncate(s, w, "") + "\x1b[0m"
	}
	return s
}
