package row

import "github.com/charmbracelet/lipgloss"

type Glyphs struct {
	Check   string
	Open    string
	Cursor  string
	Divider string
}

var (
	UnicodeGlyphs = Glyphs{Check: "✓", Open: " ", Cursor: "›", Divider: "│"}
	ASCIIGlyphs   = Glyphs{Check: "x", Open: " ", Cursor: ">", Divider: "|"}
)

type Theme struct {
	Glyphs Glyphs

	MarkerOpen lipgloss.Style
	MarkerDone lipgloss.Style
	Title      lipgloss.Style
	TitleDone  lipgloss.Style

	Action         lipgloss.Style
	Cancel         lipgloss.Style
	ActionDisabled lipgloss.Style
	Divider        lipgloss.Style
	Cursor         lipgloss.Style
}

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorDone    = ac("#1DB863", "#1DB863")
	colorText    = ac("#666666", "250")
	colorMarker  = ac("#B2B2B2", "244")
	colorCancel  = ac("#B2B2B2", "244")
	colorDivider = ac("252", "238")
	colorAccent  = ac("27", "62")
)

func DefaultTheme() Theme {
	return Theme{
		Glyphs:         UnicodeGlyphs,
		MarkerOpen:     lipgloss.NewStyle().Foreground(colorMarker),
		MarkerDone:     lipgloss.NewStyle().Foreground(colorDone).Bold(true),
		Title:          lipgloss.NewStyle().Foreground(colorText),
		TitleDone:      lipgloss.NewStyle().Foreground(colorDone).Strikethrough(true),
		Action:         lipgloss.NewStyle().Foreground(colorText),
		Cancel:         lipgloss.NewStyle().Foreground(colorCancel),
		ActionDisabled: lipgloss.NewStyle().Foreground(colorMarker).Faint(true),
		Divider:        lipgloss.NewStyle().Foreground(colorDivider),
		Cursor:         lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
	}
}

func (t Theme) WithGlyphs(g Glyphs) Theme {
	t.Glyphs = g
	return t
}

// Look is everything about a row's appearance that depends on task state.
type Look struct {
	MarkerGlyph string
	Marker      lipgloss.Style
	Title       lipgloss.Style

	EditLabel     string
	Edit          lipgloss.Style
	Trash         lipgloss.Style
	TrashDisabled bool
}

// Look depends only on (done, editing).
func (t Theme) Look(done, editing bool) Look {
	l := Look{
		MarkerGlyph: t.Glyphs.Open,
		Marker:      t.MarkerOpen,
		Title:       t.Title,
		EditLabel:   "edit",
		Edit:        t.Action,
		Trash:       t.Action,
	}
	if done {
		l.MarkerGlyph = t.Glyphs.Check
		l.Marker = t.MarkerDone
		l.Title = t.TitleDone
	}
	if editing {
		l.EditLabel = "cancel"
		l.Edit = t.Cancel
		l.Trash = t.ActionDisabled
		l.TrashDisabled = true
	}
	return l
}
