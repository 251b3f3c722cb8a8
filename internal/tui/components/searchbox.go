package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avelius/marquee/internal/tui/styles"
)

// SearchBox wraps a text input and tracks edits so the owning view can
// distinguish a real keystroke from cursor movement or focus changes.
type SearchBox struct {
	input     textinput.Model
	prevQuery string
}

// NewSearchBox creates a search input
func NewSearchBox(placeholder string) SearchBox {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "🔍 "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle
	return SearchBox{input: ti}
}

// Focus focuses the input
func (s *SearchBox) Focus() tea.Cmd {
	return s.input.Focus()
}

// Blur removes focus
func (s *SearchBox) Blur() {
	s.input.Blur()
}

// Focused reports whether the input has focus
func (s SearchBox) Focused() bool {
	return s.input.Focused()
}

// Query returns the current input text
func (s SearchBox) Query() string {
	return s.input.Value()
}

// SetValueQuiet replaces the input text without registering an edit, so a
// programmatic restore does not retrigger the type-ahead pipeline.
func (s *SearchBox) SetValueQuiet(value string) {
	s.input.SetValue(value)
	s.input.CursorEnd()
	s.prevQuery = value
}

// Clear empties the input and resets edit tracking
func (s *SearchBox) Clear() {
	s.input.SetValue("")
	s.prevQuery = ""
}

// QueryChanged returns true if the text changed since the last check and
// updates the tracked value
func (s *SearchBox) QueryChanged() bool {
	current := s.input.Value()
	if current != s.prevQuery {
		s.prevQuery = current
		return true
	}
	return false
}

// SetWidth resizes the input
func (s *SearchBox) SetWidth(width int) {
	if width < 10 {
		width = 10
	}
	s.input.Width = width
}

// Init starts the cursor blink
func (s SearchBox) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards a message to the underlying input
func (s SearchBox) Update(msg tea.Msg) (SearchBox, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// View renders the input
func (s SearchBox) View() string {
	return s.input.View()
}
