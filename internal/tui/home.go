package tui

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avelius/marquee/internal/domain"
	"github.com/avelius/marquee/internal/service"
	"github.com/avelius/marquee/internal/tui/components"
	"github.com/avelius/marquee/internal/tui/styles"
)

// homeModel is the landing view: the trending and top-rated shelves plus the
// global search box with its type-ahead dropdown and committed result list.
type homeModel struct {
	catalog *service.CatalogService
	logger  *slog.Logger

	searchBox components.SearchBox

	shelfSize int
	trending  []domain.TitleSummary
	topRated  []domain.TitleSummary
	shelfErr  error

	// Type-ahead state. suggestSeq is the input generation: every edit bumps
	// it, and debounce ticks or fetch completions tagged with an older value
	// are dropped.
	suggestSeq      int
	suggestions     []domain.Suggestion
	suggestCursor   int
	showSuggestions bool

	// Committed search state. resultSeq orders in-flight searches the same
	// way suggestSeq orders suggestion fetches.
	resultSeq    int
	hasSearched  bool
	searchQuery  string
	searching    bool
	searchErr    error
	results      []domain.Suggestion
	resultCursor int
	focusResults bool

	width  int
	height int
}

func newHomeModel(catalog *service.CatalogService, logger *slog.Logger, shelfSize int) homeModel {
	if shelfSize <= 0 {
		shelfSize = 6
	}
	m := homeModel{
		catalog:       catalog,
		logger:        logger,
		searchBox:     components.NewSearchBox("Search titles..."),
		shelfSize:     shelfSize,
		suggestCursor: -1,
	}
	m.searchBox.Focus()
	return m
}

func (m homeModel) Init() tea.Cmd {
	return tea.Batch(
		m.searchBox.Init(),
		LoadTrendingCmd(m.catalog, m.shelfSize),
		LoadTopRatedCmd(m.catalog, m.shelfSize),
	)
}

// RestoreSearch re-enters the committed-search state after a Back from a
// detail view that originated here. The query is written back into the input
// without registering as an edit, so the type-ahead pipeline never starts;
// the committed-results guard keeps the dropdown shut for this query.
func (m *homeModel) RestoreSearch(query string) tea.Cmd {
	m.searchBox.SetValueQuiet(query)
	m.hasSearched = true
	m.searchQuery = query
	m.searching = true
	m.searchErr = nil
	m.results = nil
	m.resultCursor = 0
	m.focusResults = true
	m.resultSeq++
	return SearchCmd(m.catalog, query, m.resultSeq)
}

// ResetSearch drops every piece of search state: input text, suggestions,
// committed results, and any in-flight work (by bumping both generations).
func (m *homeModel) ResetSearch() {
	m.searchBox.Clear()
	m.suggestSeq++
	m.resultSeq++
	m.suggestions = nil
	m.suggestCursor = -1
	m.showSuggestions = false
	m.hasSearched = false
	m.searchQuery = ""
	m.searching = false
	m.searchErr = nil
	m.results = nil
	m.resultCursor = 0
	m.focusResults = false
}

// HasSearch reports whether a committed search is active
func (m homeModel) HasSearch() bool {
	return m.hasSearched
}

func (m *homeModel) setSize(width, height int) {
	m.width = width
	m.height = height
	m.searchBox.SetWidth(width - 8)
}

func (m homeModel) Update(msg tea.Msg) (homeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case TrendingLoadedMsg:
		if msg.Err != nil {
			m.shelfErr = msg.Err
			m.logger.Warn("trending shelf failed", "error", msg.Err)
			return m, nil
		}
		m.trending = msg.Titles
		return m, nil

	case TopRatedLoadedMsg:
		if msg.Err != nil {
			m.shelfErr = msg.Err
			m.logger.Warn("top rated shelf failed", "error", msg.Err)
			return m, nil
		}
		m.topRated = msg.Titles
		return m, nil

	case SuggestDebounceMsg:
		// A tick from a superseded keystroke: drop it
		if msg.Seq != m.suggestSeq {
			return m, nil
		}
		query := m.searchBox.Query()
		if query == "" {
			return m, nil
		}
		// While committed results for this exact query are on screen the
		// dropdown stays shut
		if m.hasSearched && query == m.searchQuery {
			return m, nil
		}
		return m, FetchSuggestionsCmd(m.catalog, m.logger, query, m.suggestSeq)

	case SuggestionsMsg:
		// Stale if the input has moved on in either generation or content
		if msg.Seq != m.suggestSeq || msg.Query != m.searchBox.Query() {
			return m, nil
		}
		if m.hasSearched && msg.Query == m.searchQuery {
			return m, nil
		}
		m.suggestions = msg.Items
		m.suggestCursor = -1
		m.showSuggestions = len(msg.Items) > 0
		return m, nil

	case SearchResultsMsg:
		if msg.Seq != m.resultSeq {
			return m, nil
		}
		m.searching = false
		if msg.Err != nil {
			m.searchErr = msg.Err
			m.results = nil
			return m, nil
		}
		m.searchErr = nil
		m.results = msg.Items
		m.resultCursor = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.searchBox, cmd = m.searchBox.Update(msg)
	return m, cmd
}

func (m homeModel) handleKey(msg tea.KeyMsg) (homeModel, tea.Cmd) {
	switch msg.String() {
	case "tab":
		// Release or reclaim the input so list and app-level keys work
		if m.searchBox.Focused() {
			m.searchBox.Blur()
			return m, nil
		}
		m.focusResults = false
		cmd := m.searchBox.Focus()
		return m, cmd

	case "esc":
		if m.showSuggestions {
			m.suggestSeq++
			m.showSuggestions = false
			m.suggestions = nil
			m.suggestCursor = -1
			return m, nil
		}
		if m.hasSearched {
			m.ResetSearch()
			return m, nil
		}
		return m, nil

	case "up":
		if m.showSuggestions {
			if m.suggestCursor > -1 {
				m.suggestCursor--
			}
			return m, nil
		}
		if m.focusResults {
			if m.resultCursor > 0 {
				m.resultCursor--
			} else {
				m.focusResults = false
				cmd := m.searchBox.Focus()
				return m, cmd
			}
			return m, nil
		}

	case "down":
		if m.showSuggestions {
			if m.suggestCursor < len(m.suggestions)-1 {
				m.suggestCursor++
			}
			return m, nil
		}
		if m.hasSearched && len(m.results) > 0 {
			if !m.focusResults {
				m.focusResults = true
				m.searchBox.Blur()
			} else if m.resultCursor < len(m.results)-1 {
				m.resultCursor++
			}
			return m, nil
		}

	case "enter":
		if m.showSuggestions && m.suggestCursor >= 0 && m.suggestCursor < len(m.suggestions) {
			picked := m.suggestions[m.suggestCursor]
			query := m.searchBox.Query()
			m.suggestSeq++
			m.showSuggestions = false
			m.suggestions = nil
			m.suggestCursor = -1
			return m, openDetail(picked.TitleID, NavContext{From: FromSearch, Query: query})
		}
		if m.focusResults && m.resultCursor < len(m.results) {
			picked := m.results[m.resultCursor]
			return m, openDetail(picked.TitleID, NavContext{From: FromSearch, Query: m.searchQuery})
		}
		query := m.searchBox.Query()
		if query == "" {
			return m, nil
		}
		// Commit: cancel any pending type-ahead and run the real search
		m.suggestSeq++
		m.showSuggestions = false
		m.suggestions = nil
		m.suggestCursor = -1
		m.hasSearched = true
		m.searchQuery = query
		m.searching = true
		m.searchErr = nil
		m.resultSeq++
		return m, SearchCmd(m.catalog, query, m.resultSeq)
	}

	var cmd tea.Cmd
	m.searchBox, cmd = m.searchBox.Update(msg)
	if m.searchBox.QueryChanged() {
		changeCmd := m.handleQueryChange()
		return m, tea.Batch(cmd, changeCmd)
	}
	return m, cmd
}

// handleQueryChange runs once per input edit. It invalidates outstanding
// type-ahead work and schedules a fresh debounce tick, except when the query
// went empty (terminal: clear and stop).
func (m *homeModel) handleQueryChange() tea.Cmd {
	m.suggestSeq++
	m.showSuggestions = false
	m.suggestCursor = -1

	query := m.searchBox.Query()
	if query == "" {
		m.suggestions = nil
		return nil
	}
	return SuggestDebounceCmd(m.suggestSeq)
}

func (m homeModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Marquee"))
	b.WriteString("  ")
	b.WriteString(styles.DimStyle.Render("movies & series"))
	b.WriteString("\n\n")
	b.WriteString(m.searchBox.View())
	b.WriteString("\n")

	if m.showSuggestions {
		b.WriteString(m.viewSuggestions())
		b.WriteString("\n")
	}

	if m.hasSearched {
		b.WriteString("\n")
		b.WriteString(m.viewResults())
	} else {
		b.WriteString("\n")
		b.WriteString(m.viewShelves())
	}

	return b.String()
}

func (m homeModel) viewSuggestions() string {
	var rows []string
	for i, s := range m.suggestions {
		line := styles.Truncate(s.Name, 44)
		if s.VoteAverage > 0 {
			line = fmt.Sprintf("%-44s %s", styles.Truncate(s.Name, 44),
				styles.DimStyle.Render(fmt.Sprintf("★ %.1f", s.VoteAverage)))
		}
		if i == m.suggestCursor {
			line = styles.SelectedStyle.Render(line)
		}
		rows = append(rows, line)
	}
	return styles.DropdownStyle.Render(strings.Join(rows, "\n"))
}

func (m homeModel) viewResults() string {
	var b strings.Builder
	b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("Results for %q", m.searchQuery)))
	b.WriteString("\n\n")

	switch {
	case m.searching:
		b.WriteString(styles.DimStyle.Render("Searching..."))
	case m.searchErr != nil:
		b.WriteString(styles.ErrorStyle.Render("Search failed: " + m.searchErr.Error()))
	case len(m.results) == 0:
		b.WriteString(styles.DimStyle.Render("No titles matched."))
	default:
		for i, r := range m.results {
			cursor := "  "
			name := styles.Truncate(r.Name, 48)
			line := fmt.Sprintf("%s%-48s ★ %.1f", cursor, name, r.VoteAverage)
			if m.focusResults && i == m.resultCursor {
				line = styles.SelectedStyle.Render("> " + fmt.Sprintf("%-48s ★ %.1f", name, r.VoteAverage))
			}
			b.WriteString(line)
			b.WriteString("\n")
			if r.Overview != "" {
				b.WriteString("    " + styles.DimStyle.Render(styles.Truncate(r.Overview, m.width-6)))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func (m homeModel) viewShelves() string {
	var b strings.Builder
	b.WriteString(renderShelf("Trending Now", m.trending))
	b.WriteString("\n")
	b.WriteString(renderShelf("Top Rated", m.topRated))
	if m.shelfErr != nil {
		b.WriteString("\n")
		b.WriteString(styles.ErrorStyle.Render("Some shelves failed to load."))
	}
	return b.String()
}

func renderShelf(label string, titles []domain.TitleSummary) string {
	var b strings.Builder
	b.WriteString(styles.AccentStyle.Render(label))
	b.WriteString("\n")
	if len(titles) == 0 {
		b.WriteString(styles.DimStyle.Render("  loading..."))
		b.WriteString("\n")
		return b.String()
	}
	for _, t := range titles {
		year := ""
		if t.StartYear > 0 {
			year = fmt.Sprintf("(%d)", t.StartYear)
		}
		meta := styles.DimStyle.Render(fmt.Sprintf("%s %s ★ %.1f", t.GenreName, year, t.VoteAverage))
		b.WriteString(fmt.Sprintf("  %-40s %s\n", styles.Truncate(t.Name, 40), meta))
	}
	return b.String()
}

func openDetail(titleID string, ctx NavContext) tea.Cmd {
	return func() tea.Msg {
		return OpenDetailMsg{TitleID: titleID, Ctx: ctx}
	}
}
