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

// watchlistModel lists the user's saved titles with a local fuzzy
// quick-filter over the loaded entries. Filtering never refetches.
type watchlistModel struct {
	catalog *service.CatalogService
	logger  *slog.Logger

	loading bool
	entries []domain.WatchlistEntry
	err     error

	filter    components.QuickFilter
	filterBox components.SearchBox
	filtering bool
	cursor    int

	width  int
	height int
}

func newWatchlistModel(catalog *service.CatalogService, logger *slog.Logger) watchlistModel {
	return watchlistModel{
		catalog:   catalog,
		logger:    logger,
		filterBox: components.NewSearchBox("Filter..."),
	}
}

// Reload refetches the watchlist
func (m *watchlistModel) Reload() tea.Cmd {
	m.loading = true
	m.err = nil
	m.cursor = 0
	m.filtering = false
	m.filterBox.Clear()
	m.filter.SetPattern("")
	return LoadWatchlistCmd(m.catalog)
}

func (m *watchlistModel) setSize(width, height int) {
	m.width = width
	m.height = height
	m.filterBox.SetWidth(width - 8)
}

func (m watchlistModel) Update(msg tea.Msg) (watchlistModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case WatchlistLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.entries = msg.Entries
		names := make([]string, len(msg.Entries))
		for i, e := range msg.Entries {
			names[i] = e.Name
		}
		m.filter.SetSource(names)
		m.cursor = 0
		return m, nil

	case WatchlistUpdatedMsg:
		// A removal from this view; reload to reflect it
		if msg.Err == nil && !msg.Saved {
			cmd := m.Reload()
			return m, cmd
		}
		return m, nil
	}
	return m, nil
}

func (m watchlistModel) handleKey(msg tea.KeyMsg) (watchlistModel, tea.Cmd) {
	if m.filtering {
		switch msg.String() {
		case "esc":
			m.filtering = false
			m.filterBox.Blur()
			m.filterBox.Clear()
			m.filter.SetPattern("")
			m.cursor = 0
			return m, nil
		case "enter":
			m.filtering = false
			m.filterBox.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.filterBox, cmd = m.filterBox.Update(msg)
		if m.filterBox.QueryChanged() {
			m.filter.SetPattern(m.filterBox.Query())
			m.cursor = 0
		}
		return m, cmd
	}

	switch msg.String() {
	case "/":
		m.filtering = true
		cmd := m.filterBox.Focus()
		return m, cmd
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.filter.Len()-1 {
			m.cursor++
		}
	case "enter":
		if e, ok := m.selected(); ok {
			return m, openDetail(e.TitleID, NavContext{})
		}
	case "x", "delete":
		if e, ok := m.selected(); ok {
			return m, SetWatchlistedCmd(m.catalog, e.TitleID, false)
		}
	}
	return m, nil
}

func (m watchlistModel) selected() (domain.WatchlistEntry, bool) {
	idxs := m.filter.Indexes()
	if m.cursor >= len(idxs) {
		return domain.WatchlistEntry{}, false
	}
	return m.entries[idxs[m.cursor]], true
}

func (m watchlistModel) View() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("My Watchlist"))
	b.WriteString("\n\n")

	if m.filtering || m.filter.Active() {
		b.WriteString(m.filterBox.View())
		b.WriteString("\n\n")
	}

	switch {
	case m.loading:
		b.WriteString(styles.DimStyle.Render("Loading..."))
	case m.err != nil:
		b.WriteString(styles.ErrorStyle.Render("Could not load watchlist: " + m.err.Error()))
	case len(m.entries) == 0:
		b.WriteString(styles.DimStyle.Render("Nothing saved yet. Press w on any title to save it."))
	case m.filter.Len() == 0:
		b.WriteString(styles.DimStyle.Render("No saved titles match."))
	default:
		for i, idx := range m.filter.Indexes() {
			e := m.entries[idx]
			year := ""
			if e.StartYear > 0 {
				year = fmt.Sprintf("(%d)", e.StartYear)
			}
			line := fmt.Sprintf("%-40s %s %s ★ %.1f",
				styles.Truncate(e.Name, 40), e.GenreName, year, e.VoteAverage)
			if i == m.cursor {
				line = styles.SelectedStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("/: filter  enter: open  x: remove"))
	return b.String()
}
