package tui

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avelius/marquee/internal/domain"
	"github.com/avelius/marquee/internal/search"
	"github.com/avelius/marquee/internal/service"
	"github.com/avelius/marquee/internal/tui/styles"
)

// filterPhase is the lifecycle of the filter view's result area
type filterPhase int

const (
	filterIdle filterPhase = iota
	filterLoading
	filterResults
	filterEmpty
	filterError
)

// Facet panels in focus order
const (
	panelGenres = iota
	panelTypes
	panelStatuses
	panelYears
	panelSort
	panelResults
	panelCount
)

var panelLabels = [...]string{"Genres", "Types", "Statuses", "Years", "Sort"}

// filterModel is the faceted discovery view. Facet toggles only mutate local
// selection state; nothing is fetched until the user runs the search, and the
// pending page always snaps back to 1 when the selection changes.
type filterModel struct {
	catalog *service.CatalogService
	logger  *slog.Logger

	options    *domain.FilterOptions
	optionsErr error

	selection search.Selection
	page      int

	phase  filterPhase
	seq    int
	titles []domain.FilteredTitle
	count  int
	err    error

	panel        int
	cursors      [panelCount]int
	resultCursor int

	width  int
	height int
}

func newFilterModel(catalog *service.CatalogService, logger *slog.Logger) filterModel {
	return filterModel{
		catalog:   catalog,
		logger:    logger,
		selection: search.NewSelection(),
		page:      1,
	}
}

func (m filterModel) Init() tea.Cmd {
	if m.options != nil {
		return nil
	}
	return LoadFilterOptionsCmd(m.catalog)
}

func (m *filterModel) setSize(width, height int) {
	m.width = width
	m.height = height
}

func (m filterModel) Update(msg tea.Msg) (filterModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case FilterOptionsMsg:
		if msg.Err != nil {
			m.optionsErr = msg.Err
			m.logger.Warn("filter options failed", "error", msg.Err)
			return m, nil
		}
		m.options = msg.Options
		return m, nil

	case FilterResultsMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		if msg.Err != nil {
			m.phase = filterError
			m.err = msg.Err
			m.titles = nil
			m.count = 0
			return m, nil
		}
		m.err = nil
		m.titles = msg.Titles
		m.count = msg.Count
		m.page = msg.Page
		m.resultCursor = 0
		if msg.Count == 0 {
			m.phase = filterEmpty
		} else {
			m.phase = filterResults
		}
		return m, nil
	}
	return m, nil
}

func (m filterModel) handleKey(msg tea.KeyMsg) (filterModel, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.panel = (m.panel + 1) % panelCount
		return m, nil
	case "shift+tab":
		m.panel = (m.panel + panelCount - 1) % panelCount
		return m, nil
	case "up", "k":
		if m.panel == panelResults {
			if m.resultCursor > 0 {
				m.resultCursor--
			}
		} else if m.cursors[m.panel] > 0 {
			m.cursors[m.panel]--
		}
		return m, nil
	case "down", "j":
		if m.panel == panelResults {
			if m.resultCursor < len(m.titles)-1 {
				m.resultCursor++
			}
		} else if m.cursors[m.panel] < m.panelLen(m.panel)-1 {
			m.cursors[m.panel]++
		}
		return m, nil
	case " ":
		if m.panel != panelResults {
			m.toggleAtCursor()
		}
		return m, nil
	case "enter":
		if m.panel == panelResults {
			if m.phase == filterResults && m.resultCursor < len(m.titles) {
				picked := m.titles[m.resultCursor]
				return m, openDetail(picked.TitleID, NavContext{})
			}
			return m, nil
		}
		m.toggleAtCursor()
		return m, nil
	case "s", "ctrl+s":
		return m.runSearch(m.page)
	case "right", "n", "]":
		return m.gotoPage(m.page + 1)
	case "left", "p", "[":
		return m.gotoPage(m.page - 1)
	case "c":
		m.selection = search.NewSelection()
		m.page = 1
		return m, nil
	}
	return m, nil
}

// toggleAtCursor flips the facet value under the cursor. Any selection edit
// resets the pending page to 1 so the next search starts from the front.
func (m *filterModel) toggleAtCursor() {
	if m.options == nil {
		return
	}
	i := m.cursors[m.panel]
	switch m.panel {
	case panelGenres:
		if i < len(m.options.Genres) {
			m.selection.ToggleGenre(m.options.Genres[i].GenreTypeID)
		}
	case panelTypes:
		if i < len(m.options.Types) {
			m.selection.ToggleType(m.options.Types[i].TypeID)
		}
	case panelStatuses:
		if i < len(m.options.Statuses) {
			m.selection.ToggleStatus(m.options.Statuses[i].StatusID)
		}
	case panelYears:
		if i < len(m.options.Years) {
			m.selection.ToggleYear(strconv.Itoa(m.options.Years[i]))
		}
	case panelSort:
		opts := domain.SortOptions()
		if i < len(opts) {
			m.selection.SetSort(opts[i].ID)
		}
	default:
		return
	}
	m.page = 1
}

// runSearch fetches one page with the current selection
func (m filterModel) runSearch(page int) (filterModel, tea.Cmd) {
	if page < 1 {
		page = 1
	}
	m.phase = filterLoading
	m.seq++
	m.page = page
	req := m.selection.BuildRequest(page)
	return m, FilterCmd(m.catalog, req, m.seq)
}

// gotoPage fetches another page of the current search. It is a no-op before
// the first search or outside the valid page range.
func (m filterModel) gotoPage(page int) (filterModel, tea.Cmd) {
	if m.phase != filterResults {
		return m, nil
	}
	total := search.TotalPages(m.count, search.ItemsPerPage)
	if page < 1 || page > total || page == m.page {
		return m, nil
	}
	return m.runSearch(page)
}

func (m filterModel) panelLen(panel int) int {
	if m.options == nil {
		return 0
	}
	switch panel {
	case panelGenres:
		return len(m.options.Genres)
	case panelTypes:
		return len(m.options.Types)
	case panelStatuses:
		return len(m.options.Statuses)
	case panelYears:
		return len(m.options.Years)
	case panelSort:
		return len(domain.SortOptions())
	}
	return 0
}

func (m filterModel) View() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Filter Search"))
	b.WriteString("  ")
	b.WriteString(styles.DimStyle.Render("space: toggle  s: search  [/]: page  c: clear"))
	b.WriteString("\n\n")

	if m.optionsErr != nil {
		b.WriteString(styles.ErrorStyle.Render("Could not load filter options."))
		b.WriteString("\n")
		return b.String()
	}
	if m.options == nil {
		b.WriteString(styles.DimStyle.Render("Loading filters..."))
		b.WriteString("\n")
		return b.String()
	}

	panels := []string{
		m.viewFacet(panelGenres),
		m.viewFacet(panelTypes),
		m.viewFacet(panelStatuses),
		m.viewFacet(panelYears),
		m.viewFacet(panelSort),
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panels...))
	b.WriteString("\n")
	b.WriteString(m.viewResults())
	return b.String()
}

func (m filterModel) viewFacet(panel int) string {
	var rows []string
	rows = append(rows, styles.AccentStyle.Render(panelLabels[panel]))

	n := m.panelLen(panel)
	for i := 0; i < n; i++ {
		var label string
		var checked bool
		switch panel {
		case panelGenres:
			g := m.options.Genres[i]
			label, checked = g.GenreName, m.selection.HasGenre(g.GenreTypeID)
		case panelTypes:
			t := m.options.Types[i]
			label, checked = t.TypeName, m.selection.HasType(t.TypeID)
		case panelStatuses:
			st := m.options.Statuses[i]
			label, checked = st.StatusName, m.selection.HasStatus(st.StatusID)
		case panelYears:
			y := m.options.Years[i]
			label, checked = strconv.Itoa(y), m.selection.HasYear(strconv.Itoa(y))
		case panelSort:
			opt := domain.SortOptions()[i]
			label, checked = opt.Label, m.selection.SortBy == opt.ID
		}

		box := styles.UncheckedBox
		if checked {
			box = styles.CheckedBox
		}
		line := fmt.Sprintf("%s %s", box, styles.Truncate(label, 16))
		if m.panel == panel && m.cursors[panel] == i {
			line = styles.SelectedStyle.Render(line)
		}
		rows = append(rows, line)
	}

	border := styles.PanelBorder
	if m.panel == panel {
		border = styles.ActivePanelBorder
	}
	return border.Render(strings.Join(rows, "\n"))
}

func (m filterModel) viewResults() string {
	var b strings.Builder
	switch m.phase {
	case filterIdle:
		b.WriteString(styles.DimStyle.Render("Pick filters and press s to search."))
	case filterLoading:
		b.WriteString(styles.DimStyle.Render("Searching..."))
	case filterError:
		b.WriteString(styles.ErrorStyle.Render("Search failed: " + m.err.Error()))
	case filterEmpty:
		b.WriteString(styles.DimStyle.Render("No titles matched these filters."))
	case filterResults:
		b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("%d titles", m.count)))
		b.WriteString("\n\n")
		for i, t := range m.titles {
			line := formatFilteredTitle(t, m.width-4)
			if m.panel == panelResults && i == m.resultCursor {
				line = styles.SelectedStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.viewPagination())
	}
	return b.String()
}

func formatFilteredTitle(t domain.FilteredTitle, width int) string {
	year := ""
	if t.StartYear != nil {
		year = fmt.Sprintf("(%d)", *t.StartYear)
	}
	rating := ""
	if t.VoteAverage != nil {
		rating = fmt.Sprintf("★ %.1f", *t.VoteAverage)
	}
	line := fmt.Sprintf("%-44s %s %s", styles.Truncate(t.Name, 44), year, rating)
	return styles.Truncate(line, width)
}

func (m filterModel) viewPagination() string {
	total := search.TotalPages(m.count, search.ItemsPerPage)
	if total <= 1 {
		return ""
	}
	var parts []string
	for _, link := range search.PageWindow(m.page, total) {
		switch {
		case link.Ellipsis:
			parts = append(parts, styles.DimStyle.Render("…"))
		case link.Current:
			parts = append(parts, styles.SelectedStyle.Render(fmt.Sprintf(" %d ", link.Page)))
		default:
			parts = append(parts, fmt.Sprintf(" %d ", link.Page))
		}
	}
	return strings.Join(parts, "")
}
