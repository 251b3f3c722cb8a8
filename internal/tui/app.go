package tui

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avelius/marquee/internal/domain"
	"github.com/avelius/marquee/internal/service"
	"github.com/avelius/marquee/internal/tui/styles"
)

const statusDuration = 3 * time.Second

// Model is the root Bubble Tea model. It owns view routing, the navigation
// bridge between search and detail, and the shared status line.
type Model struct {
	session *service.SessionService
	catalog *service.CatalogService
	logger  *slog.Logger

	view ViewID

	login     loginModel
	home      homeModel
	filter    filterModel
	detail    detailModel
	watchlist watchlistModel
	dashboard dashboardModel

	// Where the open detail view was entered from, for a plain (non-search)
	// Back
	detailOrigin ViewID

	statusMsg   string
	statusIsErr bool

	width  int
	height int
}

// NewModel builds the root model
func NewModel(session *service.SessionService, catalog *service.CatalogService, logger *slog.Logger, shelfSize int) Model {
	if logger == nil {
		logger = slog.Default()
	}
	m := Model{
		session:   session,
		catalog:   catalog,
		logger:    logger,
		login:     newLoginModel(session),
		home:      newHomeModel(catalog, logger, shelfSize),
		filter:    newFilterModel(catalog, logger),
		detail:    newDetailModel(catalog, session, logger),
		watchlist: newWatchlistModel(catalog, logger),
		dashboard: newDashboardModel(session),
	}
	if session.CurrentUser() != nil {
		m.view = ViewHome
	} else {
		m.view = ViewLogin
	}
	return m
}

// Init starts the initial view and revalidates any cached session
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.view == ViewHome {
		cmds = append(cmds, m.home.Init(), RevalidateCmd(m.session))
	} else {
		cmds = append(cmds, m.login.Init())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		body := msg.Height - 3
		m.login.setSize(msg.Width, body)
		m.home.setSize(msg.Width, body)
		m.filter.setSize(msg.Width, body)
		m.detail.setSize(msg.Width, body)
		m.watchlist.setSize(msg.Width, body)
		m.dashboard.setSize(msg.Width, body)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case StatusMsg:
		m.statusMsg = msg.Message
		m.statusIsErr = msg.IsError
		return m, ClearStatusCmd(statusDuration)

	case ClearStatusMsg:
		m.statusMsg = ""
		m.statusIsErr = false
		return m, nil

	case OpenDetailMsg:
		m.detailOrigin = m.view
		m.view = ViewDetail
		cmd := m.detail.Open(msg.TitleID, msg.Ctx)
		return m, cmd

	case GoBackMsg:
		// The bridge: a search-origin Back restores the committed search,
		// anything else is a plain pop
		if msg.Ctx.IsSearch() {
			m.view = ViewHome
			cmd := m.home.RestoreSearch(msg.Ctx.Query)
			return m, cmd
		}
		m.view = m.detailOrigin
		if m.view == ViewDetail {
			m.view = ViewHome
		}
		return m, nil

	case GoHomeMsg:
		m.home.ResetSearch()
		m.view = ViewHome
		return m, nil

	case SessionMsg:
		return m.handleSession(msg)

	case LoggedOutMsg:
		m.home.ResetSearch()
		m.login = newLoginModel(m.session)
		m.view = ViewLogin
		return m, tea.Batch(m.login.Init(), statusCmd("Signed out", false))
	}

	if err := msgError(msg); err != nil && errors.Is(err, domain.ErrUnauthorized) && m.view != ViewLogin {
		m.login = newLoginModel(m.session)
		m.view = ViewLogin
		return m, tea.Batch(m.login.Init(), statusCmd("Session expired, sign in again", true))
	}

	return m.route(msg)
}

// route delivers async results to the models that own them. Each model's
// own generation or id guard drops anything stale, so delivery does not
// depend on which view is currently showing.
func (m Model) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg.(type) {
	case TrendingLoadedMsg, TopRatedLoadedMsg, SuggestDebounceMsg, SuggestionsMsg, SearchResultsMsg:
		m.home, cmd = m.home.Update(msg)
		cmds = append(cmds, cmd)
	case FilterOptionsMsg, FilterResultsMsg:
		m.filter, cmd = m.filter.Update(msg)
		cmds = append(cmds, cmd)
	case DetailLoadedMsg, ReviewsLoadedMsg, ReviewSavedMsg, ReviewDeletedMsg, WatchlistStatusMsg:
		m.detail, cmd = m.detail.Update(msg)
		cmds = append(cmds, cmd)
	case WatchlistUpdatedMsg:
		m.detail, cmd = m.detail.Update(msg)
		cmds = append(cmds, cmd)
		m.watchlist, cmd = m.watchlist.Update(msg)
		cmds = append(cmds, cmd)
	case WatchlistLoadedMsg:
		m.watchlist, cmd = m.watchlist.Update(msg)
		cmds = append(cmds, cmd)
	default:
		return m.routeToActive(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) routeToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case ViewLogin:
		m.login, cmd = m.login.Update(msg)
	case ViewHome:
		m.home, cmd = m.home.Update(msg)
	case ViewFilter:
		m.filter, cmd = m.filter.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewWatchlist:
		m.watchlist, cmd = m.watchlist.Update(msg)
	case ViewDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if key == "ctrl+l" && m.view != ViewLogin {
		return m, LogoutCmd(m.session)
	}

	if !m.capturingText() {
		switch key {
		case "q":
			return m, tea.Quit
		case "1", "H":
			return m, goHome()
		case "2", "F":
			m.view = ViewFilter
			return m, m.filter.Init()
		case "3", "W":
			m.view = ViewWatchlist
			cmd := m.watchlist.Reload()
			return m, cmd
		case "4", "D":
			user := m.session.CurrentUser()
			if user != nil && user.IsStaff() {
				m.view = ViewDashboard
			}
			return m, nil
		}
	}
	return m.routeToActive(msg)
}

// goHome is the logo-click analog: plain navigation home, dropping any
// search state on arrival
func goHome() tea.Cmd {
	return func() tea.Msg {
		return GoHomeMsg{}
	}
}

// capturingText reports whether the active view owns raw keystrokes
func (m Model) capturingText() bool {
	switch m.view {
	case ViewLogin:
		return true
	case ViewHome:
		return m.home.searchBox.Focused()
	case ViewDetail:
		return m.detail.composing
	case ViewWatchlist:
		return m.watchlist.filtering
	}
	return false
}

func (m Model) handleSession(msg SessionMsg) (tea.Model, tea.Cmd) {
	if m.view == ViewLogin {
		var cmd tea.Cmd
		m.login, cmd = m.login.Update(msg)
		if msg.Err == nil && msg.User != nil {
			m.view = ViewHome
			m.home.ResetSearch()
			return m, tea.Batch(cmd, m.home.Init())
		}
		return m, cmd
	}

	// Revalidation result. A nil user with no error means the cached session
	// is gone; fall back to the login view.
	if msg.Err == nil && msg.User == nil {
		m.login = newLoginModel(m.session)
		m.view = ViewLogin
		return m, m.login.Init()
	}
	if msg.Err != nil {
		m.logger.Warn("session revalidation failed", "error", msg.Err)
	}
	return m, nil
}

// msgError extracts the error, if any, carried by an async result
func msgError(msg tea.Msg) error {
	switch msg := msg.(type) {
	case SearchResultsMsg:
		return msg.Err
	case FilterResultsMsg:
		return msg.Err
	case FilterOptionsMsg:
		return msg.Err
	case DetailLoadedMsg:
		return msg.Err
	case ReviewsLoadedMsg:
		return msg.Err
	case ReviewSavedMsg:
		return msg.Err
	case ReviewDeletedMsg:
		return msg.Err
	case WatchlistUpdatedMsg:
		return msg.Err
	case WatchlistLoadedMsg:
		return msg.Err
	case SessionMsg:
		return msg.Err
	}
	return nil
}

func (m Model) View() string {
	var body string
	switch m.view {
	case ViewLogin:
		body = m.login.View()
	case ViewHome:
		body = m.home.View()
	case ViewFilter:
		body = m.filter.View()
	case ViewDetail:
		body = m.detail.View()
	case ViewWatchlist:
		body = m.watchlist.View()
	case ViewDashboard:
		body = m.dashboard.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.viewNav(), body, m.viewStatus())
}

func (m Model) viewNav() string {
	if m.view == ViewLogin {
		return ""
	}
	user := m.session.CurrentUser()

	tabs := []struct {
		id    ViewID
		label string
	}{
		{ViewHome, "1 Home"},
		{ViewFilter, "2 Filter"},
		{ViewWatchlist, "3 Watchlist"},
	}
	var parts []string
	for _, t := range tabs {
		if t.id == m.view {
			parts = append(parts, styles.SelectedStyle.Render(" "+t.label+" "))
		} else {
			parts = append(parts, styles.DimStyle.Render(" "+t.label+" "))
		}
	}
	if user != nil && user.IsStaff() {
		label := " 4 Dashboard "
		if m.view == ViewDashboard {
			parts = append(parts, styles.SelectedStyle.Render(label))
		} else {
			parts = append(parts, styles.DimStyle.Render(label))
		}
	}

	left := strings.Join(parts, "")
	right := ""
	if user != nil {
		right = styles.DimStyle.Render(user.FullName + "  ctrl+l: sign out")
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) viewStatus() string {
	if m.statusMsg == "" {
		return ""
	}
	if m.statusIsErr {
		return styles.ErrorStyle.Render(m.statusMsg)
	}
	return styles.SuccessStyle.Render(m.statusMsg)
}
