package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avelius/marquee/internal/domain"
	"github.com/avelius/marquee/internal/service"
	"github.com/avelius/marquee/internal/tui/styles"
)

// detailModel renders one title's full record, its reviews, and the
// watchlist toggle. Responses are keyed by the title id they were requested
// for, so opening another title while a fetch is in flight can never paint
// the wrong record.
type detailModel struct {
	catalog *service.CatalogService
	session *service.SessionService
	logger  *slog.Logger

	titleID string
	navCtx  NavContext

	loading bool
	detail  *domain.TitleDetail
	err     error

	reviews      []domain.Review
	reviewCursor int

	watchlisted    bool
	watchlistKnown bool
	watchlistBusy  bool

	composing  bool
	rating     int
	reviewText textinput.Model

	width  int
	height int
}

func newDetailModel(catalog *service.CatalogService, session *service.SessionService, logger *slog.Logger) detailModel {
	ti := textinput.New()
	ti.Placeholder = "Write a review..."
	ti.CharLimit = 500
	ti.Width = 60
	return detailModel{
		catalog:    catalog,
		session:    session,
		logger:     logger,
		rating:     7,
		reviewText: ti,
	}
}

// Open points the view at a title and starts the loads. The navigation
// context rides along and is handed back, once, when the user goes back.
func (m *detailModel) Open(titleID string, ctx NavContext) tea.Cmd {
	m.titleID = titleID
	m.navCtx = ctx
	m.loading = true
	m.detail = nil
	m.err = nil
	m.reviews = nil
	m.reviewCursor = 0
	m.watchlisted = false
	m.watchlistKnown = false
	m.watchlistBusy = false
	m.composing = false

	cmds := []tea.Cmd{
		LoadDetailCmd(m.catalog, titleID),
		LoadReviewsCmd(m.catalog, titleID),
	}
	if m.session.CurrentUser() != nil {
		cmds = append(cmds, WatchlistStatusCmd(m.catalog, m.logger, titleID))
	}
	return tea.Batch(cmds...)
}

func (m *detailModel) setSize(width, height int) {
	m.width = width
	m.height = height
}

func (m detailModel) Update(msg tea.Msg) (detailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case DetailLoadedMsg:
		if msg.TitleID != m.titleID {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.detail = msg.Detail
		return m, nil

	case ReviewsLoadedMsg:
		if msg.TitleID != m.titleID {
			return m, nil
		}
		if msg.Err != nil {
			m.logger.Warn("reviews load failed", "titleID", msg.TitleID, "error", msg.Err)
			return m, nil
		}
		m.reviews = msg.Reviews
		if m.reviewCursor >= len(m.reviews) {
			m.reviewCursor = 0
		}
		return m, nil

	case WatchlistStatusMsg:
		if msg.TitleID != m.titleID {
			return m, nil
		}
		m.watchlisted = msg.InWatchlist
		m.watchlistKnown = msg.Known
		return m, nil

	case WatchlistUpdatedMsg:
		if msg.TitleID != m.titleID {
			return m, nil
		}
		m.watchlistBusy = false
		if msg.Err != nil {
			return m, statusCmd("Watchlist update failed", true)
		}
		m.watchlisted = msg.Saved
		m.watchlistKnown = true
		if msg.Saved {
			return m, statusCmd("Added to watchlist", false)
		}
		return m, statusCmd("Removed from watchlist", false)

	case ReviewSavedMsg:
		if msg.TitleID != m.titleID {
			return m, nil
		}
		if msg.Err != nil {
			return m, statusCmd("Could not save review", true)
		}
		return m, tea.Batch(
			statusCmd("Review posted", false),
			LoadReviewsCmd(m.catalog, m.titleID),
		)

	case ReviewDeletedMsg:
		if msg.TitleID != m.titleID {
			return m, nil
		}
		if msg.Err != nil {
			return m, statusCmd("Could not delete review", true)
		}
		return m, LoadReviewsCmd(m.catalog, m.titleID)
	}

	if m.composing {
		var cmd tea.Cmd
		m.reviewText, cmd = m.reviewText.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m detailModel) handleKey(msg tea.KeyMsg) (detailModel, tea.Cmd) {
	if m.composing {
		switch msg.String() {
		case "esc":
			m.composing = false
			m.reviewText.Blur()
			return m, nil
		case "enter":
			text := strings.TrimSpace(m.reviewText.Value())
			if text == "" {
				return m, statusCmd("Review text is required", true)
			}
			m.composing = false
			m.reviewText.Blur()
			m.reviewText.SetValue("")
			return m, SaveReviewCmd(m.catalog, m.titleID, float64(m.rating), text)
		case "left":
			if m.rating > 1 {
				m.rating--
			}
			return m, nil
		case "right":
			if m.rating < 10 {
				m.rating++
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.reviewText, cmd = m.reviewText.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc", "b":
		// Hand the origin context back exactly once; a second Back from a
		// revisit starts clean
		ctx := m.navCtx
		m.navCtx = NavContext{}
		return m, goBack(ctx)

	case "w":
		if m.session.CurrentUser() == nil {
			return m, statusCmd("Sign in to use the watchlist", true)
		}
		if m.watchlistBusy {
			return m, nil
		}
		m.watchlistBusy = true
		return m, SetWatchlistedCmd(m.catalog, m.titleID, !m.watchlisted)

	case "r":
		if m.session.CurrentUser() == nil {
			return m, statusCmd("Sign in to post reviews", true)
		}
		m.composing = true
		cmd := m.reviewText.Focus()
		return m, cmd

	case "up", "k":
		if m.reviewCursor > 0 {
			m.reviewCursor--
		}
		return m, nil

	case "down", "j":
		if m.reviewCursor < len(m.reviews)-1 {
			m.reviewCursor++
		}
		return m, nil

	case "d":
		if m.reviewCursor >= len(m.reviews) {
			return m, nil
		}
		review := m.reviews[m.reviewCursor]
		user := m.session.CurrentUser()
		if user == nil || user.UserID != review.UserID {
			return m, statusCmd("You can only delete your own reviews", true)
		}
		return m, DeleteReviewCmd(m.catalog, m.titleID, review.ReviewID)
	}
	return m, nil
}

func (m detailModel) View() string {
	var b strings.Builder

	switch {
	case m.loading:
		b.WriteString(styles.DimStyle.Render("Loading title..."))
		return b.String()
	case m.err != nil:
		if m.err == domain.ErrTitleNotFound {
			b.WriteString(styles.ErrorStyle.Render("Title not found."))
		} else {
			b.WriteString(styles.ErrorStyle.Render("Could not load title: " + m.err.Error()))
		}
		b.WriteString("\n\n")
		b.WriteString(styles.DimStyle.Render("esc: back"))
		return b.String()
	case m.detail == nil:
		return ""
	}

	d := m.detail.Detail
	b.WriteString(styles.TitleStyle.Render(d.Name))
	if d.StartYear != nil {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("  (%s)", yearSpan(d.StartYear, d.EndYear))))
	}
	b.WriteString("\n")
	if d.Tagline != nil && *d.Tagline != "" {
		b.WriteString(styles.SubtitleStyle.Render(*d.Tagline))
		b.WriteString("\n")
	}

	var meta []string
	if d.VoteAverage != nil {
		votes := 0
		if d.VoteCount != nil {
			votes = *d.VoteCount
		}
		meta = append(meta, fmt.Sprintf("★ %.1f (%d votes)", *d.VoteAverage, votes))
	}
	if d.RuntimeMinutes != nil {
		meta = append(meta, fmt.Sprintf("%d min", *d.RuntimeMinutes))
	}
	if d.NumberSeasons != nil {
		meta = append(meta, fmt.Sprintf("%d seasons", *d.NumberSeasons))
	}
	if len(m.detail.Genres) > 0 {
		meta = append(meta, strings.Join(m.detail.Genres, ", "))
	}
	if len(meta) > 0 {
		b.WriteString(styles.DimStyle.Render(strings.Join(meta, "  ·  ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if d.Overview != nil && *d.Overview != "" {
		b.WriteString(wrapText(*d.Overview, m.width-2))
		b.WriteString("\n\n")
	}

	if m.watchlistKnown && m.watchlisted {
		b.WriteString(styles.SuccessStyle.Render("✓ On your watchlist"))
	} else {
		b.WriteString(styles.DimStyle.Render("w: add to watchlist"))
	}
	b.WriteString("\n\n")

	if len(m.detail.CastAndCrew) > 0 {
		b.WriteString(styles.AccentStyle.Render("Cast & Crew"))
		b.WriteString("\n")
		limit := len(m.detail.CastAndCrew)
		if limit > 8 {
			limit = 8
		}
		for _, c := range m.detail.CastAndCrew[:limit] {
			entry := c.Name
			if c.Character != "" {
				entry += styles.DimStyle.Render(" as " + c.Character)
			} else if c.Role != "" {
				entry += styles.DimStyle.Render(" · " + c.Role)
			}
			b.WriteString("  " + entry + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.viewReviews())
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("esc: back  w: watchlist  r: review  d: delete review"))
	return b.String()
}

func (m detailModel) viewReviews() string {
	var b strings.Builder
	b.WriteString(styles.AccentStyle.Render(fmt.Sprintf("Reviews (%d)", len(m.reviews))))
	b.WriteString("\n")

	if m.composing {
		b.WriteString(fmt.Sprintf("  Rating: %s %d/10  (left/right to adjust)\n", styles.AccentStyle.Render("★"), m.rating))
		b.WriteString("  " + m.reviewText.View() + "\n")
		b.WriteString(styles.DimStyle.Render("  enter: post  esc: cancel"))
		b.WriteString("\n")
		return b.String()
	}

	if len(m.reviews) == 0 {
		b.WriteString(styles.DimStyle.Render("  No reviews yet."))
		b.WriteString("\n")
		return b.String()
	}

	for i, r := range m.reviews {
		header := fmt.Sprintf("%s  ★ %.0f/10", r.UserName, r.Rating)
		if i == m.reviewCursor {
			header = styles.SelectedStyle.Render(header)
		}
		b.WriteString("  " + header + "\n")
		b.WriteString("  " + styles.DimStyle.Render(styles.Truncate(r.Text, m.width-4)) + "\n")
	}
	return b.String()
}

func yearSpan(start, end *int) string {
	if start == nil {
		return ""
	}
	if end != nil && *end != *start {
		return fmt.Sprintf("%d–%d", *start, *end)
	}
	return fmt.Sprintf("%d", *start)
}

// wrapText soft-wraps a paragraph at width
func wrapText(text string, width int) string {
	if width < 20 {
		width = 20
	}
	words := strings.Fields(text)
	var b strings.Builder
	line := 0
	for _, w := range words {
		if line > 0 && line+len(w)+1 > width {
			b.WriteString("\n")
			line = 0
		} else if line > 0 {
			b.WriteString(" ")
			line++
		}
		b.WriteString(w)
		line += len(w)
	}
	return b.String()
}

func goBack(ctx NavContext) tea.Cmd {
	return func() tea.Msg {
		return GoBackMsg{Ctx: ctx}
	}
}

func statusCmd(message string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Message: message, IsError: isErr}
	}
}
