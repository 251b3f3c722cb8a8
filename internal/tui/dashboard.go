package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avelius/marquee/internal/domain"
	"github.com/avelius/marquee/internal/service"
	"github.com/avelius/marquee/internal/tui/styles"
)

// dashboardModel is the shallow staff landing for executive and production
// accounts. It only surfaces the account itself; the underlying reporting
// lives server-side.
type dashboardModel struct {
	session *service.SessionService

	width  int
	height int
}

func newDashboardModel(session *service.SessionService) dashboardModel {
	return dashboardModel{session: session}
}

func (m *dashboardModel) setSize(width, height int) {
	m.width = width
	m.height = height
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	return m, nil
}

func (m dashboardModel) View() string {
	user := m.session.CurrentUser()
	if user == nil || !user.IsStaff() {
		return styles.DimStyle.Render("Staff access required.")
	}

	var b strings.Builder
	switch user.Role {
	case domain.RoleExecutive:
		b.WriteString(styles.TitleStyle.Render("Executive Dashboard"))
	case domain.RoleProduction:
		b.WriteString(styles.TitleStyle.Render("Production Dashboard"))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.SubtitleStyle.Render("Signed in as " + user.FullName))
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render(user.Email))
	b.WriteString("\n\n")
	b.WriteString(styles.DimStyle.Render("Reporting tools are available in the web console."))
	return b.String()
}
