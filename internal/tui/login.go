package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avelius/marquee/internal/service"
	"github.com/avelius/marquee/internal/tui/styles"
)

// loginMode switches the auth form between sign-in and registration
type loginMode int

const (
	modeSignIn loginMode = iota
	modeRegister
)

// Field order within the form. Full name only exists in register mode.
const (
	fieldName = iota
	fieldEmail
	fieldPassword
	fieldTotal
)

// loginModel is the authentication form. Validation runs locally before any
// request goes out; server errors land in the same error line.
type loginModel struct {
	session *service.SessionService

	mode   loginMode
	inputs [fieldTotal]textinput.Model
	focus  int

	busy      bool
	fieldErrs [fieldTotal]string
	serverErr string

	width  int
	height int
}

func newLoginModel(session *service.SessionService) loginModel {
	name := textinput.New()
	name.Placeholder = "Full name"
	name.CharLimit = 80
	name.Width = 36

	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 120
	email.Width = 36

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 120
	password.Width = 36
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	m := loginModel{session: session, focus: fieldEmail}
	m.inputs[fieldName] = name
	m.inputs[fieldEmail] = email
	m.inputs[fieldPassword] = password
	m.inputs[m.focus].Focus()
	return m
}

func (m loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *loginModel) setSize(width, height int) {
	m.width = width
	m.height = height
}

func (m loginModel) firstField() int {
	if m.mode == modeRegister {
		return fieldName
	}
	return fieldEmail
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			return m.moveFocus(1), nil
		case "shift+tab", "up":
			return m.moveFocus(-1), nil
		case "ctrl+t":
			if m.mode == modeSignIn {
				m.mode = modeRegister
			} else {
				m.mode = modeSignIn
			}
			m.serverErr = ""
			m.fieldErrs = [fieldTotal]string{}
			return m.setFocus(m.firstField()), nil
		case "enter":
			return m.submit()
		}

	case SessionMsg:
		m.busy = false
		if msg.Err != nil {
			m.serverErr = msg.Err.Error()
			return m, nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m loginModel) moveFocus(delta int) loginModel {
	first := m.firstField()
	next := m.focus + delta
	if next < first {
		next = fieldPassword
	}
	if next > fieldPassword {
		next = first
	}
	return m.setFocus(next)
}

func (m loginModel) setFocus(field int) loginModel {
	m.inputs[m.focus].Blur()
	m.focus = field
	m.inputs[m.focus].Focus()
	return m
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	m.serverErr = ""
	m.fieldErrs = [fieldTotal]string{}

	email := strings.TrimSpace(m.inputs[fieldEmail].Value())
	password := m.inputs[fieldPassword].Value()

	ok := true
	if m.mode == modeRegister {
		if msg := service.ValidateFullName(m.inputs[fieldName].Value()); msg != "" {
			m.fieldErrs[fieldName] = msg
			ok = false
		}
	}
	if msg := service.ValidateEmail(email); msg != "" {
		m.fieldErrs[fieldEmail] = msg
		ok = false
	}
	if msg := service.ValidatePassword(password); msg != "" {
		m.fieldErrs[fieldPassword] = msg
		ok = false
	}
	if !ok {
		return m, nil
	}

	m.busy = true
	if m.mode == modeRegister {
		name := strings.TrimSpace(m.inputs[fieldName].Value())
		return m, RegisterCmd(m.session, name, email, password)
	}
	return m, LoginCmd(m.session, email, password)
}

func (m loginModel) View() string {
	var b strings.Builder

	heading := "Sign In"
	toggleHint := "ctrl+t: create an account"
	if m.mode == modeRegister {
		heading = "Create Account"
		toggleHint = "ctrl+t: sign in instead"
	}
	b.WriteString(styles.TitleStyle.Render("Marquee"))
	b.WriteString("\n\n")
	b.WriteString(styles.AccentStyle.Render(heading))
	b.WriteString("\n\n")

	fields := []int{fieldEmail, fieldPassword}
	if m.mode == modeRegister {
		fields = []int{fieldName, fieldEmail, fieldPassword}
	}
	for _, f := range fields {
		b.WriteString(m.inputs[f].View())
		b.WriteString("\n")
		if m.fieldErrs[f] != "" {
			b.WriteString(styles.ErrorStyle.Render(m.fieldErrs[f]))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.busy {
		b.WriteString(styles.DimStyle.Render("Signing in..."))
	} else if m.serverErr != "" {
		b.WriteString(styles.ErrorStyle.Render(m.serverErr))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.DimStyle.Render("enter: submit  " + toggleHint))
	return b.String()
}
