package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/estate/internal/forms"
	"github.com/naveenspark/estate/internal/logging"
	"github.com/naveenspark/estate/internal/session"
	"github.com/naveenspark/estate/pkg/domain"
)

const (
	loginEmail = iota
	loginPassword
	loginFieldCount
)

// loginFailedMsg reports a failed authentication. The error is only logged.
type loginFailedMsg struct{ err error }

type loginModel struct {
	api   API
	store session.Store
	log   logging.Logger

	form         forms.Login
	focus        int
	showPassword bool
	errs         forms.FieldErrors
	pending      bool
}

func newLoginModel(api API, store session.Store, log logging.Logger) loginModel {
	return loginModel{api: api, store: store, log: log}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginFailedMsg:
		m.pending = false
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+s":
			return m.submit()
		case "enter":
			if m.focus == loginPassword {
				return m.submit()
			}
			m.focus++
		case "tab", "down":
			m.focus = (m.focus + 1) % loginFieldCount
		case "shift+tab", "up":
			m.focus = (m.focus + loginFieldCount - 1) % loginFieldCount
		case "ctrl+t":
			m.showPassword = !m.showPassword
		case "ctrl+r":
			return m, gotoCmd(viewRegister)
		default:
			if m.focus == loginEmail {
				m.form.Email = editText(m.form.Email, msg)
			} else {
				m.form.Password = editText(m.form.Password, msg)
			}
		}
	}
	return m, nil
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	if m.pending {
		return m, nil
	}
	m.errs = m.form.Validate()
	if !m.errs.OK() {
		return m, nil
	}
	m.pending = true
	api, store, log := m.api, m.store, m.log
	creds := domain.Credentials{Email: m.form.Email, Password: m.form.Password}
	return m, func() tea.Msg {
		ctx := context.Background()
		tokens, err := api.Authenticate(ctx, creds)
		if err == nil {
			err = store.Save(ctx, *tokens)
		}
		if err != nil {
			log.Error(ctx, "login", "email", creds.Email, "err", err)
			return loginFailedMsg{err: err}
		}
		log.Info(ctx, "logged in", "email", creds.Email)
		return authDoneMsg{}
	}
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString("\n  " + sectionHeaderStyle.Render("ВХОД") + "\n\n")
	b.WriteString(renderField("Email", m.form.Email, m.focus == loginEmail, m.errs["email"]) + "\n")
	b.WriteString(renderField("Пароль", mask(m.form.Password, m.showPassword), m.focus == loginPassword, m.errs["password"]) + "\n")
	if m.pending {
		b.WriteString("\n  " + dimStyle.Render("Вход...") + "\n")
	}
	b.WriteString("\n  " + metaStyle.Render("Нет аккаунта? ") + helpEntry("ctrl+r", "регистрация") + "\n")
	return b.String()
}
