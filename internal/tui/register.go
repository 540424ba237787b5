package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/estate/internal/forms"
	"github.com/naveenspark/estate/internal/logging"
	"github.com/naveenspark/estate/internal/session"
	"github.com/naveenspark/estate/pkg/domain"
)

const (
	regFirstName = iota
	regSecondName
	regEmail
	regPassword
	regFieldCount
)

const msgRegisterFailed = "Ошибка регистрации. Попробуйте снова."

type registerFailedMsg struct{ err error }

type registerModel struct {
	api   API
	store session.Store
	log   logging.Logger

	form         forms.Register
	focus        int
	showPassword bool
	errs         forms.FieldErrors
	pending      bool
	alert        string
}

func newRegisterModel(api API, store session.Store, log logging.Logger) registerModel {
	return registerModel{api: api, store: store, log: log}
}

func (m registerModel) Update(msg tea.Msg) (registerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case registerFailedMsg:
		m.pending = false
		m.alert = msgRegisterFailed
		return m, nil

	case tea.KeyMsg:
		if m.alert != "" {
			if s := msg.String(); s == "enter" || s == "esc" {
				m.alert = ""
			}
			return m, nil
		}
		switch msg.String() {
		case "ctrl+s":
			return m.submit()
		case "enter":
			if m.focus == regPassword {
				return m.submit()
			}
			m.focus++
		case "tab", "down":
			m.focus = (m.focus + 1) % regFieldCount
		case "shift+tab", "up":
			m.focus = (m.focus + regFieldCount - 1) % regFieldCount
		case "ctrl+t":
			m.showPassword = !m.showPassword
		case "ctrl+l":
			return m, gotoCmd(viewLogin)
		default:
			f := m.fieldPtr(m.focus)
			*f = editText(*f, msg)
		}
	}
	return m, nil
}

func (m *registerModel) fieldPtr(i int) *string {
	switch i {
	case regFirstName:
		return &m.form.FirstName
	case regSecondName:
		return &m.form.SecondName
	case regEmail:
		return &m.form.Email
	}
	return &m.form.Password
}

func (m registerModel) submit() (registerModel, tea.Cmd) {
	if m.pending {
		return m, nil
	}
	m.errs = m.form.Validate()
	if !m.errs.OK() {
		return m, nil
	}
	m.pending = true
	api, store, log := m.api, m.store, m.log
	reg := domain.Registration{
		FirstName:  m.form.FirstName,
		SecondName: m.form.SecondName,
		Email:      m.form.Email,
		Password:   m.form.Password,
	}
	return m, func() tea.Msg {
		ctx := context.Background()
		tokens, err := api.Register(ctx, reg)
		if err == nil {
			err = store.Save(ctx, *tokens)
		}
		if err != nil {
			log.Error(ctx, "register", "email", reg.Email, "err", err)
			return registerFailedMsg{err: err}
		}
		log.Info(ctx, "registered", "email", reg.Email)
		return authDoneMsg{}
	}
}

// isModal reports whether a blocking alert is shown.
func (m registerModel) isModal() bool { return m.alert != "" }

func (m registerModel) View() string {
	if m.alert != "" {
		return "\n" + lipgloss.NewStyle().PaddingLeft(2).Render(dangerBoxStyle.Render(m.alert+"\n\n"+helpEntry("enter", "ок"))) + "\n"
	}
	var b strings.Builder
	b.WriteString("\n  " + sectionHeaderStyle.Render("РЕГИСТРАЦИЯ") + "\n\n")
	b.WriteString(renderField("Имя", m.form.FirstName, m.focus == regFirstName, m.errs["firstName"]) + "\n")
	b.WriteString(renderField("Фамилия", m.form.SecondName, m.focus == regSecondName, m.errs["secondName"]) + "\n")
	b.WriteString(renderField("Email", m.form.Email, m.focus == regEmail, m.errs["email"]) + "\n")
	b.WriteString(renderField("Пароль", mask(m.form.Password, m.showPassword), m.focus == regPassword, m.errs["password"]) + "\n")
	if m.pending {
		b.WriteString("\n  " + dimStyle.Render("Регистрация...") + "\n")
	}
	b.WriteString("\n  " + metaStyle.Render("Уже есть аккаунт? ") + helpEntry("ctrl+l", "вход") + "\n")
	return b.String()
}
