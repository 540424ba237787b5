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
	profFirstName = iota
	profSecondName
	profEmail
	profCurrentPassword
	profNewPassword
	profConfirmPassword
	profFieldCount
)

const (
	msgProfileUpdated  = "Данные успешно обновлены"
	msgProfileFailed   = "Не удалось обновить данные"
	msgPasswordChanged = "Пароль успешно изменен"
	msgPasswordFailed  = "Не удалось изменить пароль. Проверьте данные и попробуйте снова."
	msgAccountDeleted  = "Ваш аккаунт был удален."
	msgDeleteFailed    = "Произошла ошибка при удалении аккаунта."
)

type (
	profileLoadedMsg struct {
		profile *domain.Profile
		err     error
	}
	profileSavedMsg    struct{ err error }
	passwordChangedMsg struct{ err error }
	accountDeletedMsg  struct{ err error }
)

type profileModel struct {
	api      API
	store    session.Store
	identity *session.Identity
	log      logging.Logger

	profile      domain.Profile
	passwords    forms.PasswordChange
	focus        int
	showPassword bool
	errs         forms.FieldErrors
	loading      bool
	pending      bool

	confirming bool
	alert      string
	alertErr   bool
	afterAlert tea.Cmd
}

func newProfileModel(api API, store session.Store, identity *session.Identity, log logging.Logger) profileModel {
	return profileModel{api: api, store: store, identity: identity, log: log}
}

// load fetches the profile of the signed-in user. Without a user id the
// fetch is skipped.
func (m profileModel) load() (profileModel, tea.Cmd) {
	ctx := context.Background()
	userID, err := m.identity.UserID(ctx)
	if err != nil {
		m.log.Debug(ctx, "profile fetch skipped", "err", err)
		return m, nil
	}
	m.loading = true
	api, log := m.api, m.log
	return m, func() tea.Msg {
		p, err := api.GetProfile(ctx, userID)
		if err != nil {
			log.Error(ctx, "get profile", "user_id", userID, "err", err)
		}
		return profileLoadedMsg{profile: p, err: err}
	}
}

func (m *profileModel) field(i int) *string {
	switch i {
	case profFirstName:
		return &m.profile.FirstName
	case profSecondName:
		return &m.profile.SecondName
	case profEmail:
		return &m.profile.Email
	case profCurrentPassword:
		return &m.passwords.Current
	case profNewPassword:
		return &m.passwords.New
	}
	return &m.passwords.Confirmation
}

func (m profileModel) showAlert(text string, isErr bool, after tea.Cmd) profileModel {
	m.alert = text
	m.alertErr = isErr
	m.afterAlert = after
	return m
}

// isModal reports whether an alert or the delete confirmation is shown.
func (m profileModel) isModal() bool { return m.alert != "" || m.confirming }

func (m profileModel) Update(msg tea.Msg) (profileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		m.loading = false
		if msg.err == nil && msg.profile != nil {
			m.profile = *msg.profile
		}
		return m, nil

	case profileSavedMsg:
		m.pending = false
		if msg.err != nil {
			return m.showAlert(msgProfileFailed, true, nil), nil
		}
		return m.showAlert(msgProfileUpdated, false, nil), nil

	case passwordChangedMsg:
		m.pending = false
		if msg.err != nil {
			return m.showAlert(msgPasswordFailed, true, nil), nil
		}
		m.passwords = forms.PasswordChange{}
		return m.showAlert(msgPasswordChanged, false, nil), nil

	case accountDeletedMsg:
		m.pending = false
		if msg.err != nil {
			return m.showAlert(msgDeleteFailed, true, nil), nil
		}
		m.profile = domain.Profile{}
		m.passwords = forms.PasswordChange{}
		return m.showAlert(msgAccountDeleted, false, func() tea.Msg { return loggedOutMsg{} }), nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m profileModel) updateKeys(msg tea.KeyMsg) (profileModel, tea.Cmd) {
	if m.alert != "" {
		switch msg.String() {
		case "enter", "esc":
			after := m.afterAlert
			m.alert = ""
			m.afterAlert = nil
			return m, after
		}
		return m, nil
	}

	if m.confirming {
		switch msg.String() {
		case "y":
			m.confirming = false
			return m.deleteAccount()
		case "n", "esc":
			m.confirming = false
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+s":
		return m.saveProfile()
	case "ctrl+p":
		return m.changePassword()
	case "ctrl+d":
		m.confirming = true
	case "ctrl+o":
		return m.logout()
	case "ctrl+t":
		m.showPassword = !m.showPassword
	case "tab", "down", "enter":
		m.focus = (m.focus + 1) % profFieldCount
	case "shift+tab", "up":
		m.focus = (m.focus + profFieldCount - 1) % profFieldCount
	default:
		f := m.field(m.focus)
		*f = editText(*f, msg)
	}
	return m, nil
}

func (m profileModel) saveProfile() (profileModel, tea.Cmd) {
	if m.pending {
		return m, nil
	}
	ctx := context.Background()
	userID, err := m.identity.UserID(ctx)
	if err != nil {
		return m.showAlert(msgProfileFailed, true, nil), nil
	}
	m.pending = true
	api, log, p := m.api, m.log, m.profile
	return m, func() tea.Msg {
		_, err := api.UpdateProfile(ctx, userID, p)
		if err != nil {
			log.Error(ctx, "update profile", "user_id", userID, "err", err)
		}
		return profileSavedMsg{err: err}
	}
}

func (m profileModel) changePassword() (profileModel, tea.Cmd) {
	if m.pending {
		return m, nil
	}
	m.errs = m.passwords.Validate()
	if !m.errs.OK() {
		return m, nil
	}
	m.pending = true
	api, log := m.api, m.log
	req := domain.PasswordChange{
		CurrentPassword:      m.passwords.Current,
		NewPassword:          m.passwords.New,
		ConfirmationPassword: m.passwords.Confirmation,
	}
	return m, func() tea.Msg {
		ctx := context.Background()
		err := api.ChangePassword(ctx, req)
		if err != nil {
			log.Error(ctx, "change password", "err", err)
		}
		return passwordChangedMsg{err: err}
	}
}

func (m profileModel) deleteAccount() (profileModel, tea.Cmd) {
	m.pending = true
	api, store, log := m.api, m.store, m.log
	return m, func() tea.Msg {
		ctx := context.Background()
		if err := api.DeleteAccount(ctx); err != nil {
			log.Error(ctx, "delete account", "err", err)
			return accountDeletedMsg{err: err}
		}
		if err := store.Clear(ctx); err != nil {
			log.Warn(ctx, "clear session after delete", "err", err)
		}
		log.Info(ctx, "account deleted")
		return accountDeletedMsg{}
	}
}

func (m profileModel) logout() (profileModel, tea.Cmd) {
	ctx := context.Background()
	if err := m.store.Clear(ctx); err != nil {
		m.log.Warn(ctx, "clear session", "err", err)
	}
	m.profile = domain.Profile{}
	m.passwords = forms.PasswordChange{}
	m.errs = nil
	return m, func() tea.Msg { return loggedOutMsg{} }
}

func (m profileModel) View() string {
	if m.alert != "" {
		box := alertBoxStyle
		if m.alertErr {
			box = dangerBoxStyle
		}
		return "\n" + lipgloss.NewStyle().PaddingLeft(2).Render(box.Render(m.alert+"\n\n"+helpEntry("enter", "ок"))) + "\n"
	}
	if m.confirming {
		text := "Вы уверены, что хотите удалить аккаунт?\nЭто действие необратимо.\n\n" +
			helpEntry("y", "удалить") + "  " + helpEntry("n", "отмена")
		return "\n" + lipgloss.NewStyle().PaddingLeft(2).Render(dangerBoxStyle.Render(text)) + "\n"
	}

	var b strings.Builder
	b.WriteString("\n  " + sectionHeaderStyle.Render("ЛИЧНЫЙ КАБИНЕТ") + "\n\n")
	if m.loading {
		b.WriteString("  " + dimStyle.Render("Загрузка...") + "\n\n")
	}
	b.WriteString(renderField("Имя", m.profile.FirstName, m.focus == profFirstName, "") + "\n")
	b.WriteString(renderField("Фамилия", m.profile.SecondName, m.focus == profSecondName, "") + "\n")
	b.WriteString(renderField("Email", m.profile.Email, m.focus == profEmail, "") + "\n")

	b.WriteString("\n  " + sectionHeaderStyle.Render("СМЕНА ПАРОЛЯ") + "\n\n")
	b.WriteString(renderField("Текущий пароль", mask(m.passwords.Current, m.showPassword), m.focus == profCurrentPassword, m.errs["currentPassword"]) + "\n")
	b.WriteString(renderField("Новый пароль", mask(m.passwords.New, m.showPassword), m.focus == profNewPassword, m.errs["newPassword"]) + "\n")
	b.WriteString(renderField("Повторите", mask(m.passwords.Confirmation, m.showPassword), m.focus == profConfirmPassword, m.errs["confirmationPassword"]) + "\n")

	if m.pending {
		b.WriteString("\n  " + dimStyle.Render("Отправка...") + "\n")
	}
	return b.String()
}
