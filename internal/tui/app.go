package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/estate/internal/logging"
	"github.com/naveenspark/estate/internal/session"
)

type view int

const (
	viewBrowse view = iota
	viewDetail
	viewCreate
	viewProfile
	viewLogin
	viewRegister
)

// Deps are the collaborators of the App.
type Deps struct {
	API      API
	Session  session.Store
	Log      logging.Logger
	PageSize int
	Version  string
}

// App is the root Bubbletea model.
type App struct {
	api      API
	store    session.Store
	identity *session.Identity
	log      logging.Logger
	version  string

	view      view
	browse    browseModel
	detail    detailModel
	detailSeq int
	create    createModel
	profile   profileModel
	login     loginModel
	register  registerModel
	helpOpen  bool

	width  int
	height int
	frame  int // logo shimmer animation frame
}

// NewApp creates a new TUI application.
func NewApp(d Deps) App {
	if d.Log == nil {
		d.Log = logging.NewNop()
	}
	if d.Session == nil {
		d.Session = session.NewMemory()
	}
	identity := session.NewIdentity(d.Session)
	return App{
		api:      d.API,
		store:    d.Session,
		identity: identity,
		log:      d.Log,
		version:  d.Version,
		browse:   newBrowseModel(d.API, d.Log, d.PageSize),
		create:   newCreateModel(d.API, d.Session, identity, d.Log),
		profile:  newProfileModel(d.API, d.Session, identity, d.Log),
		login:    newLoginModel(d.API, d.Session, d.Log),
		register: newRegisterModel(d.API, d.Session, d.Log),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.browse.Init(), shimmerTickCmd())
}

// navigate switches views. Create and profile need a session; without one
// the user is sent to registration.
func (a App) navigate(to view) (App, tea.Cmd) {
	if (to == viewCreate || to == viewProfile) && !a.store.IsAuthenticated(context.Background()) {
		a.log.Debug(context.Background(), "protected view without session", "view", int(to))
		to = viewRegister
	}
	if a.view == to {
		return a, nil
	}
	a.view = to
	switch to {
	case viewProfile:
		var cmd tea.Cmd
		a.profile, cmd = a.profile.load()
		return a, cmd
	case viewLogin:
		a.login = newLoginModel(a.api, a.store, a.log)
	case viewRegister:
		a.register = newRegisterModel(a.api, a.store, a.log)
	}
	return a, nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + help(1) = 4 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 4}
		a.browse, _ = a.browse.Update(bodyMsg)
		a.detail, _ = a.detail.Update(bodyMsg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case gotoMsg:
		return a.navigate(msg.to)

	case openDetailMsg:
		a.detailSeq++
		a.detail = newDetailModel(a.api, a.log, msg.id, a.detailSeq)
		a.detail.width, a.detail.height = a.width, a.height-4
		a.view = viewDetail
		return a, a.detail.Init()

	case authDoneMsg:
		a.view = viewBrowse
		var cmd tea.Cmd
		a.browse, cmd = a.browse.reload()
		return a, cmd

	case loggedOutMsg:
		a.create = newCreateModel(a.api, a.store, a.identity, a.log)
		a.profile = newProfileModel(a.api, a.store, a.identity, a.log)
		return a.navigate(viewLogin)

	case listingsLoadedMsg:
		var cmd tea.Cmd
		a.browse, cmd = a.browse.Update(msg)
		return a, cmd

	case listingLoadedMsg, carouselTickMsg:
		var cmd tea.Cmd
		a.detail, cmd = a.detail.Update(msg)
		return a, cmd

	case listingCreatedMsg:
		var cmd tea.Cmd
		a.create, cmd = a.create.Update(msg)
		return a, cmd

	case profileLoadedMsg, profileSavedMsg, passwordChangedMsg, accountDeletedMsg:
		var cmd tea.Cmd
		a.profile, cmd = a.profile.Update(msg)
		return a, cmd

	case loginFailedMsg:
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd

	case registerFailedMsg:
		var cmd tea.Cmd
		a.register, cmd = a.register.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Help overlay captures all keys when open
		if a.helpOpen {
			switch msg.String() {
			case "?", "esc", "enter":
				a.helpOpen = false
			case "q":
				return a, tea.Quit
			}
			return a, nil
		}

		if msg.String() == "esc" && !a.isModal() {
			switch a.view {
			case viewDetail, viewCreate, viewProfile, viewLogin, viewRegister:
				return a.navigate(viewBrowse)
			}
		}

		// Global keys (only when not editing)
		if !a.isEditing() {
			switch msg.String() {
			case "?":
				a.helpOpen = true
				return a, nil
			case "q":
				return a, tea.Quit
			case "1":
				return a.navigate(viewBrowse)
			case "2", "n":
				return a.navigate(viewCreate)
			case "3", "p":
				return a.navigate(viewProfile)
			case "4":
				return a.navigate(viewLogin)
			}
		}
		return a.updateView(msg)
	}
	return a, nil
}

func (a App) updateView(msg tea.Msg) (App, tea.Cmd) {
	var cmd tea.Cmd
	switch a.view {
	case viewBrowse:
		a.browse, cmd = a.browse.Update(msg)
	case viewDetail:
		a.detail, cmd = a.detail.Update(msg)
	case viewCreate:
		a.create, cmd = a.create.Update(msg)
	case viewProfile:
		a.profile, cmd = a.profile.Update(msg)
	case viewLogin:
		a.login, cmd = a.login.Update(msg)
	case viewRegister:
		a.register, cmd = a.register.Update(msg)
	}
	return a, cmd
}

// isEditing reports whether keys go to a text field.
func (a App) isEditing() bool {
	switch a.view {
	case viewBrowse:
		return a.browse.editing
	case viewDetail:
		return false
	}
	return true
}

// isModal reports whether a blocking dialog owns esc.
func (a App) isModal() bool {
	switch a.view {
	case viewProfile:
		return a.profile.isModal()
	case viewRegister:
		return a.register.isModal()
	}
	return false
}

func center(s string, width int) string {
	pad := (width - lipgloss.Width(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}

func (a App) View() string {
	header := center(renderShimmerLogo(a.frame), a.width)
	state := metaStyle.Render("гость")
	if a.store.IsAuthenticated(context.Background()) {
		state = successStyle.Render("● ") + dimStyle.Render("вход выполнен")
	}
	header += "\n" + center(state, a.width)

	type tabEntry struct {
		key  string
		name string
		v    view
	}
	tabs := []tabEntry{
		{"1", "Объявления", viewBrowse},
		{"2", "Добавить", viewCreate},
		{"3", "Кабинет", viewProfile},
		{"4", "Вход", viewLogin},
	}
	colWidth := a.width / len(tabs)
	var tabBar strings.Builder
	for _, t := range tabs {
		active := t.v == a.view ||
			(t.v == viewBrowse && a.view == viewDetail) ||
			(t.v == viewLogin && a.view == viewRegister)
		var label string
		if active {
			label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
		}
		labelWidth := lipgloss.Width(label)
		leftPad := (colWidth - labelWidth) / 2
		if leftPad < 0 {
			leftPad = 0
		}
		rightPad := colWidth - labelWidth - leftPad
		if rightPad < 0 {
			rightPad = 0
		}
		tabBar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
	}

	var body, help string
	switch a.view {
	case viewBrowse:
		body = a.browse.View()
		if a.browse.editing {
			help = helpBar("tab", "поле", "h/l", "статус", "enter", "применить", "esc", "закрыть")
		} else {
			help = helpBar("1-4", "разделы", "j/k", "выбор", "enter", "открыть", "/", "фильтры", "[ ]", "страницы", "r", "обновить", "?", "справка", "q", "выход")
		}
	case viewDetail:
		body = a.detail.View()
		help = helpBar("h/l", "фото", "o", "открыть", "c", "ссылка", "esc", "назад")
	case viewCreate:
		body = a.create.View()
		help = helpBar("tab", "поле", "h/l", "выбор", "enter", "добавить фото", "ctrl+x", "сбросить фото", "ctrl+s", "отправить", "esc", "назад")
	case viewProfile:
		body = a.profile.View()
		help = helpBar("tab", "поле", "ctrl+s", "сохранить", "ctrl+p", "сменить пароль", "ctrl+d", "удалить", "ctrl+o", "выйти", "ctrl+t", "пароль")
	case viewLogin:
		body = a.login.View()
		help = helpBar("tab", "поле", "enter", "войти", "ctrl+t", "пароль", "ctrl+r", "регистрация", "esc", "назад")
	case viewRegister:
		body = a.register.View()
		help = helpBar("tab", "поле", "enter", "зарегистрироваться", "ctrl+t", "пароль", "ctrl+l", "вход", "esc", "назад")
	}

	if a.helpOpen {
		body = helpView(a.version)
		help = helpBar("esc", "закрыть")
	}

	chrome := 4
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s", header, tabBar.String(), body, help)
}
