package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/estate/internal/logging"
	"github.com/naveenspark/estate/pkg/domain"
)

// Filter fields in tab order.
const (
	filterKeyword = iota
	filterStatus
	filterCity
	filterMin
	filterMax
	filterFieldCount
)

// listingsLoadedMsg carries one search result and the generation it was
// requested under.
type listingsLoadedMsg struct {
	gen  int
	page *domain.ListingPage
	err  error
}

type browseModel struct {
	api      API
	log      logging.Logger
	pageSize int

	filters domain.Filter // edited keystroke by keystroke
	applied domain.Filter // sent to the server
	page    int           // 1-based
	total   int

	listings []domain.Listing
	cursor   int
	loading  bool
	gen      int

	editing bool
	field   int

	width  int
	height int
}

func newBrowseModel(api API, log logging.Logger, pageSize int) browseModel {
	if pageSize <= 0 {
		pageSize = 9
	}
	return browseModel{
		api:      api,
		log:      log,
		pageSize: pageSize,
		page:     1,
		total:    1,
		gen:      1,
		loading:  true,
	}
}

func (m browseModel) Init() tea.Cmd {
	return m.fetchCmd()
}

// reload starts a new generation and fetches the applied filters.
func (m browseModel) reload() (browseModel, tea.Cmd) {
	m.gen++
	m.loading = true
	return m, m.fetchCmd()
}

func (m browseModel) fetchCmd() tea.Cmd {
	api, log := m.api, m.log
	gen := m.gen
	q := m.applied.Query(m.page, m.pageSize)
	return func() tea.Msg {
		ctx := context.Background()
		page, err := api.SearchListings(ctx, q)
		if err != nil {
			log.Error(ctx, "search listings", "page", q.Page, "err", err)
		}
		return listingsLoadedMsg{gen: gen, page: page, err: err}
	}
}

// apply commits the edited filters and resets to the first page. It only
// fetches when the applied filters or the page changed.
func (m browseModel) apply() (browseModel, tea.Cmd) {
	changed := m.filters != m.applied || m.page != 1
	m.applied = m.filters
	m.page = 1
	m.editing = false
	if !changed {
		return m, nil
	}
	return m.reload()
}

func (m browseModel) gotoPage(p int) (browseModel, tea.Cmd) {
	if p < 1 || p > m.total || p == m.page {
		return m, nil
	}
	m.page = p
	m.cursor = 0
	return m.reload()
}

func (m browseModel) Update(msg tea.Msg) (browseModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case listingsLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		m.cursor = 0
		if msg.err != nil || msg.page == nil {
			m.listings = nil
			m.total = 1
			return m, nil
		}
		m.listings = msg.page.Listings
		m.total = msg.page.TotalPages
		if m.total < 1 {
			m.total = 1
		}
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateFilters(msg)
		}
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.listings)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "enter":
			if m.cursor < len(m.listings) {
				id := m.listings[m.cursor].ID
				return m, func() tea.Msg { return openDetailMsg{id: id} }
			}
		case "/", "f":
			m.editing = true
			m.field = filterKeyword
		case "]", "right":
			return m.gotoPage(m.page + 1)
		case "[", "left":
			return m.gotoPage(m.page - 1)
		case "r":
			return m.reload()
		}
	}
	return m, nil
}

func (m browseModel) updateFilters(msg tea.KeyMsg) (browseModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.apply()
	case "esc":
		m.editing = false
		return m, nil
	case "tab", "down":
		m.field = (m.field + 1) % filterFieldCount
		return m, nil
	case "shift+tab", "up":
		m.field = (m.field + filterFieldCount - 1) % filterFieldCount
		return m, nil
	}

	if m.field == filterStatus {
		switch msg.String() {
		case "l", "right", " ":
			m.filters.Status = cycle(domain.StatusLabels, m.filters.Status, 1)
		case "h", "left":
			m.filters.Status = cycle(domain.StatusLabels, m.filters.Status, -1)
		}
		return m, nil
	}

	switch m.field {
	case filterKeyword:
		m.filters.Keyword = editText(m.filters.Keyword, msg)
	case filterCity:
		m.filters.City = editText(m.filters.City, msg)
	case filterMin:
		m.filters.MinPrice = numericOnly(editText(m.filters.MinPrice, msg))
	case filterMax:
		m.filters.MaxPrice = numericOnly(editText(m.filters.MaxPrice, msg))
	}
	return m, nil
}

func statusFilterLabel(s string) string {
	if s == "" {
		return "Все"
	}
	return s
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString("\n  " + sectionHeaderStyle.Render("ОБЪЯВЛЕНИЯ") + "\n\n")
	b.WriteString(m.filtersView())
	b.WriteString("\n")

	switch {
	case m.loading && len(m.listings) == 0:
		b.WriteString("  " + dimStyle.Render("Загрузка...") + "\n")
	case len(m.listings) == 0:
		b.WriteString("  " + dimStyle.Render("Недвижимость не найдена") + "\n")
	default:
		for i, l := range m.listings {
			b.WriteString(m.card(l, i == m.cursor))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n  " + metaStyle.Render(fmt.Sprintf("Страница %d из %d", m.page, m.total)) + "\n")
	return b.String()
}

func (m browseModel) filtersView() string {
	if !m.editing {
		parts := []string{}
		if m.applied.Keyword != "" {
			parts = append(parts, "«"+m.applied.Keyword+"»")
		}
		parts = append(parts, "статус: "+statusFilterLabel(m.applied.Status))
		if m.applied.City != "" {
			parts = append(parts, "город: "+m.applied.City)
		}
		if m.applied.MinPrice != "" || m.applied.MaxPrice != "" {
			parts = append(parts, fmt.Sprintf("цена: %s–%s", m.applied.MinPrice, m.applied.MaxPrice))
		}
		return "  " + metaStyle.Render(strings.Join(parts, " · ")) + "\n"
	}
	rows := []string{
		renderField("Поиск", m.filters.Keyword, m.field == filterKeyword, ""),
		renderSelect("Статус", statusFilterLabel(m.filters.Status), m.field == filterStatus, ""),
		renderField("Город", m.filters.City, m.field == filterCity, ""),
		renderField("Цена от", m.filters.MinPrice, m.field == filterMin, ""),
		renderField("Цена до", m.filters.MaxPrice, m.field == filterMax, ""),
	}
	return strings.Join(rows, "\n") + "\n"
}

func (m browseModel) card(l domain.Listing, selected bool) string {
	titleStyle := normalStyle
	cursor := "  "
	if selected {
		titleStyle = selectedStyle
		cursor = accentStyle.Render("▸ ")
	}
	width := m.width - 8
	if width < 20 {
		width = 60
	}
	head := titleStyle.Render(truncStr(l.Title, width)) + "  " + priceStyle.Render(formatPrice(l.Price))
	meta := dimStyle.Render(l.City) + "  " + statusStyle(l.Status).Render(l.Status.Label())
	desc := metaStyle.Render(truncStr(snippet(l.Description), width))
	return cursor + strings.ReplaceAll(cardStyle.Render(head+"\n"+meta+"\n"+desc), "\n", "\n  ")
}
