package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/estate/internal/browser"
	"github.com/naveenspark/estate/internal/logging"
	"github.com/naveenspark/estate/pkg/domain"
)

const carouselInterval = 2 * time.Second

// Seams for tests.
var (
	copyToClipboard = clipboard.WriteAll
	openURL         = browser.Open
)

type listingLoadedMsg struct {
	seq     int
	listing *domain.Listing
	err     error
}

// carouselTickMsg advances the image carousel of detail view seq.
type carouselTickMsg struct{ seq int }

func carouselTickCmd(seq int) tea.Cmd {
	return tea.Tick(carouselInterval, func(time.Time) tea.Msg {
		return carouselTickMsg{seq: seq}
	})
}

type detailModel struct {
	api API
	log logging.Logger
	id  int64
	seq int // distinguishes this view from earlier ones

	listing  *domain.Listing
	loading  bool
	notFound bool
	image    int
	status   string

	width  int
	height int
}

func newDetailModel(api API, log logging.Logger, id int64, seq int) detailModel {
	return detailModel{api: api, log: log, id: id, seq: seq, loading: true}
}

func (m detailModel) Init() tea.Cmd {
	api, log := m.api, m.log
	id, seq := m.id, m.seq
	return func() tea.Msg {
		ctx := context.Background()
		l, err := api.GetListing(ctx, strconv.FormatInt(id, 10))
		if err != nil {
			log.Error(ctx, "get listing", "id", id, "err", err)
		}
		return listingLoadedMsg{seq: seq, listing: l, err: err}
	}
}

func (m detailModel) images() []string {
	if m.listing == nil || len(m.listing.Images) == 0 {
		return []string{placeholderImage}
	}
	out := make([]string, len(m.listing.Images))
	for i, img := range m.listing.Images {
		out[i] = imageURL(img.URL)
	}
	return out
}

func (m detailModel) step(d int) detailModel {
	n := len(m.images())
	m.image = (m.image + d + n) % n
	return m
}

func (m detailModel) Update(msg tea.Msg) (detailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case listingLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil || msg.listing == nil {
			m.notFound = true
			return m, nil
		}
		m.listing = msg.listing
		m.image = 0
		if len(m.images()) > 1 {
			return m, carouselTickCmd(m.seq)
		}
		return m, nil

	case carouselTickMsg:
		if msg.seq != m.seq || m.listing == nil {
			return m, nil
		}
		m = m.step(1)
		return m, carouselTickCmd(m.seq)

	case tea.KeyMsg:
		if m.listing == nil {
			return m, nil
		}
		m.status = ""
		switch msg.String() {
		case "l", "right":
			m = m.step(1)
		case "h", "left":
			m = m.step(-1)
		case "o":
			link := m.images()[m.image]
			if err := openURL(link); err != nil {
				m.log.Warn(context.Background(), "open image", "url", link, "err", err)
				m.status = "Не удалось открыть изображение"
			}
		case "c":
			link := m.api.ListingURL(m.listing.ID)
			if err := copyToClipboard(link); err != nil {
				m.log.Warn(context.Background(), "copy listing link", "err", err)
				m.status = "Не удалось скопировать ссылку"
			} else {
				m.status = "Ссылка скопирована"
			}
		}
	}
	return m, nil
}

func (m detailModel) View() string {
	if m.loading {
		return "\n  " + dimStyle.Render("Загрузка...") + "\n"
	}
	if m.notFound || m.listing == nil {
		return "\n  " + errorStyle.Render("Объект не найден") + "\n"
	}
	l := m.listing

	var b strings.Builder
	b.WriteString("\n  " + selectedStyle.Render(l.Title) + "\n")
	b.WriteString("  " + priceStyle.Render(formatPrice(l.Price)) + "\n\n")

	imgs := m.images()
	b.WriteString(fmt.Sprintf("  %s %s  %s\n\n",
		metaStyle.Render("фото"),
		accentStyle.Render(fmt.Sprintf("%d/%d", m.image+1, len(imgs))),
		dimStyle.Render(imgs[m.image])))

	rows := [][2]string{
		{"Город", l.City},
		{"Тип", l.Type.Label()},
		{"Сделка", l.DealType.Label()},
		{"Статус", statusStyle(l.Status).Render(l.Status.Label())},
		{"Добавлено", formatDate(l.CreatedAt)},
	}
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s %s\n", metaStyle.Render(fmt.Sprintf("%-12s", r[0])), normalStyle.Render(r[1])))
	}

	width := m.width - 4
	if width < 20 {
		width = 76
	}
	b.WriteString("\n" + lipgloss.NewStyle().Width(width).PaddingLeft(2).Render(normalStyle.Render(l.Description)) + "\n")

	if m.status != "" {
		b.WriteString("\n  " + successStyle.Render(m.status) + "\n")
	}
	return b.String()
}
