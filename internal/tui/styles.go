package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/estate/pkg/domain"
)

const logoText = "НЕДВИЖИМОСТЬ"

// Shimmer animation for the header logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders the title as a wave of light moving across
// spaced letters, deep teal (#123c44) to bright aqua (#5eead4).
func renderShimmerLogo(frame int) string {
	letters := []rune(logoText)
	n := len(letters)
	t := float64(frame)

	var b strings.Builder
	for i, r := range letters {
		x := float64(i) / float64(n-1)
		phase := t*0.1 - x*3.0 + math.Sin(t*0.023)*2.0

		v := math.Pow(math.Sin(phase)*0.5+0.5, 1.3)
		v = v*0.75 + math.Sin(t*0.035)*0.12 + 0.18
		v = math.Max(0.05, math.Min(1, v))

		color := fmt.Sprintf("#%02X%02X%02X",
			clampByte(18+v*(94-18)),
			clampByte(60+v*(234-60)),
			clampByte(68+v*(212-68)))

		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color)).Render(string(r)))
		if i < n-1 {
			b.WriteString(" ")
		}
	}
	return b.String()
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5eead4")).
			Bold(true)

	priceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4a844")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#8890a0")).
				Bold(true)

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#5eead4"))

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#3a4050")).
				Italic(true)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	alertBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#d4a844")).
			Padding(1, 3)

	dangerBoxStyle = alertBoxStyle.
			BorderForeground(lipgloss.Color("#f87171"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#2a3040")).
			Padding(0, 1)
)

var statusColors = map[domain.Status]string{
	domain.StatusAvailable: "#4ade80",
	domain.StatusBooked:    "#d4a844",
	domain.StatusSold:      "#f87171",
	domain.StatusInProcess: "#60a5fa",
}

// statusStyle colors a listing status; unknown statuses are dim.
func statusStyle(s domain.Status) lipgloss.Style {
	if c, ok := statusColors[s]; ok {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return dimStyle
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpBar joins help entries given as key, label pairs.
func helpBar(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, helpEntry(pairs[i], pairs[i+1]))
	}
	return " " + strings.Join(parts, "  ")
}

// helpView renders the key reference overlay.
func helpView(version string) string {
	title := accentStyle.Render("Н Е Д В И Ж И М О С Т Ь")
	keyStyle := lipgloss.NewStyle().Bold(true)

	sections := []struct {
		name string
		keys [][2]string
	}{
		{"Навигация", [][2]string{
			{"1", "объявления"},
			{"2 / n", "добавить объявление"},
			{"3 / p", "личный кабинет"},
			{"4", "вход"},
			{"?", "эта справка"},
			{"q / ctrl+c", "выход"},
		}},
		{"Объявления", [][2]string{
			{"j/k", "выбор"},
			{"enter", "открыть"},
			{"/", "фильтры (enter применить, esc закрыть)"},
			{"[ ]", "страницы"},
			{"r", "обновить"},
		}},
		{"Объект", [][2]string{
			{"h/l", "фото"},
			{"o", "открыть фото в браузере"},
			{"c", "скопировать ссылку"},
			{"esc", "назад"},
		}},
		{"Формы", [][2]string{
			{"tab", "следующее поле"},
			{"ctrl+s", "отправить"},
			{"ctrl+t", "показать пароль"},
			{"esc", "назад"},
		}},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s  %s\n", title, metaStyle.Render(version))
	for _, s := range sections {
		fmt.Fprintf(&b, "\n  %s\n", sectionHeaderStyle.Render(s.name))
		for _, k := range s.keys {
			fmt.Fprintf(&b, "    %s  %s\n", keyStyle.Render(fmt.Sprintf("%-12s", k[0])), dimStyle.Render(k[1]))
		}
	}
	return b.String()
}
