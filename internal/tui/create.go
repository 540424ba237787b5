package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/estate/internal/forms"
	"github.com/naveenspark/estate/internal/logging"
	"github.com/naveenspark/estate/internal/session"
	"github.com/naveenspark/estate/pkg/client"
	"github.com/naveenspark/estate/pkg/domain"
)

type createField int

const (
	fieldTitle createField = iota
	fieldDescription
	fieldType
	fieldDealType
	fieldStatus
	fieldPrice
	fieldCity
	fieldImages
	numFields
)

var createFieldKeys = [numFields]string{
	fieldTitle:       "title",
	fieldDescription: "description",
	fieldType:        "type",
	fieldDealType:    "propertyDealType",
	fieldStatus:      "status",
	fieldPrice:       "price",
	fieldCity:        "city",
	fieldImages:      "images",
}

const (
	msgNotAuthorized  = "Пользователь не авторизован. Пожалуйста, войдите."
	msgListingCreated = "Объект успешно добавлен!"
	msgListingFailed  = "Не удалось добавить объект. Попробуйте позже."
)

type listingCreatedMsg struct {
	listing *domain.Listing
	err     error
}

type createModel struct {
	api      API
	store    session.Store
	identity *session.Identity
	log      logging.Logger

	form      forms.Listing
	imagePath string
	images    forms.ImageSet
	focus     createField

	errs      forms.FieldErrors
	imageErr  string
	statusMsg string
	failed    bool
	submitted bool
}

func newCreateModel(api API, store session.Store, identity *session.Identity, log logging.Logger) createModel {
	return createModel{api: api, store: store, identity: identity, log: log}
}

func (m createModel) Init() tea.Cmd {
	return nil
}

func optionLabels(opts []domain.Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Label
	}
	return out
}

func (m createModel) Update(msg tea.Msg) (createModel, tea.Cmd) {
	switch msg := msg.(type) {
	case listingCreatedMsg:
		m.submitted = false
		if msg.err != nil {
			m.failed = true
			m.statusMsg = msgListingFailed
			return m, nil
		}
		m.form = forms.Listing{}
		m.images.Reset()
		m.imagePath = ""
		m.errs = nil
		m.imageErr = ""
		m.focus = fieldTitle
		m.failed = false
		m.statusMsg = msgListingCreated
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m createModel) updateKeys(msg tea.KeyMsg) (createModel, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		return m.submit()
	case "ctrl+x":
		m.images.Reset()
		m.imageErr = ""
		return m, nil
	case "tab", "down":
		m.focus = (m.focus + 1) % numFields
		return m, nil
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numFields) % numFields
		return m, nil
	case "enter":
		switch m.focus {
		case fieldDescription:
			m.form.Description = editRune(m.form.Description, "\n")
		case fieldImages:
			m.addImages()
		default:
			m.focus = (m.focus + 1) % numFields
		}
		return m, nil
	}

	switch m.focus {
	case fieldType:
		m.form.Type = cycleSelect(domain.TypeOptions, m.form.Type, msg.String())
	case fieldDealType:
		m.form.DealType = cycleSelect(domain.DealTypeOptions, m.form.DealType, msg.String())
	case fieldStatus:
		m.form.Status = cycleSelect(domain.StatusOptions, m.form.Status, msg.String())
	case fieldTitle:
		m.form.Title = editText(m.form.Title, msg)
	case fieldDescription:
		m.form.Description = editText(m.form.Description, msg)
	case fieldPrice:
		m.form.Price = numericOnly(editText(m.form.Price, msg))
	case fieldCity:
		m.form.City = editText(m.form.City, msg)
	case fieldImages:
		m.imagePath = editText(m.imagePath, msg)
	}
	return m, nil
}

func cycleSelect(opts []domain.Option, current, key string) string {
	switch key {
	case "l", "right", " ":
		return cycle(optionLabels(opts), current, 1)
	case "h", "left":
		return cycle(optionLabels(opts), current, -1)
	}
	return current
}

// addImages stats the comma-separated paths in the image field and adds
// them as one batch.
func (m *createModel) addImages() {
	paths := forms.ParsePaths(m.imagePath)
	if len(paths) == 0 {
		return
	}
	batch := make([]forms.ImageFile, 0, len(paths))
	for _, p := range paths {
		f, err := forms.StatImage(p)
		if err != nil {
			m.log.Warn(context.Background(), "stat image", "path", p, "err", err)
			m.imageErr = "Файл не найден: " + p
			return
		}
		batch = append(batch, f)
	}
	if err := m.images.Add(batch...); err != nil {
		m.imageErr = err.Error()
		return
	}
	m.imageErr = ""
	m.imagePath = ""
}

func (m createModel) submit() (createModel, tea.Cmd) {
	if m.submitted {
		return m, nil
	}
	m.statusMsg = ""
	m.failed = false
	m.errs = m.form.Validate()
	if !m.errs.OK() {
		return m, nil
	}

	ctx := context.Background()
	token, err := m.store.Token(ctx)
	if err != nil || token == "" {
		m.failed = true
		m.statusMsg = msgNotAuthorized
		return m, nil
	}
	userID, err := m.identity.UserID(ctx)
	if err != nil {
		m.failed = true
		m.statusMsg = msgNotAuthorized
		return m, nil
	}

	p := m.form.Payload()
	req := client.CreateListingRequest{
		Title:       p.Title,
		Description: p.Description,
		Type:        p.Type,
		Price:       p.Price,
		City:        p.City,
		Status:      p.Status,
		DealType:    p.DealType,
	}
	files := m.images.Files()
	uploads := make([]client.ImageUpload, len(files))
	for i, f := range files {
		uploads[i] = client.FileImage(f.Path, f.Name, "image/jpeg")
	}

	m.submitted = true
	api, log := m.api, m.log
	return m, func() tea.Msg {
		l, err := api.CreateListing(ctx, userID, req, uploads)
		if err != nil {
			log.Error(ctx, "create listing", "user_id", userID, "images", len(uploads), "err", err)
		}
		return listingCreatedMsg{listing: l, err: err}
	}
}

func (m createModel) View() string {
	var b strings.Builder
	b.WriteString("\n  " + sectionHeaderStyle.Render("НОВОЕ ОБЪЯВЛЕНИЕ") + "\n\n")

	fe := func(f createField) string { return m.errs[createFieldKeys[f]] }
	rows := []string{
		renderField("Название", m.form.Title, m.focus == fieldTitle, fe(fieldTitle)),
		renderField("Описание", m.form.Description, m.focus == fieldDescription, fe(fieldDescription)),
		renderSelect("Тип", m.form.Type, m.focus == fieldType, fe(fieldType)),
		renderSelect("Сделка", m.form.DealType, m.focus == fieldDealType, fe(fieldDealType)),
		renderSelect("Статус", m.form.Status, m.focus == fieldStatus, fe(fieldStatus)),
		renderField("Цена, ₽", m.form.Price, m.focus == fieldPrice, fe(fieldPrice)),
		renderField("Город", m.form.City, m.focus == fieldCity, fe(fieldCity)),
		renderField("Фото (пути)", m.imagePath, m.focus == fieldImages, m.imageErr),
	}
	b.WriteString(strings.Join(rows, "\n") + "\n")

	for _, f := range m.images.Files() {
		b.WriteString("                   " + dimStyle.Render("• "+f.Name) + "\n")
	}

	if m.submitted {
		b.WriteString("\n  " + dimStyle.Render("Отправка...") + "\n")
	}
	if m.statusMsg != "" {
		style := successStyle
		if m.failed {
			style = errorStyle
		}
		b.WriteString("\n  " + style.Render(m.statusMsg) + "\n")
	}
	return b.String()
}
