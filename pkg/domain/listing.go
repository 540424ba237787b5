package domain

// PropertyType is the backend code for the kind of property.
type PropertyType string

const (
	TypeApartment PropertyType = "APARTMENT"
	TypeHouse     PropertyType = "HOUSE"
	TypeCondo     PropertyType = "CONDO"
	TypeVilla     PropertyType = "VILLA"
)

// DealType is the backend code for sale or rent.
type DealType string

const (
	DealSale DealType = "SALE"
	DealRent DealType = "RENT"
)

// Status is the backend code for listing availability.
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusBooked    Status = "BOOKED"
	StatusSold      Status = "SOLD"
	StatusInProcess Status = "IN_PROCESS"
)

// Listing is a property as returned by the listing service.
type Listing struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Type        PropertyType `json:"type"`
	DealType    DealType     `json:"propertyDealType"`
	Status      Status       `json:"status"`
	Price       float64      `json:"price"`
	City        string       `json:"city"`
	CreatedAt   string       `json:"createdAt,omitempty"` // server-local timestamp, parsed only for display
	Images      []Image      `json:"images,omitempty"`
}

// Image is a stored image reference attached to a listing.
type Image struct {
	URL string `json:"imageUrl"`
}

// ListingPage is one page of search results.
type ListingPage struct {
	Listings   []Listing
	TotalPages int
}

// Filter is the user-facing filter set of the listing browser.
// Status holds a display label, not a backend code.
type Filter struct {
	Status   string
	City     string
	MinPrice string
	MaxPrice string
	Keyword  string
}

// SearchQuery is a filter translated for the search endpoint. Page is zero-based.
type SearchQuery struct {
	Page     int
	Size     int
	Status   Status
	City     string
	MinPrice string
	MaxPrice string
	Keyword  string
}

// Query translates a filter and a 1-based page into a search query.
func (f Filter) Query(page, size int) SearchQuery {
	return SearchQuery{
		Page:     page - 1,
		Size:     size,
		Status:   StatusFromLabel(f.Status),
		City:     f.City,
		MinPrice: f.MinPrice,
		MaxPrice: f.MaxPrice,
		Keyword:  f.Keyword,
	}
}

var statusLabels = map[Status]string{
	StatusAvailable: "Доступно",
	StatusBooked:    "Забронировано",
	StatusSold:      "Продано",
	StatusInProcess: "В процессе",
}

var typeLabels = map[PropertyType]string{
	TypeApartment: "Квартира",
	TypeHouse:     "Дом",
	TypeCondo:     "Кондо",
	TypeVilla:     "Вилла",
}

var dealTypeLabels = map[DealType]string{
	DealSale: "Продажа",
	DealRent: "Аренда",
}

// StatusLabels lists the status filter labels in display order.
// The empty label means "any status".
var StatusLabels = []string{"", "Доступно", "Забронировано", "Продано", "В процессе"}

// Label returns the display label, or the raw code when it is not mapped.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Label returns the display label, or the raw code when it is not mapped.
func (t PropertyType) Label() string {
	if l, ok := typeLabels[t]; ok {
		return l
	}
	return string(t)
}

// Label returns the display label, or the raw code when it is not mapped.
func (d DealType) Label() string {
	if l, ok := dealTypeLabels[d]; ok {
		return l
	}
	return string(d)
}

// StatusFromLabel maps a status filter label to its backend code.
// Unknown labels map to the empty status, which the backend reads as no filter.
func StatusFromLabel(label string) Status {
	switch label {
	case "Доступно":
		return StatusAvailable
	case "Забронировано":
		return StatusBooked
	case "Продано":
		return StatusSold
	case "В процессе":
		return StatusInProcess
	default:
		return ""
	}
}

// Option is one entry of a select vocabulary in the listing form.
type Option struct {
	Label string
	Code  string
}

// Vocabularies of the listing creation form, in display order.
var (
	TypeOptions = []Option{
		{"ДОМ", string(TypeHouse)},
		{"КВАРТИРА", string(TypeApartment)},
		{"КОТТЕДЖ", string(TypeCondo)},
		{"ВИЛЛА", string(TypeVilla)},
	}
	DealTypeOptions = []Option{
		{"АРЕНДА", string(DealRent)},
		{"ПРОДАЖА", string(DealSale)},
	}
	StatusOptions = []Option{
		{"ДОСТУПНО", string(StatusAvailable)},
		{"ЗАБРОНИРОВАНО", string(StatusBooked)},
		{"ПРОДАНО", string(StatusSold)},
		{"В ПРОЦЕССЕ", string(StatusInProcess)},
	}
)

// OptionCode returns the code for label within opts.
func OptionCode(opts []Option, label string) (string, bool) {
	for _, o := range opts {
		if o.Label == label {
			return o.Code, true
		}
	}
	return "", false
}
