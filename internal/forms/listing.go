package forms

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/naveenspark/estate/pkg/domain"
)

// Listing form limits.
const (
	MinDescriptionLen = 100
	MaxDescriptionLen = 2000
	MaxPrice          = 1e9
)

// Listing is the listing creation form. Type, DealType and Status hold
// labels from the domain option vocabularies.
type Listing struct {
	Title       string
	Description string
	Type        string
	DealType    string
	Price       string
	City        string
	Status      string
}

func (f Listing) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(f.Title) == "" {
		errs["title"] = "Введите название"
	}
	switch n := utf8.RuneCountInString(f.Description); {
	case n < MinDescriptionLen:
		errs["description"] = "Описание должно содержать минимум 100 символов"
	case n > MaxDescriptionLen:
		errs["description"] = "Описание не может быть больше 2000 символов"
	}
	if _, ok := domain.OptionCode(domain.TypeOptions, f.Type); !ok {
		errs["type"] = "Выберите тип"
	}
	if _, ok := domain.OptionCode(domain.DealTypeOptions, f.DealType); !ok {
		errs["propertyDealType"] = "Выберите сделку"
	}
	if _, ok := ParsePrice(f.Price); !ok {
		errs["price"] = "Введите корректную цену (до 1 млрд)"
	}
	if strings.TrimSpace(f.City) == "" {
		errs["city"] = "Введите город"
	}
	if _, ok := domain.OptionCode(domain.StatusOptions, f.Status); !ok {
		errs["status"] = "Выберите статус"
	}
	return errs
}

// ParsePrice parses s as a number in (0, MaxPrice].
func ParsePrice(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if v <= 0 || v > MaxPrice {
		return 0, false
	}
	return v, true
}

// Payload translates a valid form into the create request body.
// Call Validate first; unknown labels become empty codes.
func (f Listing) Payload() domain.Listing {
	typ, _ := domain.OptionCode(domain.TypeOptions, f.Type)
	deal, _ := domain.OptionCode(domain.DealTypeOptions, f.DealType)
	status, _ := domain.OptionCode(domain.StatusOptions, f.Status)
	price, _ := ParsePrice(f.Price)
	return domain.Listing{
		Title:       f.Title,
		Description: f.Description,
		Type:        domain.PropertyType(typ),
		DealType:    domain.DealType(deal),
		Status:      domain.Status(status),
		Price:       price,
		City:        f.City,
	}
}
