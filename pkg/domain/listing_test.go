package domain

import "testing"

func TestStatusFromLabel(t *testing.T) {
	tests := []struct {
		label string
		want  Status
	}{
		{"Доступно", StatusAvailable},
		{"Забронировано", StatusBooked},
		{"Продано", StatusSold},
		{"В процессе", StatusInProcess},
		{"", ""},
		{"Sold", ""},
		{"ПРОДАНО", ""},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := StatusFromLabel(tt.label); got != tt.want {
				t.Errorf("StatusFromLabel(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}

func TestStatusLabelsRoundTrip(t *testing.T) {
	for _, label := range StatusLabels[1:] {
		code := StatusFromLabel(label)
		if code == "" {
			t.Fatalf("label %q has no code", label)
		}
		if got := code.Label(); got != label {
			t.Errorf("%q.Label() = %q, want %q", code, got, label)
		}
	}
}

func TestLabelFallback(t *testing.T) {
	if got := Status("ARCHIVED").Label(); got != "ARCHIVED" {
		t.Errorf("Status label = %q, want raw value", got)
	}
	if got := PropertyType("LOFT").Label(); got != "LOFT" {
		t.Errorf("PropertyType label = %q, want raw value", got)
	}
	if got := DealType("LEASE").Label(); got != "LEASE" {
		t.Errorf("DealType label = %q, want raw value", got)
	}
	if got := TypeCondo.Label(); got != "Кондо" {
		t.Errorf("TypeCondo.Label() = %q, want %q", got, "Кондо")
	}
	if got := DealRent.Label(); got != "Аренда" {
		t.Errorf("DealRent.Label() = %q, want %q", got, "Аренда")
	}
}

func TestFilterQuery(t *testing.T) {
	f := Filter{Status: "Продано", City: "Казань", MinPrice: "100", Keyword: "вид"}
	q := f.Query(3, 9)
	if q.Page != 2 {
		t.Errorf("Page = %d, want 2", q.Page)
	}
	if q.Size != 9 {
		t.Errorf("Size = %d, want 9", q.Size)
	}
	if q.Status != StatusSold {
		t.Errorf("Status = %q, want SOLD", q.Status)
	}
	if q.City != "Казань" || q.MinPrice != "100" || q.MaxPrice != "" || q.Keyword != "вид" {
		t.Errorf("unexpected query %+v", q)
	}

	f.Status = "Неизвестно"
	if got := f.Query(1, 9).Status; got != "" {
		t.Errorf("unknown label Status = %q, want empty", got)
	}
}

func TestOptionCode(t *testing.T) {
	tests := []struct {
		opts  []Option
		label string
		want  string
		ok    bool
	}{
		{TypeOptions, "КОТТЕДЖ", "CONDO", true},
		{TypeOptions, "ДОМ", "HOUSE", true},
		{DealTypeOptions, "АРЕНДА", "RENT", true},
		{StatusOptions, "В ПРОЦЕССЕ", "IN_PROCESS", true},
		{StatusOptions, "Продано", "", false},
		{TypeOptions, "", "", false},
	}
	for _, tt := range tests {
		got, ok := OptionCode(tt.opts, tt.label)
		if got != tt.want || ok != tt.ok {
			t.Errorf("OptionCode(%q) = %q, %v; want %q, %v", tt.label, got, ok, tt.want, tt.ok)
		}
	}
}
