package forms

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveenspark/estate/pkg/domain"
)

func validListing() Listing {
	return Listing{
		Title:       "Дом у озера",
		Description: strings.Repeat("д", 150),
		Type:        "КОТТЕДЖ",
		DealType:    "ПРОДАЖА",
		Price:       "2500000",
		City:        "Казань",
		Status:      "ДОСТУПНО",
	}
}

func TestListing_Valid(t *testing.T) {
	assert.True(t, validListing().Validate().OK())
}

func TestListing_DescriptionBounds(t *testing.T) {
	tests := []struct {
		n     int
		valid bool
	}{
		{0, false},
		{99, false},
		{100, true},
		{1000, true},
		{2000, true},
		{2001, false},
	}
	for _, tt := range tests {
		f := validListing()
		f.Description = strings.Repeat("ж", tt.n)
		errs := f.Validate()
		_, bad := errs["description"]
		assert.Equal(t, !tt.valid, bad, "length %d", tt.n)
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
	}{
		{"1", true},
		{"0.5", true},
		{"1000000000", true},
		{"1e9", true},
		{" 42 ", true},
		{"0", false},
		{"-5", false},
		{"1000000000.01", false},
		{"2e9", false},
		{"", false},
		{"abc", false},
		{"12abc", false},
		{"NaN", false},
		{"Inf", false},
	}
	for _, tt := range tests {
		_, ok := ParsePrice(tt.in)
		assert.Equal(t, tt.valid, ok, "price %q", tt.in)

		f := validListing()
		f.Price = tt.in
		_, bad := f.Validate()["price"]
		assert.Equal(t, !tt.valid, bad, "price %q", tt.in)
	}
}

func TestListing_RequiredFields(t *testing.T) {
	errs := Listing{Title: "  ", City: "\t", Description: strings.Repeat("x", 100), Price: "10"}.Validate()
	assert.Equal(t, []string{"city", "propertyDealType", "status", "title", "type"}, errs.Fields())
	assert.Equal(t, "Выберите тип", errs["type"])
}

func TestListing_WrongVocabulary(t *testing.T) {
	f := validListing()
	f.Status = "Доступно" // filter label, not a form label
	assert.Contains(t, f.Validate(), "status")
}

func TestListing_Payload(t *testing.T) {
	p := validListing().Payload()
	assert.Equal(t, domain.TypeCondo, p.Type)
	assert.Equal(t, domain.DealSale, p.DealType)
	assert.Equal(t, domain.StatusAvailable, p.Status)
	assert.Equal(t, 2500000.0, p.Price)
	assert.Equal(t, "Казань", p.City)
}

func jpeg(name string, size int64) ImageFile {
	return ImageFile{Name: name, ContentType: "image/jpeg", Size: size}
}

func TestImageSet_Add(t *testing.T) {
	var s ImageSet
	require.NoError(t, s.Add(jpeg("a.jpg", 100), ImageFile{Name: "b.jpg", ContentType: "image/jpg", Size: MaxImageSize}))
	assert.Equal(t, 2, s.Len())

	err := s.Add(jpeg("c.jpg", 1), jpeg("d.jpg", 1))
	var ie *ImageError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, KindCount, ie.Kind)
	assert.Equal(t, "Максимум 3 изображения", err.Error())
	assert.Equal(t, 2, s.Len(), "rejected batch leaves the set unchanged")

	require.NoError(t, s.Add(jpeg("c.jpg", 1)))
	assert.Equal(t, 3, s.Len())

	s.Reset()
	assert.Zero(t, s.Len())
}

func TestImageSet_TypeRejectsWholeBatch(t *testing.T) {
	var s ImageSet
	err := s.Add(jpeg("a.jpg", 1), ImageFile{Name: "b.png", ContentType: "image/png", Size: 1})
	var ie *ImageError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, KindType, ie.Kind)
	assert.Equal(t, "b.png", ie.File)
	assert.Zero(t, s.Len())
}

func TestImageSet_TypeCheckedBeforeCount(t *testing.T) {
	var s ImageSet
	require.NoError(t, s.Add(jpeg("a.jpg", 1), jpeg("b.jpg", 1)))

	// Over the count and containing a non-JPEG: only the type error is reported.
	err := s.Add(jpeg("c.jpg", 1), ImageFile{Name: "d.gif", ContentType: "image/gif"})
	var ie *ImageError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, KindType, ie.Kind)
}

func TestImageSet_Oversized(t *testing.T) {
	var s ImageSet
	err := s.Add(jpeg("big.jpg", MaxImageSize+1))
	var ie *ImageError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, KindSize, ie.Kind)
	assert.Equal(t, "Каждое изображение должно быть не больше 5 МБ", err.Error())
}

func TestImageSet_FilesIsCopy(t *testing.T) {
	var s ImageSet
	require.NoError(t, s.Add(jpeg("a.jpg", 1)))
	files := s.Files()
	files[0].Name = "changed"
	assert.Equal(t, "a.jpg", s.Files()[0].Name)
}

func TestStatImage(t *testing.T) {
	dir := t.TempDir()
	jpg := filepath.Join(dir, "Фото.JPG")
	require.NoError(t, os.WriteFile(jpg, []byte("0123456789"), 0o600))
	png := filepath.Join(dir, "plan.png")
	require.NoError(t, os.WriteFile(png, []byte("x"), 0o600))

	f, err := StatImage(jpg)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", f.ContentType)
	assert.Equal(t, int64(10), f.Size)
	assert.Equal(t, "Фото.JPG", f.Name)

	f, err = StatImage(png)
	require.NoError(t, err)
	assert.Equal(t, "image/png", f.ContentType)

	_, err = StatImage(filepath.Join(dir, "missing.jpg"))
	assert.Error(t, err)
	_, err = StatImage(dir)
	assert.Error(t, err)
}

func TestParsePaths(t *testing.T) {
	assert.Equal(t, []string{"a.jpg", "/tmp/b c.jpg"}, ParsePaths(" a.jpg , /tmp/b c.jpg,, "))
	assert.Nil(t, ParsePaths("  "))
}

func TestLogin_Validate(t *testing.T) {
	assert.True(t, Login{Email: "a@b.c", Password: "x"}.Validate().OK())
	errs := Login{}.Validate()
	assert.Equal(t, []string{"email", "password"}, errs.Fields())
	assert.Equal(t, "Пожалуйста, введите email.", errs["email"])
}

func TestRegister_Validate(t *testing.T) {
	tests := []struct {
		name   string
		form   Register
		fields []string
	}{
		{"valid", Register{"Ал", "Ли", "a@b.co", "x"}, []string{}},
		{"boundary names", Register{"Al", strings.Repeat("Я", 50), "a@b.co", "x"}, []string{}},
		{"short name", Register{"A", "Li", "a@b.co", "x"}, []string{"firstName"}},
		{"long name", Register{strings.Repeat("a", 51), "Li", "a@b.co", "x"}, []string{"firstName"}},
		{"blank names", Register{"  ", "", "a@b.co", "x"}, []string{"firstName", "secondName"}},
		{"email without dot", Register{"Al", "Li", "a@b", "x"}, []string{"email"}},
		{"email with space", Register{"Al", "Li", "a @b.c", "x"}, []string{"email"}},
		{"blank email", Register{"Al", "Li", "  ", "x"}, []string{"email"}},
		{"no password", Register{"Al", "Li", "a@b.co", ""}, []string{"password"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.fields, tt.form.Validate().Fields())
		})
	}
}

func TestRegister_ExactlyTwoErrors(t *testing.T) {
	errs := Register{FirstName: "Al", SecondName: "", Email: "bad", Password: "x"}.Validate()
	require.Len(t, errs, 2)
	assert.Equal(t, "Фамилия обязательна", errs["secondName"])
	assert.Equal(t, "Некорректный email", errs["email"])
}

func TestStrongPassword(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"abc12345", false},
		{"Abc123!@", true},
		{"Abc12345", false},
		{"ABC!@#$%", false},
		{"Abc_1234", true},
		{"Ab1!", false},
		{"Пароль1!", false},
		{"Пароль1!Z", true},
		{"Abc 1234", true},
		{"Abc1234!\n", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StrongPassword(tt.in), "%q", tt.in)
	}
}

func TestPasswordChange_Validate(t *testing.T) {
	assert.True(t, PasswordChange{"old", "Abc123!@", "Abc123!@"}.Validate().OK())

	errs := PasswordChange{"old", "Abc123!@", "Abc123!#"}.Validate()
	assert.Equal(t, []string{"confirmationPassword"}, errs.Fields())

	errs = PasswordChange{"", "abc12345", "abc12345"}.Validate()
	assert.Equal(t, []string{"currentPassword", "newPassword"}, errs.Fields())

	errs = PasswordChange{"old", "weak", "other"}.Validate()
	assert.Equal(t, []string{"confirmationPassword", "newPassword"}, errs.Fields())
}
