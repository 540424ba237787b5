// Package forms holds the local, pre-submit validation of every form in the
// client. Rules and messages are user-facing and stay in Russian.
package forms

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// FieldErrors maps a field name to its message. An empty map means valid.
type FieldErrors map[string]string

// OK reports whether there are no errors.
func (fe FieldErrors) OK() bool { return len(fe) == 0 }

// Fields returns the failing field names in sorted order.
func (fe FieldErrors) Fields() []string {
	out := make([]string, 0, len(fe))
	for k := range fe {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Login is the login form.
type Login struct {
	Email    string
	Password string
}

func (f Login) Validate() FieldErrors {
	errs := FieldErrors{}
	if f.Email == "" {
		errs["email"] = "Пожалуйста, введите email."
	}
	if f.Password == "" {
		errs["password"] = "Пожалуйста, введите пароль."
	}
	return errs
}

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// Register is the registration form.
type Register struct {
	FirstName  string
	SecondName string
	Email      string
	Password   string
}

func (f Register) Validate() FieldErrors {
	errs := FieldErrors{}

	if msg := nameError(f.FirstName, "Имя обязательно", "Имя должно содержать от 2 до 50 символов"); msg != "" {
		errs["firstName"] = msg
	}
	if msg := nameError(f.SecondName, "Фамилия обязательна", "Фамилия должна содержать от 2 до 50 символов"); msg != "" {
		errs["secondName"] = msg
	}

	switch {
	case strings.TrimSpace(f.Email) == "":
		errs["email"] = "Email обязателен"
	case !emailPattern.MatchString(f.Email):
		errs["email"] = "Некорректный email"
	}

	if f.Password == "" {
		errs["password"] = "Пароль обязателен"
	}
	return errs
}

// nameError checks presence on the trimmed value and length on the raw one.
func nameError(v, required, length string) string {
	if strings.TrimSpace(v) == "" {
		return required
	}
	if n := utf8.RuneCountInString(v); n < 2 || n > 50 {
		return length
	}
	return ""
}
