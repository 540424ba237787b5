package forms

// MinPasswordLen is the minimum length of a new password.
const MinPasswordLen = 8

// PasswordChange is the change-password form of the profile view.
type PasswordChange struct {
	Current      string
	New          string
	Confirmation string
}

func (f PasswordChange) Validate() FieldErrors {
	errs := FieldErrors{}
	if f.Current == "" {
		errs["currentPassword"] = "Введите текущий пароль"
	}
	if !StrongPassword(f.New) {
		errs["newPassword"] = "Пароль должен быть не менее 8 символов, содержать заглавную букву, цифру и спецсимвол"
	}
	if f.New != f.Confirmation {
		errs["confirmationPassword"] = "Пароли не совпадают"
	}
	return errs
}

// StrongPassword reports whether p has at least MinPasswordLen characters
// (line breaks not allowed), an ASCII uppercase letter, an ASCII digit and a
// character outside [A-Za-z0-9] (underscore counts).
func StrongPassword(p string) bool {
	var upper, digit, symbol bool
	n := 0
	for _, r := range p {
		if r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029' {
			return false
		}
		n++
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case r == '_' || !isWordRune(r):
			symbol = true
		}
	}
	return n >= MinPasswordLen && upper && digit && symbol
}

// isWordRune matches the ASCII \w class: letters, digits and underscore.
func isWordRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_'
}
