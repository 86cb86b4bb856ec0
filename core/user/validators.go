package user

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/ojtrack/ojtrack/core"
)

var (
	// custom validation tags & texts
	roleTag  = "role"
	roleText = "invalid role"

	// password rule violations
	pwdMinLenText    = "password must be at least 8 characters long"
	pwdNoSpaceText   = "password must not contain whitespace"
	pwdNotAllNumText = "password cannot be entirely numeric"
	pwdAttrSimText   = "password is too similar to your personal information"
	pwdNoCommonText  = "password is too common"

	pwdMaxSim = 0.7

	// sorted
	commonPasswords = []string{
		"11111111", "12345678", "123456789", "1234567890", "abcd1234",
		"baseball", "computer", "football", "iloveyou", "letmein1",
		"password", "password1", "princess", "qwerty123", "starwars",
		"sunshine", "superman", "trustno1", "welcome1", "whatever",
	}
)

func init() {
	_ = core.Validate.RegisterValidation(roleTag, roleValidation)
	core.RegisterCustomTranslation(core.Validate, core.Translator, roleTag, roleText)
}

func roleValidation(fl validator.FieldLevel) bool {
	return IsValidRole(fl.Field().String())
}

// ValidatePassword applies the password policy for user-chosen passwords:
// - minLen: 8
// - no whitespace
// - not all numeric
// - no similarity with the user's name or email
// - no common password
// Generated default account passwords do not go through here.
func ValidatePassword(pwd string, usr User) error {
	reportErr := func(text string) error {
		return core.NewValidationError(nil, core.FieldError{Field: "password", Error: text})
	}

	var digitCount int

	pwdLen := len(pwd)
	if pwdLen < 8 {
		return reportErr(pwdMinLenText)
	}
	for _, char := range []rune(pwd) {
		if unicode.IsSpace(char) {
			return reportErr(pwdNoSpaceText)
		}
		if unicode.IsDigit(char) {
			digitCount++
		}
	}
	if digitCount == pwdLen {
		return reportErr(pwdNotAllNumText)
	}

	getRatio := func(pass, usrAttr string) float64 {
		if usrAttr == "" {
			return 0
		}
		return difflib.NewMatcher(strings.Split(pass, ""), strings.Split(usrAttr, "")).QuickRatio()
	}
	lpwd := strings.ToLower(pwd)
	if getRatio(lpwd, strings.ToLower(usr.Name)) >= pwdMaxSim ||
		getRatio(lpwd, strings.ToLower(usr.Email)) >= pwdMaxSim {
		return reportErr(pwdAttrSimText)
	}

	for _, common := range commonPasswords {
		if lpwd == common {
			return reportErr(pwdNoCommonText)
		}
	}
	return nil
}
