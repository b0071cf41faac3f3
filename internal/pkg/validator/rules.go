package validator

import (
	"log/slog"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"
)

// TagPhone validates an international phone number ("+" followed by the
// country code) with libphonenumber metadata.
const TagPhone = "phone"

// customRule pairs a validation func with its English message.
type customRule struct {
	tag     string
	fn      validator.Func
	message string
}

var customRules = []customRule{
	{
		tag:     TagPhone,
		fn:      func(fl validator.FieldLevel) bool { return IsPhone(fl.Field().String()) },
		message: "{0} must be a valid phone number in international format",
	},
}

func registerRules(validate *validator.Validate, trans ut.Translator) error {
	for _, rule := range customRules {
		if err := validate.RegisterValidation(rule.tag, rule.fn); err != nil {
			return err
		}

		if err := validate.RegisterTranslation(rule.tag, trans,
			func(t ut.Translator) error {
				return t.Add(rule.tag, rule.message, false)
			},
			func(t ut.Translator, fe validator.FieldError) string {
				msg, err := t.T(fe.Tag(), fe.Field())
				if err != nil {
					slog.Warn("failed to translate validation error", "tag", fe.Tag(), "error", err)
					return fe.Error()
				}
				return msg
			},
		); err != nil {
			return err
		}
	}

	return nil
}

// IsPhone reports whether raw parses as a valid number for its region.
// Numbers without a leading "+" are rejected since no default region applies.
func IsPhone(raw string) bool {
	num, err := phonenumbers.Parse(strings.TrimSpace(raw), "")
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(num)
}

// NormalizePhone returns raw in E.164 form when it parses as a phone number,
// otherwise raw trimmed.
func NormalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	num, err := phonenumbers.Parse(raw, "")
	if err != nil {
		return raw
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}
