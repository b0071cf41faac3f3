package usecase

import (
	"strings"

	"github.com/shandysiswandi/otplogin/internal/pkg/goerror"
	"github.com/shandysiswandi/otplogin/internal/pkg/validator"
)

type emailIdentifier struct {
	Identifier string `validate:"required,email"`
}

type phoneIdentifier struct {
	Identifier string `validate:"required,phone"`
}

// normalizeIdentifier brings an identifier to the form it is stored in:
// emails lowercased, phones in E.164.
func normalizeIdentifier(raw string, isEmail bool) string {
	raw = strings.TrimSpace(raw)
	if isEmail {
		return strings.ToLower(raw)
	}
	return validator.NormalizePhone(raw)
}

// normalizeLookup is normalizeIdentifier for callers that do not declare the kind.
func normalizeLookup(raw string) string {
	raw = strings.TrimSpace(raw)
	return normalizeIdentifier(raw, strings.Contains(raw, "@"))
}

func (s *Usecase) validateIdentifier(identifier string, isEmail bool) error {
	if isEmail {
		if err := s.validator.Validate(emailIdentifier{Identifier: identifier}); err != nil {
			return goerror.NewValidation(err, "Invalid email format")
		}
		return nil
	}

	if err := s.validator.Validate(phoneIdentifier{Identifier: identifier}); err != nil {
		return goerror.NewValidation(err, "Invalid mobile number")
	}
	return nil
}
