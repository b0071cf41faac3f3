package usecase

import (
	"errors"

	"github.com/shandysiswandi/otplogin/internal/pkg/goerror"
)

func isNotFound(err error) bool {
	return errors.Is(err, goerror.ErrNotFound)
}
