package usecase

import (
	"errors"

	"prompt-template-store/internal/domain"
)

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
