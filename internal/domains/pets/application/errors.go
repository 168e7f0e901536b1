package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid pet input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrUnknownSpecies) ||
		errors.Is(err, domain.ErrInvalidPhotoURL) ||
		errors.Is(err, domain.ErrAgeOutOfRange) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
