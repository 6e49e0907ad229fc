package repository

import (
	"errors"

	apperrors "ecommerce-admin/internal/errors"

	"gorm.io/gorm"
)

// translate maps GORM errors onto the application error taxonomy.
func translate(err error, notFound, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewNotFoundError(notFound)
	}
	return apperrors.NewInternalError(op, err)
}
