package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrForbidden        = errors.New("forbidden")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrStoreFailure     = errors.New("store failure")
)

// wrapStoreError turns a gorm error into one of the kinds above,
// a missing record becomes ErrNotFound with the subject attached.
func wrapStoreError(err error, subject string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s was not found", ErrNotFound, subject)
	}
	return fmt.Errorf("%w: unable to load %s: %v", ErrStoreFailure, subject, err)
}

func storeFailure(action string, err error) error {
	return fmt.Errorf("%w: unable to %s: %v", ErrStoreFailure, action, err)
}
