package service

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrNotAuthor      = errors.New("not the author")
	ErrBadCredentials = errors.New("invalid username or password")
)

// notFound normalizes storage lookups so handlers never see gorm errors.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
