package service

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrLinkNotFound = errors.New("link does not exist")
	ErrInvalidInput = errors.New("invalid input")
)
