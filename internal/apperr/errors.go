// Package apperr defines sentinel errors shared across kataforge components.
package apperr

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrConfigMissing      = errors.New("language registry not found")
	ErrTemplateNotFound   = errors.New("template not found")
	ErrPlaceholderMissing = errors.New("injection placeholder not found")
)
