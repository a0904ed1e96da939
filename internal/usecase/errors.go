package usecase

import (
	"errors"

	"github.com/riskibarqy/hockey-pbp/internal/domain/gamekey"
)

var (
	ErrInvalidInput          = gamekey.ErrInvalidInput
	ErrNotFound              = errors.New("resource not found")
	ErrUpstreamUnavailable   = errors.New("upstream unavailable")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
