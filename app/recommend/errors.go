package recommend

import (
	"errors"
)

var (
	ErrInvalidReaction = errors.New("invalid reaction")
	ErrArticleNotFound = errors.New("article not found")
)
