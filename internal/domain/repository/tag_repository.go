package repository

import (
	"fuelflow/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrTagNotFound is returned when a tag is not found.
var ErrTagNotFound = errors.New("tag not found")

// TagRepository holds the tag list.
type TagRepository interface {
	Collection[entity.Tag]
}
