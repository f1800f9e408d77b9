// Package ids centralizes identifier generation. Entity rows use UUIDs so
// they match the uuid columns in postgres; request ids use ksuid for
// sortable, compact log correlation.
package ids

import (
	"github.com/google/uuid"
	"github.com/segmentio/ksuid"
)

func New() string {
	return uuid.NewString()
}

func NewRequestID() string {
	return ksuid.New().String()
}
