package helpers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// MaxListLimit caps the limit query parameter.
	MaxListLimit = 500
)

// ListOptions narrows a collection listing. A zero Limit means "no limit".
type ListOptions struct {
	Search string
	Limit  uint64
	Offset uint64
}

// ParseListOptions extracts search, limit and offset query parameters.
// Invalid numbers are ignored rather than rejected, matching how the
// view layer builds its query strings.
func ParseListOptions(c *gin.Context) ListOptions {
	opts := ListOptions{Search: strings.TrimSpace(c.Query("search"))}

	if limit, err := strconv.ParseUint(c.Query("limit"), 10, 64); err == nil && limit > 0 {
		if limit > MaxListLimit {
			limit = MaxListLimit
		}
		opts.Limit = limit
	}
	if offset, err := strconv.ParseUint(c.Query("offset"), 10, 64); err == nil {
		opts.Offset = offset
	}

	return opts
}

// ParseID parses a positive int64 identifier from a path or form value.
func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ParseOptionalID parses an optional identifier. Empty input yields (nil, true).
func ParseOptionalID(raw string) (*int64, bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, true
	}
	id, ok := ParseID(raw)
	if !ok {
		return nil, false
	}
	return &id, true
}
