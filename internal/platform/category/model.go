package category

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category labels transactions. Categories are shared across all users.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate validates category fields
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return ErrMissingTitle
	}

	if len(c.Title) > 255 {
		return ErrTitleTooLong
	}

	return nil
}
