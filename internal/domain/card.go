package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CardType is the discriminant identifying a card variant.
type CardType string

// Known card types.
const (
	CardTypeBug   CardType = "BUG"
	CardTypeIssue CardType = "ISSUE"
	CardTypeTask  CardType = "TASK"
)

// CardTypes lists every known card type in a stable order.
var CardTypes = []CardType{CardTypeBug, CardTypeIssue, CardTypeTask}

// ParseCardType converts a discriminant to a CardType. Matching is
// case-insensitive and ignores surrounding whitespace.
func ParseCardType(s string) (CardType, error) {
	t := CardType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCardType, s)
	}
	return t, nil
}

// Valid reports whether t is a known card type.
func (t CardType) Valid() bool {
	switch t {
	case CardTypeBug, CardTypeIssue, CardTypeTask:
		return true
	}
	return false
}

// CardCategory classifies Task cards.
type CardCategory string

// Known task categories.
const (
	CategoryMaintenance CardCategory = "MAINTENANCE"
	CategoryResearch    CardCategory = "RESEARCH"
	CategoryTest        CardCategory = "TEST"
)

// NormalizeCategory upper-cases and trims s. The result may still be
// invalid; validation reports that.
func NormalizeCategory(s string) CardCategory {
	return CardCategory(strings.ToUpper(strings.TrimSpace(s)))
}

// Valid reports whether c is a known category.
func (c CardCategory) Valid() bool {
	switch c {
	case CategoryMaintenance, CategoryResearch, CategoryTest:
		return true
	}
	return false
}

// Field names a user-facing card attribute.
type Field string

// Card fields that a variant may persist or require.
const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldCategory    Field = "category"
)

// Card is a stored card of any variant. Fields not used by the variant are
// left empty.
type Card struct {
	ID          int64        `json:"id"`
	Type        CardType     `json:"type"`
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Category    CardCategory `json:"category,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Get returns the value of field f.
func (c *Card) Get(f Field) string {
	switch f {
	case FieldTitle:
		return c.Title
	case FieldDescription:
		return c.Description
	case FieldCategory:
		return string(c.Category)
	}
	return ""
}

// Set assigns v to field f. Unknown fields are ignored.
func (c *Card) Set(f Field, v string) {
	switch f {
	case FieldTitle:
		c.Title = v
	case FieldDescription:
		c.Description = v
	case FieldCategory:
		c.Category = CardCategory(v)
	}
}

// CardInput is a creation request. An empty string means the field was not
// supplied. CardInput is passed by value and never modified downstream.
type CardInput struct {
	Type        CardType
	Title       string
	Description string
	Category    CardCategory
}

func (in CardInput) get(f Field) string {
	switch f {
	case FieldTitle:
		return in.Title
	case FieldDescription:
		return in.Description
	case FieldCategory:
		return string(in.Category)
	}
	return ""
}

// ParseCardID parses a path or query ID. IDs are positive integers.
func ParseCardID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return id, nil
}

// BugTitle formats a generated bug title: Bug-<token>-<n>.
func BugTitle(token string, n int) string {
	return fmt.Sprintf("Bug-%s-%d", token, n)
}
