package domain

import (
	"fmt"
	"strings"
	"time"
)

// Variant describes how one card type is stored and validated.
type Variant struct {
	Type CardType
	// Fields are the attributes persisted for this type, in storage order.
	Fields []Field
	// Required must be non-blank on creation.
	Required []Field
}

var variants = map[CardType]Variant{
	CardTypeBug: {
		Type:     CardTypeBug,
		Fields:   []Field{FieldTitle, FieldDescription},
		Required: []Field{FieldDescription},
	},
	CardTypeIssue: {
		Type:     CardTypeIssue,
		Fields:   []Field{FieldTitle, FieldDescription},
		Required: []Field{FieldTitle, FieldDescription},
	},
	CardTypeTask: {
		Type:     CardTypeTask,
		Fields:   []Field{FieldTitle, FieldCategory},
		Required: []Field{FieldTitle, FieldCategory},
	},
}

// VariantOf returns the variant registered for t.
func VariantOf(t CardType) (Variant, bool) {
	v, ok := variants[t]
	return v, ok
}

// MustVariant is VariantOf for callers that only hold known types.
func MustVariant(t CardType) Variant {
	v, ok := variants[t]
	if !ok {
		// ALLOW-PANIC: callers pass one of the CardType constants
		panic(fmt.Sprintf("domain: no variant for card type %q", t))
	}
	return v
}

// Validate checks in against the variant's required fields. It returns nil
// or a *ValidationError listing every missing or invalid field.
func (v Variant) Validate(in CardInput) error {
	verr := &ValidationError{CardType: v.Type}

	for _, f := range v.Required {
		if strings.TrimSpace(in.get(f)) == "" {
			verr.Missing = append(verr.Missing, f)
		}
	}

	if v.persists(FieldCategory) && in.Category != "" && !in.Category.Valid() {
		verr.Invalid = append(verr.Invalid, FieldCategory)
	}

	if len(verr.Missing) > 0 || len(verr.Invalid) > 0 {
		return verr
	}
	return nil
}

// Build returns a new unsaved card holding only the fields this variant
// persists. in is not modified.
func (v Variant) Build(in CardInput, now time.Time) Card {
	card := Card{Type: v.Type, CreatedAt: now.UTC()}
	for _, f := range v.Fields {
		card.Set(f, in.get(f))
	}
	return card
}

func (v Variant) persists(f Field) bool {
	for _, pf := range v.Fields {
		if pf == f {
			return true
		}
	}
	return false
}

// ValidationError reports the fields that made a card input invalid.
type ValidationError struct {
	CardType CardType
	Missing  []Field
	Invalid  []Field
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+joinFields(e.Missing))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid "+joinFields(e.Invalid))
	}
	return fmt.Sprintf("%v: %s card: %s", ErrValidation, e.CardType, strings.Join(parts, "; "))
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Fields returns missing and invalid fields together.
func (e *ValidationError) Fields() []Field {
	out := make([]Field, 0, len(e.Missing)+len(e.Invalid))
	out = append(out, e.Missing...)
	return append(out, e.Invalid...)
}

func joinFields(fields []Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
