// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

// SectionType is the closed set of page section layouts.
type SectionType string

// Section types
const (
	SectionTripleColumn SectionType = "triple-column"
	SectionTextImage    SectionType = "text-image"
	SectionDarkCTA      SectionType = "dark-cta"
	SectionStatNumbers  SectionType = "stat-numbers"
	SectionHero         SectionType = "hero"
	SectionAccordion    SectionType = "accordion"
)

// Valid reports whether t is a known section type.
func (t SectionType) Valid() bool {
	_, ok := sectionSchemas[t]
	return ok
}

// Collection names as they appear in request and response bodies.
const (
	CollectionItems   = "items"
	CollectionButtons = "buttons"
	CollectionCards   = "cards"
	CollectionStats   = "stats"
)

// Button link types
const (
	ButtonTypeInternal = "internal"
	ButtonTypeExternal = "external"
)

// Button styles
const (
	ButtonStylePrimary   = "primary"
	ButtonStyleSecondary = "secondary"
	ButtonStyleOutline   = "outline"
	ButtonStyleLink      = "link"
)

// SectionItem is a title/content pair, e.g. one accordion entry.
type SectionItem struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// SectionButton is a call-to-action button.
type SectionButton struct {
	Text  string `json:"text"`
	Link  string `json:"link"`
	Type  string `json:"type"`
	Style string `json:"style"`
}

// SectionCard is one card of a card grid.
type SectionCard struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Image   string `json:"image,omitempty"`
	Icon    string `json:"icon,omitempty"`
	Link    string `json:"link,omitempty"`
}

// SectionStat is one figure of a statistics strip.
type SectionStat struct {
	Number string `json:"number"`
	Title  string `json:"title"`
}

// SectionCollections holds the structured sub-fields of a section.
// A nil pointer means the collection is absent; a pointer to an empty
// slice means the collection is present and empty. Array order is display order.
type SectionCollections struct {
	Items   *[]SectionItem   `json:"items"`
	Buttons *[]SectionButton `json:"buttons"`
	Cards   *[]SectionCard   `json:"cards"`
	Stats   *[]SectionStat   `json:"stats"`
}

// SectionSchema lists the collections a section type accepts.
type SectionSchema struct {
	Type    SectionType
	allowed map[string]bool
}

// Allows reports whether the schema accepts the named collection.
// A schema without a type accepts every collection.
func (s SectionSchema) Allows(collection string) bool {
	if s.allowed == nil {
		return true
	}
	return s.allowed[collection]
}

var sectionSchemas = map[SectionType][]string{
	SectionTripleColumn: {CollectionCards, CollectionButtons},
	SectionTextImage:    {CollectionButtons, CollectionItems},
	SectionDarkCTA:      {CollectionButtons},
	SectionStatNumbers:  {CollectionStats, CollectionButtons},
	SectionHero:         {CollectionButtons},
	SectionAccordion:    {CollectionItems},
}

// SectionSchemaFor returns the schema for t. The empty type yields a
// permissive schema, used by homepage sections that carry no layout type.
func SectionSchemaFor(t SectionType) SectionSchema {
	names, ok := sectionSchemas[t]
	if !ok {
		return SectionSchema{Type: t}
	}
	allowed := make(map[string]bool, len(names))
	for _, n := range names {
		allowed[n] = true
	}
	return SectionSchema{Type: t, allowed: allowed}
}

// FieldError reports the first rule a value violated.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func fieldErr(field, format string, args ...any) error {
	return &FieldError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Normalize fills defaults for optional enumerated button fields and trims text.
func (c *SectionCollections) Normalize() {
	if c.Buttons != nil {
		for i := range *c.Buttons {
			b := &(*c.Buttons)[i]
			b.Text = strings.TrimSpace(b.Text)
			b.Link = strings.TrimSpace(b.Link)
			if b.Type == "" {
				b.Type = ButtonTypeInternal
			}
			if b.Style == "" {
				b.Style = ButtonStylePrimary
			}
		}
	}
}

// Validate checks the collections against the schema of t and the
// per-collection field rules. It returns a *FieldError for the first violation.
func (c SectionCollections) Validate(t SectionType) error {
	schema := SectionSchemaFor(t)
	present := map[string]bool{
		CollectionItems:   c.Items != nil,
		CollectionButtons: c.Buttons != nil,
		CollectionCards:   c.Cards != nil,
		CollectionStats:   c.Stats != nil,
	}
	for _, name := range []string{CollectionItems, CollectionButtons, CollectionCards, CollectionStats} {
		if present[name] && !schema.Allows(name) {
			return fieldErr(name, "not supported by section type %q", t)
		}
	}

	if c.Items != nil {
		for i, it := range *c.Items {
			if strings.TrimSpace(it.Title) == "" {
				return fieldErr(fmt.Sprintf("items[%d].title", i), "is required")
			}
		}
	}
	if c.Buttons != nil {
		for i, b := range *c.Buttons {
			prefix := fmt.Sprintf("buttons[%d]", i)
			if b.Text == "" {
				return fieldErr(prefix+".text", "is required")
			}
			if b.Link == "" {
				return fieldErr(prefix+".link", "is required")
			}
			switch b.Type {
			case ButtonTypeInternal, ButtonTypeExternal:
			default:
				return fieldErr(prefix+".type", "must be one of internal, external")
			}
			switch b.Style {
			case ButtonStylePrimary, ButtonStyleSecondary, ButtonStyleOutline, ButtonStyleLink:
			default:
				return fieldErr(prefix+".style", "must be one of primary, secondary, outline, link")
			}
		}
	}
	if c.Cards != nil {
		for i, card := range *c.Cards {
			if strings.TrimSpace(card.Title) == "" {
				return fieldErr(fmt.Sprintf("cards[%d].title", i), "is required")
			}
		}
	}
	if c.Stats != nil {
		for i, s := range *c.Stats {
			if strings.TrimSpace(s.Number) == "" {
				return fieldErr(fmt.Sprintf("stats[%d].number", i), "is required")
			}
			if strings.TrimSpace(s.Title) == "" {
				return fieldErr(fmt.Sprintf("stats[%d].title", i), "is required")
			}
		}
	}
	return nil
}

// EncodeCollection serializes a collection for a JSON text column.
// Absent collections become SQL NULL, empty ones "[]".
func EncodeCollection[T any](c *[]T) (sql.NullString, error) {
	if c == nil {
		return sql.NullString{}, nil
	}
	v := *c
	if v == nil {
		v = []T{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encoding collection: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

// DecodeCollection is the inverse of EncodeCollection. A stored JSON null
// is read as an absent collection.
func DecodeCollection[T any](s sql.NullString) (*[]T, error) {
	if !s.Valid || s.String == "" || s.String == "null" {
		return nil, nil
	}
	out := []T{}
	if err := json.Unmarshal([]byte(s.String), &out); err != nil {
		return nil, fmt.Errorf("decoding collection: %w", err)
	}
	if out == nil {
		out = []T{}
	}
	return &out, nil
}
