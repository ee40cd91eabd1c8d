// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"

	"github.com/olegiv/dualsite/internal/model"
	"github.com/olegiv/dualsite/internal/store"
)

// CollectionsInput carries section collections on writes. Each key is
// tri-state: absent keeps the stored value, null clears it, an array
// (possibly empty) replaces it.
type CollectionsInput struct {
	Items   Nullable[[]model.SectionItem]   `json:"items"`
	Buttons Nullable[[]model.SectionButton] `json:"buttons"`
	Cards   Nullable[[]model.SectionCard]   `json:"cards"`
	Stats   Nullable[[]model.SectionStat]   `json:"stats"`
}

func (in CollectionsInput) applyTo(c *model.SectionCollections) {
	if in.Items.Set {
		c.Items = collection(in.Items)
	}
	if in.Buttons.Set {
		c.Buttons = collection(in.Buttons)
	}
	if in.Cards.Set {
		c.Cards = collection(in.Cards)
	}
	if in.Stats.Set {
		c.Stats = collection(in.Stats)
	}
}

// PageSection is a page section with decoded collections.
type PageSection struct {
	store.PageSection
	model.SectionCollections
}

// HomepageSection is a homepage section with decoded collections.
type HomepageSection struct {
	store.HomepageSection
	model.SectionCollections
}

func encodeCollections(c model.SectionCollections) (store.CollectionsJSON, error) {
	var (
		out store.CollectionsJSON
		err error
	)
	if out.Items, err = model.EncodeCollection(c.Items); err != nil {
		return out, err
	}
	if out.Buttons, err = model.EncodeCollection(c.Buttons); err != nil {
		return out, err
	}
	if out.Cards, err = model.EncodeCollection(c.Cards); err != nil {
		return out, err
	}
	if out.Stats, err = model.EncodeCollection(c.Stats); err != nil {
		return out, err
	}
	return out, nil
}

func decodeCollections(j store.CollectionsJSON) (model.SectionCollections, error) {
	var (
		out model.SectionCollections
		err error
	)
	if out.Items, err = model.DecodeCollection[model.SectionItem](j.Items); err != nil {
		return out, err
	}
	if out.Buttons, err = model.DecodeCollection[model.SectionButton](j.Buttons); err != nil {
		return out, err
	}
	if out.Cards, err = model.DecodeCollection[model.SectionCard](j.Cards); err != nil {
		return out, err
	}
	if out.Stats, err = model.DecodeCollection[model.SectionStat](j.Stats); err != nil {
		return out, err
	}
	return out, nil
}

// prepareCollections normalizes and validates c for section type t and
// encodes it for storage.
func prepareCollections(c *model.SectionCollections, t model.SectionType) (store.CollectionsJSON, error) {
	c.Normalize()
	if err := c.Validate(t); err != nil {
		return store.CollectionsJSON{}, fromFieldError(err)
	}
	return encodeCollections(*c)
}

func toPageSection(s store.PageSection) (PageSection, error) {
	c, err := decodeCollections(store.CollectionsJSON{
		Items: s.ItemsJSON, Buttons: s.ButtonsJSON, Cards: s.CardsJSON, Stats: s.StatsJSON,
	})
	if err != nil {
		return PageSection{}, fmt.Errorf("section %d: %w", s.ID, err)
	}
	return PageSection{PageSection: s, SectionCollections: c}, nil
}

func toPageSections(rows []store.PageSection) ([]PageSection, error) {
	out := make([]PageSection, 0, len(rows))
	for _, r := range rows {
		s, err := toPageSection(r)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func toHomepageSection(s store.HomepageSection) (HomepageSection, error) {
	c, err := decodeCollections(store.CollectionsJSON{
		Items: s.ItemsJSON, Buttons: s.ButtonsJSON, Cards: s.CardsJSON, Stats: s.StatsJSON,
	})
	if err != nil {
		return HomepageSection{}, fmt.Errorf("homepage section %d: %w", s.ID, err)
	}
	return HomepageSection{HomepageSection: s, SectionCollections: c}, nil
}

func toHomepageSections(rows []store.HomepageSection) ([]HomepageSection, error) {
	out := make([]HomepageSection, 0, len(rows))
	for _, r := range rows {
		s, err := toHomepageSection(r)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// reorderScope lists the sibling IDs of a scope and rewrites one sort order.
type reorderScope struct {
	list func(ctx context.Context, q *store.Queries) ([]int64, error)
	set  func(ctx context.Context, q *store.Queries, id, sortOrder int64) (int64, error)
}

// reorder assigns sort_order = index to ids inside one transaction. The
// list must name every sibling of the scope exactly once.
func reorder(ctx context.Context, b *base, ids []int64, scope reorderScope) error {
	if len(ids) == 0 {
		return invalid("ids", "must not be empty")
	}
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return invalid("ids", "contains duplicate id %d", id)
		}
		seen[id] = true
	}

	return store.InTx(ctx, b.db, func(q *store.Queries) error {
		current, err := scope.list(ctx, q)
		if err != nil {
			return fmt.Errorf("listing siblings: %w", err)
		}
		siblings := make(map[int64]bool, len(current))
		for _, id := range current {
			siblings[id] = true
		}
		for _, id := range ids {
			if !siblings[id] {
				return invalid("ids", "id %d does not belong to this list", id)
			}
		}
		if len(ids) != len(current) {
			return invalid("ids", "must include all %d items", len(current))
		}
		for i, id := range ids {
			n, err := scope.set(ctx, q, id, int64(i))
			if err != nil {
				return fmt.Errorf("updating sort order: %w", err)
			}
			if n == 0 {
				return ErrNotFound
			}
		}
		return nil
	})
}
