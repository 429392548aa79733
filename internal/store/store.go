// Package store defines the local record store: a durable key/value mapping
// from table key to an ordered sequence of records. It is the single read
// path for all queries; cross-device durability belongs to the sync engine.
package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Table keys for record sequences.
const (
	TableUsers     = "users"
	TableInventory = "inventory"
	TableSales     = "sales"
	TablePurchases = "purchases"
	TableExpenses  = "expenses"

	// TableBanner is the remote key for banner pushes. Locally the two
	// banners live under distinct scalar keys.
	TableBanner = "banner"
)

// Scalar value keys.
const (
	KeyBannerHorizontal = "banner_h"
	KeyBannerVertical   = "banner_v"
)

// TableKeys lists every record table, in the order they are provisioned.
func TableKeys() []string {
	return []string{TableUsers, TableInventory, TableSales, TablePurchases, TableExpenses}
}

// ValueKeys lists every scalar entry.
func ValueKeys() []string {
	return []string{KeyBannerHorizontal, KeyBannerVertical}
}

// Store is the local cache contract. A missing table or value is never an
// error; implementations synthesize the default (empty sequence, empty
// string) instead.
type Store interface {
	// GetTable returns the full record sequence stored under key.
	GetTable(ctx context.Context, key string) ([]json.RawMessage, error)
	// PutTable replaces the table wholesale.
	PutTable(ctx context.Context, key string, records []json.RawMessage) error
	// GetValue returns the scalar stored under key.
	GetValue(ctx context.Context, key string) (string, error)
	// PutValue replaces the scalar stored under key.
	PutValue(ctx context.Context, key string, value string) error
}

// LoadTable reads a table and decodes each record into T. Rows that fail to
// decode are skipped rather than failing the read; the ownership filter
// already treats malformed rows as invisible.
func LoadTable[T any](ctx context.Context, s Store, key string) ([]T, error) {
	raw, err := s.GetTable(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load table %s: %w", key, err)
	}

	out := make([]T, 0, len(raw))
	for _, r := range raw {
		var rec T
		if err := json.Unmarshal(r, &rec); err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// SaveTable encodes the records and replaces the table wholesale.
func SaveTable[T any](ctx context.Context, s Store, key string, records []T) error {
	raw := make([]json.RawMessage, 0, len(records))
	for i, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode %s[%d]: %w", key, i, err)
		}
		raw = append(raw, b)
	}

	if err := s.PutTable(ctx, key, raw); err != nil {
		return fmt.Errorf("save table %s: %w", key, err)
	}
	return nil
}
