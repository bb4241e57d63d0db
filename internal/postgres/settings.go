package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lamsashop/lamsa/internal/domain"
)

// SettingsStore implements domain.SettingsStore on PostgreSQL. The whole
// settings document lives in a single JSONB row; defaults are merged on
// read so older documents keep working as sections are added.
type SettingsStore struct {
	db *pgxpool.Pool
}

var _ domain.SettingsStore = (*SettingsStore)(nil)

// NewSettingsStore creates a PostgreSQL-backed settings store.
func NewSettingsStore(db *pgxpool.Pool) *SettingsStore {
	return &SettingsStore{db: db}
}

// Get returns the stored settings merged with defaults. A store with no
// settings row yet returns pure defaults.
func (s *SettingsStore) Get(ctx context.Context) (*domain.StoreSettings, error) {
	var (
		doc         []byte
		sectionsSet bool
	)
	err := s.db.QueryRow(ctx,
		`SELECT doc, doc ? 'sections' FROM store_settings WHERE id = 1`,
	).Scan(&doc, &sectionsSet)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			settings := domain.DefaultSettings()
			return &settings, nil
		}
		return nil, domain.Internal(err, "settings.get", "failed to get settings")
	}

	var settings domain.StoreSettings
	if err := json.Unmarshal(doc, &settings); err != nil {
		return nil, domain.Internal(err, "settings.get", "failed to decode settings")
	}
	merged := settings.MergeDefaults(sectionsSet)
	return &merged, nil
}

// Update replaces the stored settings document.
func (s *SettingsStore) Update(ctx context.Context, settings *domain.StoreSettings) error {
	doc, err := json.Marshal(settings)
	if err != nil {
		return domain.Internal(err, "settings.update", "failed to encode settings")
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO store_settings (id, doc, updated_at)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = EXCLUDED.updated_at`,
		doc, time.Now().UTC(),
	)
	if err != nil {
		return domain.Internal(err, "settings.update", "failed to update settings")
	}
	return nil
}
