package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ImportDevice writes a device and its codes in one transaction.
//
// If a device with the same (manufacturer, model) already exists, its row
// is reused and new codes attach to it. Codes insert with ON CONFLICT DO
// NOTHING, so re-importing the same file is idempotent: the returned count
// is the number of codes actually added.
//
// IDs are UUIDv7, so rows sort in insertion order without a separate
// timestamp column.
func (s *Store) ImportDevice(ctx context.Context, dev Device, codes []Code) (deviceID string, added int, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", 0, fmt.Errorf("import device: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	deviceID, err = upsertDevice(ctx, tx, dev)
	if err != nil {
		return "", 0, fmt.Errorf("import device: %w", err)
	}

	for _, code := range codes {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO codes (id, device_id, name, protocol, code, signal_hash)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(device_id, name) DO NOTHING
		`,
			uuid.Must(uuid.NewV7()).String(),
			deviceID,
			code.Name,
			code.Protocol,
			code.Code,
			code.SignalHash,
		)
		if err != nil {
			return "", 0, fmt.Errorf("import code %q: %w", code.Name, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return "", 0, fmt.Errorf("import code %q: %w", code.Name, err)
		}
		added += int(n)
	}

	if err := tx.Commit(); err != nil {
		return "", 0, fmt.Errorf("import device: %w", err)
	}
	return deviceID, added, nil
}

// upsertDevice returns the ID of the existing (manufacturer, model) row or
// inserts a new one.
func upsertDevice(ctx context.Context, tx *sql.Tx, dev Device) (string, error) {
	var id string
	err := tx.QueryRowContext(ctx, `
		SELECT id FROM devices WHERE manufacturer = ? AND model = ?
	`, dev.Manufacturer, dev.Model).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("lookup device: %w", err)
	}

	id = uuid.Must(uuid.NewV7()).String()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO devices (id, manufacturer, model, protocol)
		VALUES (?, ?, ?, ?)
	`, id, dev.Manufacturer, dev.Model, dev.Protocol)
	if err != nil {
		return "", fmt.Errorf("insert device: %w", err)
	}
	return id, nil
}
