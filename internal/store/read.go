package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound indicates no matching library row.
var ErrNotFound = errors.New("not found")

// ListDevices returns every device, ordered by insertion (UUIDv7 IDs are
// time-ordered).
func (s *Store) ListDevices(ctx context.Context) ([]Device, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, manufacturer, model, protocol FROM devices ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	defer rows.Close()

	var devices []Device
	for rows.Next() {
		var d Device
		if err := rows.Scan(&d.ID, &d.Manufacturer, &d.Model, &d.Protocol); err != nil {
			return nil, fmt.Errorf("list devices: %w", err)
		}
		devices = append(devices, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	return devices, nil
}

// FindDevice returns the device for a (manufacturer, model) pair.
func (s *Store) FindDevice(ctx context.Context, manufacturer, model string) (*Device, error) {
	var d Device
	err := s.db.QueryRowContext(ctx, `
		SELECT id, manufacturer, model, protocol
		FROM devices WHERE manufacturer = ? AND model = ?
	`, manufacturer, model).Scan(&d.ID, &d.Manufacturer, &d.Model, &d.Protocol)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("device %s/%s: %w", manufacturer, model, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find device: %w", err)
	}
	return &d, nil
}

// ListCodes returns a device's codes ordered by name.
func (s *Store) ListCodes(ctx context.Context, deviceID string) ([]Code, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, device_id, name, protocol, code, signal_hash
		FROM codes WHERE device_id = ? ORDER BY name
	`, deviceID)
	if err != nil {
		return nil, fmt.Errorf("list codes: %w", err)
	}
	defer rows.Close()

	return scanCodes(rows)
}

// GetCode returns one named code for a device.
func (s *Store) GetCode(ctx context.Context, deviceID, name string) (*Code, error) {
	var c Code
	err := s.db.QueryRowContext(ctx, `
		SELECT id, device_id, name, protocol, code, signal_hash
		FROM codes WHERE device_id = ? AND name = ?
	`, deviceID, name).Scan(&c.ID, &c.DeviceID, &c.Name, &c.Protocol, &c.Code, &c.SignalHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("code %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get code: %w", err)
	}
	return &c, nil
}

// FindBySignal returns every code whose decoded signal matches the given
// content hash, across all devices and formats. This is the cross-format
// duplicate lookup: a Tuya code and a Broadlink code for the same signal
// share a hash.
func (s *Store) FindBySignal(ctx context.Context, signalHash string) ([]Code, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, device_id, name, protocol, code, signal_hash
		FROM codes WHERE signal_hash = ? ORDER BY id
	`, signalHash)
	if err != nil {
		return nil, fmt.Errorf("find by signal: %w", err)
	}
	defer rows.Close()

	return scanCodes(rows)
}

func scanCodes(rows *sql.Rows) ([]Code, error) {
	var codes []Code
	for rows.Next() {
		var c Code
		if err := rows.Scan(&c.ID, &c.DeviceID, &c.Name, &c.Protocol, &c.Code, &c.SignalHash); err != nil {
			return nil, fmt.Errorf("scan code: %w", err)
		}
		codes = append(codes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan codes: %w", err)
	}
	return codes, nil
}
