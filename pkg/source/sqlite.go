package source

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/ha1tch/floorplan-toolkit/pkg/geom"
	"github.com/ha1tch/floorplan-toolkit/pkg/scene"
)

// Schema is the devices table SQLite reads from.
const Schema = `
CREATE TABLE IF NOT EXISTS devices (
    id       TEXT PRIMARY KEY,
    name     TEXT NOT NULL,
    x        REAL NOT NULL,
    y        REAL NOT NULL,
    battery  INTEGER NOT NULL DEFAULT 100,
    capacity INTEGER NOT NULL DEFAULT 0,
    status   TEXT NOT NULL DEFAULT 'online',
    category TEXT NOT NULL
)`

// SQLite reads devices from a devices table.
type SQLite struct {
	db *sql.DB
}

// NewSQLite wraps an open database.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

// OpenSQLite opens the database at path, creating it if needed.
func OpenSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?mode=rwc&_pragma=busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return &SQLite{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Init creates the devices table if it does not exist.
func (s *SQLite) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Devices returns every row of the devices table in id order.
func (s *SQLite) Devices(ctx context.Context) ([]scene.Device, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, name, x, y, battery, capacity, status, category
        FROM devices
        ORDER BY id
    `)
	if err != nil {
		return nil, fmt.Errorf("query devices: %w", err)
	}
	defer rows.Close()

	var devices []scene.Device
	for rows.Next() {
		var (
			d                scene.Device
			x, y             float64
			status, category string
		)
		if err := rows.Scan(&d.ID, &d.Name, &x, &y, &d.Battery, &d.Capacity, &status, &category); err != nil {
			return nil, err
		}
		if d.Status, err = scene.ParseStatus(status); err != nil {
			return nil, fmt.Errorf("device %s: %w", d.ID, err)
		}
		if d.Category, err = scene.ParseCategory(category); err != nil {
			return nil, fmt.Errorf("device %s: %w", d.ID, err)
		}
		d.Position = geom.Pt(x, y)
		devices = append(devices, d.Normalize())
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(devices) == 0 {
		return nil, ErrNoDevices
	}
	return devices, nil
}

// Import replaces the table contents with devices in one transaction.
func (s *SQLite) Import(ctx context.Context, devices []scene.Device) error {
	if err := s.Init(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM devices`); err != nil {
		return fmt.Errorf("clear devices: %w", err)
	}
	for _, d := range devices {
		_, err := tx.ExecContext(ctx, `
            INSERT INTO devices (id, name, x, y, battery, capacity, status, category)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        `, d.ID, d.Name, d.Position.X, d.Position.Y, d.Battery, d.Capacity, string(d.Status), string(d.Category))
		if err != nil {
			return fmt.Errorf("insert device %s: %w", d.ID, err)
		}
	}
	return tx.Commit()
}
