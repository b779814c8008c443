package repository

import (
	"context"
	"database/sql"
	"time"

	"thermostat_controller"
	"thermostat_controller/internal/repository/db"
)

// Settings is the durable key/value store the core persists through. Getters
// take a default returned when the key is absent; GetBytes returns (nil, nil)
// on absence so callers can distinguish "never written" from empty.
type Settings interface {
	GetFloat(ctx context.Context, key string, def float64) (float64, error)
	PutFloat(ctx context.Context, key string, v float64) error
	GetInt(ctx context.Context, key string, def int) (int, error)
	PutInt(ctx context.Context, key string, v int) error
	GetBool(ctx context.Context, key string, def bool) (bool, error)
	PutBool(ctx context.Context, key string, v bool) error
	GetString(ctx context.Context, key string, def string) (string, error)
	PutString(ctx context.Context, key string, v string) error
	GetBytes(ctx context.Context, key string) ([]byte, error)
	PutBytes(ctx context.Context, key string, v []byte) error
}

// EventRepo is the append-only device log with filtered listing.
type EventRepo interface {
	Append(ctx context.Context, e thermostat_controller.DeviceEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]thermostat_controller.DeviceEvent, error)
}

type Repository struct {
	Settings Settings
	Events   EventRepo
}

func NewRepository(conn *sql.DB) *Repository {
	return &Repository{
		Settings: NewSettingsSQLite(conn),
		Events:   NewEventSQLite(conn),
	}
}

// InitDB opens the backing SQLite file and ensures the schema exists.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
