package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB is the global database connection
var DB *sql.DB

// Config holds database configuration
type Config struct {
	Path string
}

// Open initializes the database connection and runs migrations
func Open(cfg Config) error {
	if cfg.Path != ":memory:" {
		dir := filepath.Dir(cfg.Path)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	var err error
	DB, err = sql.Open("sqlite", cfg.Path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if err := DB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// migrate runs all database migrations
func migrate() error {
	_, err := DB.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if err := runMigration(m); err != nil {
			return fmt.Errorf("migration %s failed: %w", m.name, err)
		}
	}

	return nil
}

type migration struct {
	name string
	up   string
}

func runMigration(m migration) error {
	var count int
	err := DB.QueryRow("SELECT COUNT(*) FROM migrations WHERE name = ?", m.name).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil // Already applied
	}

	if _, err := DB.Exec(m.up); err != nil {
		return err
	}

	_, err = DB.Exec("INSERT INTO migrations (name) VALUES (?)", m.name)
	return err
}

var migrations = []migration{
	{
		name: "001_create_users",
		up: `
			CREATE TABLE users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				username TEXT NOT NULL UNIQUE,
				display_name TEXT NOT NULL,
				email TEXT,
				password_hash TEXT NOT NULL,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				last_login DATETIME
			);
			CREATE INDEX idx_users_username ON users(username);
		`,
	},
	{
		name: "002_create_settings",
		up: `
			CREATE TABLE settings (
				id INTEGER PRIMARY KEY CHECK (id = 1),
				lot_name TEXT NOT NULL DEFAULT 'EstacionaFacil',
				rate_small REAL NOT NULL DEFAULT 10.00,
				rate_medium REAL NOT NULL DEFAULT 20.00,
				rate_large REAL NOT NULL DEFAULT 30.00,
				rate_truck REAL NOT NULL DEFAULT 50.00,
				rate_bus REAL NOT NULL DEFAULT 60.00,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
			);
			INSERT INTO settings (id) VALUES (1);
		`,
	},
	{
		name: "003_create_subscribers",
		up: `
			CREATE TABLE subscribers (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				plate TEXT NOT NULL UNIQUE,
				phone TEXT,
				email TEXT,
				monthly_fee REAL NOT NULL,
				due_day INTEGER NOT NULL DEFAULT 10,
				active INTEGER NOT NULL DEFAULT 1,
				notes TEXT,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX idx_subscribers_plate ON subscribers(plate);
			CREATE INDEX idx_subscribers_active ON subscribers(active);
		`,
	},
	{
		name: "004_create_vehicles",
		up: `
			CREATE TABLE vehicles (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				plate TEXT NOT NULL,
				type TEXT NOT NULL,
				subscriber_id INTEGER,
				ticket_code TEXT NOT NULL UNIQUE,
				entered_at DATETIME NOT NULL,
				exited_at DATETIME,
				amount REAL,
				payment_method TEXT,
				paid INTEGER NOT NULL DEFAULT 0,
				notes TEXT,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (subscriber_id) REFERENCES subscribers(id) ON DELETE SET NULL
			);
			CREATE INDEX idx_vehicles_plate ON vehicles(plate);
			CREATE INDEX idx_vehicles_entered_at ON vehicles(entered_at);
			CREATE INDEX idx_vehicles_subscriber ON vehicles(subscriber_id);
			CREATE INDEX idx_vehicles_paid ON vehicles(paid);
		`,
	},
	{
		name: "005_create_expenses",
		up: `
			CREATE TABLE expenses (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				category TEXT NOT NULL,
				description TEXT NOT NULL,
				amount REAL NOT NULL,
				date TEXT NOT NULL,
				recurring INTEGER NOT NULL DEFAULT 0,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX idx_expenses_date ON expenses(date);
			CREATE INDEX idx_expenses_category ON expenses(category);
		`,
	},
	{
		name: "006_create_subscriber_payments",
		up: `
			CREATE TABLE subscriber_payments (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				subscriber_id INTEGER NOT NULL,
				reference_month TEXT NOT NULL,
				amount REAL NOT NULL,
				paid_at DATETIME,
				paid INTEGER NOT NULL DEFAULT 0,
				payment_method TEXT,
				notes TEXT,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				UNIQUE (subscriber_id, reference_month),
				FOREIGN KEY (subscriber_id) REFERENCES subscribers(id) ON DELETE CASCADE
			);
			CREATE INDEX idx_subscriber_payments_subscriber ON subscriber_payments(subscriber_id);
			CREATE INDEX idx_subscriber_payments_month ON subscriber_payments(reference_month);
		`,
	},
	{
		name: "007_create_audit_logs",
		up: `
			CREATE TABLE audit_logs (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
				user_id INTEGER,
				username TEXT,
				action TEXT NOT NULL,
				details TEXT,
				ip_address TEXT,
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE SET NULL
			);
			CREATE INDEX idx_audit_logs_timestamp ON audit_logs(timestamp);
			CREATE INDEX idx_audit_logs_action ON audit_logs(action);
		`,
	},
}
