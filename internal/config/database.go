package config

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// SetupDatabase initializes the database connection
func SetupDatabase(cfg *Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	// Create tables if they don't exist
	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

// createTables creates the necessary tables in the database
func createTables(db *sqlx.DB) error {
	// Create users table
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(36) PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			name VARCHAR(255) NOT NULL,
			password VARCHAR(255) NOT NULL,
			photo_url TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create events table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS events (
			id VARCHAR(36) PRIMARY KEY,
			owner_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title VARCHAR(255) NOT NULL,
			date VARCHAR(10) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			color VARCHAR(10) NOT NULL DEFAULT 'blue',
			is_completed BOOLEAN NOT NULL DEFAULT FALSE,
			shared_with TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create todos table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS todos (
			id VARCHAR(36) PRIMARY KEY,
			owner_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			text TEXT NOT NULL,
			is_completed BOOLEAN NOT NULL DEFAULT FALSE,
			date VARCHAR(10) NOT NULL,
			synced_event_id VARCHAR(36) REFERENCES events(id) ON DELETE SET NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create transactions table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS transactions (
			id VARCHAR(36) PRIMARY KEY,
			owner_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			type VARCHAR(10) NOT NULL,
			amount NUMERIC(14,2) NOT NULL CHECK (amount >= 0),
			description TEXT NOT NULL,
			date VARCHAR(10) NOT NULL,
			category VARCHAR(100) NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create secret_items table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS secret_items (
			id VARCHAR(36) PRIMARY KEY,
			owner_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			type VARCHAR(10) NOT NULL,
			name VARCHAR(255) NOT NULL,
			parent_id VARCHAR(36) REFERENCES secret_items(id),
			content TEXT NOT NULL DEFAULT '',
			shared_with TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create friend_requests table (single edge record per relationship)
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS friend_requests (
			id VARCHAR(36) PRIMARY KEY,
			requester VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			receiver VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			status VARCHAR(10) NOT NULL,
			created_at TIMESTAMP NOT NULL,
			responded_at TIMESTAMP,
			UNIQUE (requester, receiver)
		)
	`)
	if err != nil {
		return err
	}

	// Create indexes for better performance
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_events_owner ON events(owner_id)",
		"CREATE INDEX IF NOT EXISTS idx_todos_owner ON todos(owner_id)",
		"CREATE INDEX IF NOT EXISTS idx_todos_synced_event ON todos(synced_event_id)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_owner ON transactions(owner_id)",
		"CREATE INDEX IF NOT EXISTS idx_secret_items_owner ON secret_items(owner_id)",
		"CREATE INDEX IF NOT EXISTS idx_secret_items_parent ON secret_items(parent_id)",
		"CREATE INDEX IF NOT EXISTS idx_friend_requests_receiver ON friend_requests(receiver)",
	}

	for _, idx := range indexes {
		_, err = db.Exec(idx)
		if err != nil {
			log.Printf("Warning: Failed to create index: %v", err)
			// Don't return error here, indexes are not critical
		}
	}

	return nil
}
