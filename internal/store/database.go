package store

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Database represents the PostgreSQL connection holding extracted records
type Database struct {
	conn *sql.DB
	dsn  string
}

// NewDatabase creates a new database connection
func NewDatabase(dsn string) (*Database, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(10 * time.Minute)

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{
		conn: db,
		dsn:  dsn,
	}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// DB returns the underlying *sql.DB for queries
func (db *Database) DB() *sql.DB {
	return db.conn
}

// migration pairs a tracked version name with its DDL.
type migration struct {
	version string
	sql     string
}

var migrations = []migration{
	{"001_create_matches", `
		CREATE TABLE IF NOT EXISTS matches (
			match_id VARCHAR(64) PRIMARY KEY,
			match_date VARCHAR(64),
			match_type VARCHAR(128),
			is_playoff BOOLEAN NOT NULL DEFAULT FALSE,
			series TEXT,
			ground TEXT,
			toss_winner TEXT,
			toss_decision VARCHAR(16),
			player_of_match TEXT,
			match_result VARCHAR(16),
			result_margin VARCHAR(64),
			opponent_team TEXT,
			ingested_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`},
	{"002_create_batting_records", `
		CREATE TABLE IF NOT EXISTS batting_records (
			id BIGSERIAL PRIMARY KEY,
			match_id VARCHAR(64) NOT NULL REFERENCES matches(match_id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			runs DOUBLE PRECISION,
			balls DOUBLE PRECISION,
			fours DOUBLE PRECISION,
			sixes DOUBLE PRECISION,
			strike_rate DOUBLE PRECISION,
			dismissal VARCHAR(64),
			batting_position INT,
			dot_balls INT,
			tracked_balls INT,
			dot_pct DOUBLE PRECISION,
			UNIQUE (match_id, name, batting_position)
		)
	`},
	{"003_create_bowling_records", `
		CREATE TABLE IF NOT EXISTS bowling_records (
			id BIGSERIAL PRIMARY KEY,
			match_id VARCHAR(64) NOT NULL REFERENCES matches(match_id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			overs DOUBLE PRECISION,
			maidens DOUBLE PRECISION,
			dots DOUBLE PRECISION,
			runs DOUBLE PRECISION,
			wickets DOUBLE PRECISION,
			economy DOUBLE PRECISION,
			wides INT NOT NULL DEFAULT 0,
			no_balls INT NOT NULL DEFAULT 0,
			UNIQUE (match_id, name)
		)
	`},
	{"004_create_record_indexes", `
		CREATE INDEX IF NOT EXISTS idx_batting_records_name ON batting_records(name);
		CREATE INDEX IF NOT EXISTS idx_bowling_records_name ON bowling_records(name);
		CREATE INDEX IF NOT EXISTS idx_matches_date ON matches(match_date)
	`},
}

// RunMigrations executes all migrations in order
func (db *Database) RunMigrations() error {
	log.Println("Running database migrations...")

	if err := db.createMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, m := range migrations {
		if err := db.runMigration(m); err != nil {
			return fmt.Errorf("failed to run migration %s: %w", m.version, err)
		}
	}

	log.Println("✓ All migrations completed successfully")

	return nil
}

// createMigrationsTable creates a table to track which migrations have been run
func (db *Database) createMigrationsTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	_, err := db.conn.Exec(query)
	return err
}

// runMigration applies a single migration if it hasn't been applied yet
func (db *Database) runMigration(m migration) error {
	var exists bool
	err := db.conn.QueryRow("SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)", m.version).Scan(&exists)
	if err != nil {
		return err
	}

	if exists {
		log.Printf("  ⊘ Skipping %s (already applied)", m.version)
		return nil
	}

	if _, err := db.conn.Exec(m.sql); err != nil {
		return err
	}
	if _, err := db.conn.Exec("INSERT INTO schema_migrations (version) VALUES ($1)", m.version); err != nil {
		return err
	}

	log.Printf("  ✓ Applied %s", m.version)
	return nil
}
