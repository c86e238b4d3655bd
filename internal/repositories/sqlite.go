package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/medley/internal/models"
)

// SQLiteStore implements [AccountStore] on the migrated accounts table.
//
// Save deletes and re-inserts every row inside a single transaction; position preserves slice order.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new [SQLiteStore] with the given database connection
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Load retrieves all accounts ordered by position
func (s *SQLiteStore) Load() ([]models.Account, error) {
	query := `
		SELECT id, username, password, email, music_collection, playlists, favorites
		FROM accounts
		ORDER BY position ASC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		account, err := s.scanRow(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return accounts, nil
}

// Save replaces the stored accounts with the given set
func (s *SQLiteStore) Save(accounts []models.Account) error {
	if err := validateAll(accounts); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM accounts"); err != nil {
		return fmt.Errorf("failed to clear accounts: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO accounts (id, position, username, password, email, music_collection, playlists, favorites, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for i, a := range accounts {
		_, err := stmt.Exec(a.ID, i, a.Username, a.Password, a.Email, orEmpty(a.Collection), orEmpty(a.Playlists), orEmpty(a.Favorites), now)
		if err != nil {
			return fmt.Errorf("failed to insert account %s: %w", a.Username, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit accounts: %w", err)
	}

	return nil
}

// scanRow scans a row from [sql.Rows] into a [models.Account]
func (s *SQLiteStore) scanRow(rows *sql.Rows) (models.Account, error) {
	var a models.Account

	err := rows.Scan(&a.ID, &a.Username, &a.Password, &a.Email, &a.Collection, &a.Playlists, &a.Favorites)
	if err != nil {
		return models.Account{}, fmt.Errorf("failed to scan account: %w", err)
	}

	return a, nil
}

// orEmpty substitutes [models.EmptyCollection] for a blank serialized field.
func orEmpty(field string) string {
	if field == "" {
		return models.EmptyCollection
	}
	return field
}
