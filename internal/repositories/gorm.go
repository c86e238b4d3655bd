package repositories

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/desertthunder/medley/internal/models"
)

// accountRow is the gorm model for the accounts table.
type accountRow struct {
	ID              string `gorm:"primaryKey"`
	Position        int    `gorm:"not null;index"`
	Username        string `gorm:"not null;uniqueIndex"`
	Password        string `gorm:"not null"`
	Email           string `gorm:"not null;index"`
	MusicCollection string `gorm:"type:text;not null;default:'[]'"`
	Playlists       string `gorm:"type:text;not null;default:'[]'"`
	Favorites       string `gorm:"type:text;not null;default:'[]'"`
	SavedAt         time.Time
}

func (accountRow) TableName() string { return "accounts" }

func toAccountRow(position int, a models.Account, savedAt time.Time) accountRow {
	return accountRow{
		ID:              a.ID,
		Position:        position,
		Username:        a.Username,
		Password:        a.Password,
		Email:           a.Email,
		MusicCollection: orEmpty(a.Collection),
		Playlists:       orEmpty(a.Playlists),
		Favorites:       orEmpty(a.Favorites),
		SavedAt:         savedAt,
	}
}

func (r accountRow) toAccount() models.Account {
	return models.Account{
		ID:         r.ID,
		Username:   r.Username,
		Password:   r.Password,
		Email:      r.Email,
		Collection: r.MusicCollection,
		Playlists:  r.Playlists,
		Favorites:  r.Favorites,
	}
}

// GormStore implements [AccountStore] on a gorm connection (PostgreSQL in production).
type GormStore struct {
	db *gorm.DB
}

// OpenPostgresStore connects to PostgreSQL using dsn and migrates the accounts table.
func OpenPostgresStore(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return NewGormStore(db)
}

// NewGormStore wraps an open gorm connection and migrates the accounts table.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&accountRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate accounts table: %w", err)
	}
	return &GormStore{db: db}, nil
}

// Load retrieves all accounts ordered by position
func (s *GormStore) Load() ([]models.Account, error) {
	var rows []accountRow
	if err := s.db.Order("position asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}

	accounts := make([]models.Account, len(rows))
	for i, r := range rows {
		accounts[i] = r.toAccount()
	}
	return accounts, nil
}

// Save replaces the stored accounts inside one transaction
func (s *GormStore) Save(accounts []models.Account) error {
	if err := validateAll(accounts); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	rows := make([]accountRow, len(accounts))
	for i, a := range accounts {
		rows[i] = toAccountRow(i, a, now)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&accountRow{}).Error; err != nil {
			return fmt.Errorf("failed to clear accounts: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, 100).Error; err != nil {
			return fmt.Errorf("failed to insert accounts: %w", err)
		}
		return nil
	})
}

// Close releases the underlying connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.Close()
}
