package repositories

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/desertthunder/medley/internal/models"
	"github.com/desertthunder/medley/internal/shared"
)

// csvHeader is the column order written by [CSVStore.Save].
var csvHeader = []string{"id", "username", "password", "email", "music_collection", "playlists", "favorites"}

// requiredColumns must be present in any file [CSVStore.Load] accepts.
var requiredColumns = []string{"username", "password", "email"}

// CSVStore implements [AccountStore] on a single users.csv file.
//
// Files written by older versions without an id column are accepted; their rows get fresh IDs on load.
type CSVStore struct {
	path string
}

// NewCSVStore creates a new [CSVStore] backed by the file at path
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Path returns the backing file path.
func (s *CSVStore) Path() string {
	return s.path
}

// Load reads every record from the file. A missing file is an empty store.
func (s *CSVStore) Load() ([]models.Account, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []models.Account{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open accounts file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []models.Account{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", shared.ErrInvalidInput, name)
		}
	}

	field := func(record []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	accounts := []models.Account{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		a := models.Account{
			ID:         field(record, "id"),
			Username:   field(record, "username"),
			Password:   field(record, "password"),
			Email:      field(record, "email"),
			Collection: orEmpty(field(record, "music_collection")),
			Playlists:  orEmpty(field(record, "playlists")),
			Favorites:  orEmpty(field(record, "favorites")),
		}
		if a.ID == "" {
			a.ID = shared.GenerateID()
		}
		accounts = append(accounts, a)
	}

	return accounts, nil
}

// Save writes the records to a temporary file next to the target and renames it into place.
func (s *CSVStore) Save(accounts []models.Account) error {
	if err := validateAll(accounts); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".accounts-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := writeAccountsCSV(tmp, accounts); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace accounts file: %w", err)
	}

	return nil
}

func writeAccountsCSV(w io.Writer, accounts []models.Account) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, a := range accounts {
		record := []string{
			a.ID,
			a.Username,
			a.Password,
			a.Email,
			orEmpty(a.Collection),
			orEmpty(a.Playlists),
			orEmpty(a.Favorites),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("CSV writer error: %w", err)
	}

	return nil
}
