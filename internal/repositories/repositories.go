// package repositories provides the account store implementations.
//
// Every driver implements [AccountStore] with load-all/save-all semantics: callers load the whole record set,
// modify it in memory and hand the whole set back to Save, which replaces what was stored.
package repositories

import "github.com/desertthunder/medley/internal/models"

// AccountStore persists the complete set of [models.Account] records.
//
// There is no locking or versioning: one session owns the store at a time, and the last Save wins.
type AccountStore interface {
	Load() ([]models.Account, error)       // Load returns every stored record, or an empty slice when nothing is stored yet
	Save(accounts []models.Account) error // Save atomically replaces the stored set with accounts
}

// IndexOf returns the position of the record with the given username, or -1.
func IndexOf(accounts []models.Account, username string) int {
	for i, a := range accounts {
		if a.Username == username {
			return i
		}
	}
	return -1
}

// FindByUsername returns the record with the given username.
func FindByUsername(accounts []models.Account, username string) (models.Account, bool) {
	if i := IndexOf(accounts, username); i >= 0 {
		return accounts[i], true
	}
	return models.Account{}, false
}

// FindByEmail returns the first record using the given email.
func FindByEmail(accounts []models.Account, email string) (models.Account, bool) {
	for _, a := range accounts {
		if a.Email == email {
			return a, true
		}
	}
	return models.Account{}, false
}

// validateAll runs [models.Account.Validate] on every record and rejects duplicate usernames.
func validateAll(accounts []models.Account) error {
	seen := make(map[string]struct{}, len(accounts))
	for _, a := range accounts {
		if err := a.Validate(); err != nil {
			return err
		}
		if _, dup := seen[a.Username]; dup {
			return &DuplicateUsernameError{Username: a.Username}
		}
		seen[a.Username] = struct{}{}
	}
	return nil
}

// DuplicateUsernameError is returned by Save when two records share a username.
type DuplicateUsernameError struct {
	Username string
}

func (e *DuplicateUsernameError) Error() string {
	return "duplicate username in record set: " + e.Username
}
