package library

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/medley/internal/models"
	"github.com/desertthunder/medley/internal/repositories"
	"github.com/desertthunder/medley/internal/shared"
)

const (
	passwordLength   = 8
	passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// ValidEmail reports whether email has the local@domain.tld shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// NeedsCorrection reports whether err asks the caller for new input and a retry.
func NeedsCorrection(err error) bool {
	return errors.Is(err, shared.ErrInvalidEmail) ||
		errors.Is(err, shared.ErrEmailTaken) ||
		errors.Is(err, shared.ErrInvalidCredentials)
}

// Accounts manages account records in an [repositories.AccountStore].
//
// Every operation loads the full record set, modifies it and saves it back.
type Accounts struct {
	store  repositories.AccountStore
	logger *log.Logger
}

// NewAccounts creates an [Accounts] service over store.
func NewAccounts(store repositories.AccountStore, logger *log.Logger) *Accounts {
	return &Accounts{store: store, logger: logger}
}

func (a *Accounts) load() ([]models.Account, error) {
	accounts, err := a.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	return accounts, nil
}

func (a *Accounts) save(accounts []models.Account) error {
	if err := a.store.Save(accounts); err != nil {
		return fmt.Errorf("failed to save accounts: %w", err)
	}
	return nil
}

// CreateAccount registers a new account with empty collections and returns it as a logged-in [User].
//
// The username is checked first. [shared.ErrInvalidEmail] and [shared.ErrEmailTaken] are correction results.
func (a *Accounts) CreateAccount(username, password, email string) (*User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", shared.ErrInvalidInput)
	}

	accounts, err := a.load()
	if err != nil {
		return nil, err
	}

	if _, ok := repositories.FindByUsername(accounts, username); ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrUsernameTaken, username)
	}
	if !ValidEmail(email) {
		return nil, fmt.Errorf("%w: %q", shared.ErrInvalidEmail, email)
	}
	if _, ok := repositories.FindByEmail(accounts, email); ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrEmailTaken, email)
	}

	account := models.NewAccount(shared.GenerateID(), username, password, email)
	if err := a.save(append(accounts, account)); err != nil {
		return nil, err
	}

	a.logger.Info("account created", "username", username)
	return newUser(account, nil, nil, nil, a), nil
}

// Login returns the [User] whose username and password match.
//
// [shared.ErrInvalidCredentials] is a correction result and does not say which field was wrong.
func (a *Accounts) Login(username, password string) (*User, error) {
	accounts, err := a.load()
	if err != nil {
		return nil, err
	}

	account, ok := repositories.FindByUsername(accounts, username)
	if !ok || account.Password != password {
		a.logger.Debug("login rejected", "username", username)
		return nil, shared.ErrInvalidCredentials
	}

	collection, err := models.DecodeSongs(account.Collection)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", username, err)
	}
	playlists, err := models.DecodePlaylists(account.Playlists)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", username, err)
	}
	favorites, err := models.DecodeSongs(account.Favorites)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", username, err)
	}

	a.logger.Info("logged in", "username", username)
	return newUser(account, collection, playlists, favorites, a), nil
}

// DeleteAccount removes the record for username. A missing username is not an error.
func (a *Accounts) DeleteAccount(username string) (bool, error) {
	accounts, err := a.load()
	if err != nil {
		return false, err
	}

	i := repositories.IndexOf(accounts, username)
	if i < 0 {
		return false, nil
	}

	if err := a.save(append(accounts[:i:i], accounts[i+1:]...)); err != nil {
		return false, err
	}

	a.logger.Info("account deleted", "username", username)
	return true, nil
}

// ForgotUsername returns the username registered with email.
func (a *Accounts) ForgotUsername(email string) (string, error) {
	accounts, err := a.load()
	if err != nil {
		return "", err
	}

	account, ok := repositories.FindByEmail(accounts, email)
	if !ok {
		return "", fmt.Errorf("%w: no account uses %s", shared.ErrAccountNotFound, email)
	}
	return account.Username, nil
}

// ForgotPassword replaces the password of the account matching both username and email
// with a random one and returns it.
func (a *Accounts) ForgotPassword(username, email string) (string, error) {
	accounts, err := a.load()
	if err != nil {
		return "", err
	}

	i := repositories.IndexOf(accounts, username)
	if i < 0 || accounts[i].Email != email {
		return "", fmt.Errorf("%w: username or email not found", shared.ErrAccountNotFound)
	}

	password, err := generatePassword()
	if err != nil {
		return "", err
	}

	accounts[i].Password = password
	if err := a.save(accounts); err != nil {
		return "", err
	}

	a.logger.Info("password reset", "username", username)
	return password, nil
}

func generatePassword() (string, error) {
	max := big.NewInt(int64(len(passwordAlphabet)))
	buf := make([]byte, passwordLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate password: %w", err)
		}
		buf[i] = passwordAlphabet[n.Int64()]
	}
	return string(buf), nil
}
