package library

import (
	"errors"
	"testing"

	"github.com/desertthunder/medley/internal/models"
	"github.com/desertthunder/medley/internal/repositories"
	"github.com/desertthunder/medley/internal/shared"
	tu "github.com/desertthunder/medley/internal/testing"
)

func setupAccounts(t *testing.T, seed ...models.Account) (*Accounts, *repositories.MemoryStore) {
	t.Helper()
	store := repositories.NewMemoryStore(seed...)
	return NewAccounts(store, tu.NewTestLogger()), store
}

func TestValidEmail(t *testing.T) {
	tt := []struct {
		email string
		want  bool
	}{
		{"a@b.com", true},
		{"first.last@mail.example.org", true},
		{"not-an-email", false},
		{"a@b", false},
		{"@b.com", false},
		{"a@@b.com", false},
		{"", false},
	}

	for _, tc := range tt {
		t.Run(tc.email, func(t *testing.T) {
			if got := ValidEmail(tc.email); got != tc.want {
				t.Errorf("ValidEmail(%q) = %v, want %v", tc.email, got, tc.want)
			}
		})
	}
}

func TestNeedsCorrection(t *testing.T) {
	tt := []struct {
		name string
		err  error
		want bool
	}{
		{name: "invalid email", err: shared.ErrInvalidEmail, want: true},
		{name: "email taken wrapped", err: errors.Join(errors.New("ctx"), shared.ErrEmailTaken), want: true},
		{name: "invalid credentials", err: shared.ErrInvalidCredentials, want: true},
		{name: "username taken", err: shared.ErrUsernameTaken, want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			if got := NeedsCorrection(tc.err); got != tc.want {
				t.Errorf("NeedsCorrection() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCreateAccount(t *testing.T) {
	t.Run("creates a record with empty collections", func(t *testing.T) {
		accounts, store := setupAccounts(t)

		user, err := accounts.CreateAccount("alice", "pw1", "a@b.com")
		if err != nil {
			t.Fatalf("CreateAccount() error = %v", err)
		}
		if user.Username() != "alice" {
			t.Errorf("expected alice, got %s", user.Username())
		}

		records, _ := store.Load()
		if len(records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(records))
		}
		r := records[0]
		if r.ID == "" || r.Password != "pw1" || r.Email != "a@b.com" {
			t.Errorf("unexpected record: %+v", r)
		}
		if r.Collection != models.EmptyCollection || r.Playlists != models.EmptyCollection || r.Favorites != models.EmptyCollection {
			t.Errorf("expected empty collections, got %+v", r)
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		accounts, store := setupAccounts(t)
		if _, err := accounts.CreateAccount("alice", "pw1", "a@b.com"); err != nil {
			t.Fatalf("CreateAccount() error = %v", err)
		}

		_, err := accounts.CreateAccount("alice", "pw2", "c@d.com")
		if !errors.Is(err, shared.ErrUsernameTaken) {
			t.Fatalf("expected ErrUsernameTaken, got %v", err)
		}
		if NeedsCorrection(err) {
			t.Error("a taken username is not a correction result")
		}

		records, _ := store.Load()
		if len(records) != 1 || records[0].Password != "pw1" {
			t.Errorf("store should hold only the first alice, got %+v", records)
		}
	})

	t.Run("username is checked before email", func(t *testing.T) {
		accounts, _ := setupAccounts(t)
		if _, err := accounts.CreateAccount("alice", "pw1", "a@b.com"); err != nil {
			t.Fatalf("CreateAccount() error = %v", err)
		}

		if _, err := accounts.CreateAccount("alice", "pw2", "bad"); !errors.Is(err, shared.ErrUsernameTaken) {
			t.Errorf("expected ErrUsernameTaken, got %v", err)
		}
	})

	t.Run("invalid email then correction", func(t *testing.T) {
		accounts, store := setupAccounts(t)

		_, err := accounts.CreateAccount("bob", "pw", "bob-at-example")
		if !errors.Is(err, shared.ErrInvalidEmail) || !NeedsCorrection(err) {
			t.Fatalf("expected correctable ErrInvalidEmail, got %v", err)
		}
		if records, _ := store.Load(); len(records) != 0 {
			t.Fatalf("nothing should be stored, got %d", len(records))
		}

		if _, err := accounts.CreateAccount("bob", "pw", "bob@example.com"); err != nil {
			t.Fatalf("retry with corrected email failed: %v", err)
		}
	})

	t.Run("email taken", func(t *testing.T) {
		accounts, _ := setupAccounts(t)
		if _, err := accounts.CreateAccount("alice", "pw1", "a@b.com"); err != nil {
			t.Fatalf("CreateAccount() error = %v", err)
		}

		_, err := accounts.CreateAccount("bob", "pw", "a@b.com")
		if !errors.Is(err, shared.ErrEmailTaken) || !NeedsCorrection(err) {
			t.Errorf("expected correctable ErrEmailTaken, got %v", err)
		}
	})

	t.Run("empty username", func(t *testing.T) {
		accounts, _ := setupAccounts(t)
		if _, err := accounts.CreateAccount("", "pw", "a@b.com"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		store := tu.NewMockStore()
		store.SaveErr = errors.New("disk full")
		accounts := NewAccounts(store, tu.NewTestLogger())

		_, err := accounts.CreateAccount("alice", "pw1", "a@b.com")
		if err == nil || err.Error() != "failed to save accounts: disk full" {
			t.Errorf("expected wrapped save error, got %v", err)
		}
	})
}

func TestLogin(t *testing.T) {
	seed := models.NewAccount("id-1", "alice", "pw1", "a@b.com")
	seed.Collection = `[{"title":"Go","artist":"X","album":"Y","genre":"Pop","duration":3.5}]`
	seed.Playlists = `[{"name":"Road Trip","songs":[{"title":"Go","artist":"X","album":"Y","genre":"Pop","duration":3.5}]}]`

	t.Run("decodes collections", func(t *testing.T) {
		accounts, _ := setupAccounts(t, seed)

		user, err := accounts.Login("alice", "pw1")
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if len(user.Collection()) != 1 || user.Collection()[0].Title != "Go" {
			t.Errorf("unexpected collection: %v", user.Collection())
		}
		p, err := user.Playlist("Road Trip")
		if err != nil || p.Len() != 1 {
			t.Errorf("unexpected playlist: %v, %v", p, err)
		}
		if len(user.Favorites()) != 0 {
			t.Errorf("expected no favorites, got %v", user.Favorites())
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		accounts, _ := setupAccounts(t, seed)

		_, err := accounts.Login("alice", "nope")
		if !errors.Is(err, shared.ErrInvalidCredentials) || !NeedsCorrection(err) {
			t.Errorf("expected correctable ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		accounts, _ := setupAccounts(t, seed)

		if _, err := accounts.Login("zed", "pw1"); !errors.Is(err, shared.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("corrupt collection", func(t *testing.T) {
		bad := seed
		bad.Favorites = "{nope"
		accounts, _ := setupAccounts(t, bad)

		if _, err := accounts.Login("alice", "pw1"); err == nil {
			t.Error("expected decode error")
		}
	})

	t.Run("load failure", func(t *testing.T) {
		store := tu.NewMockStore()
		store.LoadErr = errors.New("unreadable")
		accounts := NewAccounts(store, tu.NewTestLogger())

		_, err := accounts.Login("alice", "pw1")
		if err == nil || NeedsCorrection(err) {
			t.Errorf("expected a fatal load error, got %v", err)
		}
	})
}

func TestDeleteAccount(t *testing.T) {
	t.Run("removes only the named record", func(t *testing.T) {
		accounts, store := setupAccounts(t,
			models.NewAccount("1", "alice", "pw1", "a@b.com"),
			models.NewAccount("2", "bob", "pw2", "b@c.com"),
		)

		deleted, err := accounts.DeleteAccount("alice")
		if err != nil || !deleted {
			t.Fatalf("DeleteAccount() = %v, %v", deleted, err)
		}

		records, _ := store.Load()
		if len(records) != 1 || records[0].Username != "bob" {
			t.Errorf("unexpected records: %+v", records)
		}
	})

	t.Run("missing username is a no-op", func(t *testing.T) {
		store := tu.NewMockStore(models.NewAccount("1", "alice", "pw1", "a@b.com"))
		accounts := NewAccounts(store, tu.NewTestLogger())

		deleted, err := accounts.DeleteAccount("zed")
		if err != nil || deleted {
			t.Errorf("DeleteAccount() = %v, %v", deleted, err)
		}
		if store.SaveCount() != 0 {
			t.Error("no-op delete should not write")
		}
	})
}

func TestForgotUsername(t *testing.T) {
	accounts, _ := setupAccounts(t, models.NewAccount("1", "alice", "pw1", "a@b.com"))

	name, err := accounts.ForgotUsername("a@b.com")
	if err != nil || name != "alice" {
		t.Errorf("ForgotUsername() = %q, %v", name, err)
	}

	if _, err := accounts.ForgotUsername("x@y.com"); !errors.Is(err, shared.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestForgotPassword(t *testing.T) {
	t.Run("generates and persists a new password", func(t *testing.T) {
		accounts, store := setupAccounts(t, models.NewAccount("1", "alice", "pw1", "a@b.com"))

		password, err := accounts.ForgotPassword("alice", "a@b.com")
		if err != nil {
			t.Fatalf("ForgotPassword() error = %v", err)
		}
		if len(password) != 8 {
			t.Errorf("expected 8 characters, got %q", password)
		}
		for _, r := range password {
			if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
				t.Errorf("unexpected character %q in %q", r, password)
			}
		}

		records, _ := store.Load()
		if records[0].Password != password {
			t.Errorf("stored password %q, want %q", records[0].Password, password)
		}
		if _, err := accounts.Login("alice", password); err != nil {
			t.Errorf("login with new password failed: %v", err)
		}
	})

	t.Run("username and email must both match", func(t *testing.T) {
		accounts, _ := setupAccounts(t,
			models.NewAccount("1", "alice", "pw1", "a@b.com"),
			models.NewAccount("2", "bob", "pw2", "b@c.com"),
		)

		if _, err := accounts.ForgotPassword("alice", "b@c.com"); !errors.Is(err, shared.ErrAccountNotFound) {
			t.Errorf("expected ErrAccountNotFound, got %v", err)
		}
	})
}
