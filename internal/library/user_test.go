package library

import (
	"errors"
	"testing"

	"github.com/desertthunder/medley/internal/models"
	"github.com/desertthunder/medley/internal/player"
	"github.com/desertthunder/medley/internal/repositories"
	"github.com/desertthunder/medley/internal/shared"
	tu "github.com/desertthunder/medley/internal/testing"
)

var (
	songGo   = models.NewSong("Go", "X", "Y", "Pop", 3.5)
	songStay = models.NewSong("Stay", "Z", "W", "Rock", 4)
)

// setupUser creates alice in a fresh memory store and logs her in
func setupUser(t *testing.T) (*User, *Accounts, *repositories.MemoryStore) {
	t.Helper()

	accounts, store := setupAccounts(t)
	if _, err := accounts.CreateAccount("alice", "pw1", "a@b.com"); err != nil {
		t.Fatalf("CreateAccount() error = %v", err)
	}
	user, err := accounts.Login("alice", "pw1")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	return user, accounts, store
}

// reload logs in again so assertions run against what was persisted
func reload(t *testing.T, accounts *Accounts, username, password string) *User {
	t.Helper()
	user, err := accounts.Login(username, password)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	return user
}

func TestCollection(t *testing.T) {
	t.Run("add persists", func(t *testing.T) {
		user, accounts, _ := setupUser(t)

		if err := user.AddSongToCollection(songGo); err != nil {
			t.Fatalf("AddSongToCollection() error = %v", err)
		}

		got := reload(t, accounts, "alice", "pw1").Collection()
		if len(got) != 1 || got[0] != songGo {
			t.Errorf("unexpected persisted collection: %v", got)
		}
	})

	t.Run("rejects duplicate titles regardless of other fields", func(t *testing.T) {
		user, accounts, _ := setupUser(t)
		_ = user.AddSongToCollection(songGo)

		err := user.AddSongToCollection(models.NewSong("Go", "Other", "Other", "Jazz", 10))
		if !errors.Is(err, shared.ErrDuplicateSong) {
			t.Fatalf("expected ErrDuplicateSong, got %v", err)
		}

		got := reload(t, accounts, "alice", "pw1").Collection()
		if len(got) != 1 || got[0].Artist != "X" {
			t.Errorf("duplicate should not be stored: %v", got)
		}
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		user, _, _ := setupUser(t)
		_ = user.AddSongToCollection(songGo)
		_ = user.AddSongToCollection(songStay)

		for i := range 2 {
			n, err := user.RemoveSongFromCollection("Missing")
			if err != nil {
				t.Fatalf("RemoveSongFromCollection() error = %v", err)
			}
			if n != 0 || len(user.Collection()) != 2 {
				t.Errorf("pass %d: expected unchanged collection, removed %d", i, n)
			}
		}
	})

	t.Run("remove persists even without a match", func(t *testing.T) {
		store := tu.NewMockStore()
		accounts := NewAccounts(store, tu.NewTestLogger())
		user, err := accounts.CreateAccount("alice", "pw1", "a@b.com")
		if err != nil {
			t.Fatalf("CreateAccount() error = %v", err)
		}

		before := store.SaveCount()
		if _, err := user.RemoveSongFromCollection("Missing"); err != nil {
			t.Fatalf("RemoveSongFromCollection() error = %v", err)
		}
		if store.SaveCount() != before+1 {
			t.Error("remove should write even when nothing matched")
		}
	})

	t.Run("search and find", func(t *testing.T) {
		user, _, _ := setupUser(t)
		_ = user.AddSongToCollection(songGo)
		_ = user.AddSongToCollection(songStay)
		_ = user.AddSongToCollection(models.NewSong("Gone", "Q", "R", "Pop", 2))

		if got := user.SearchSongs("GO"); len(got) != 2 {
			t.Errorf("expected 2 matches, got %v", got)
		}

		song, err := user.FindSong("Stay")
		if err != nil || song != songStay {
			t.Errorf("FindSong() = %v, %v", song, err)
		}
		if _, err := user.FindSong("stay"); !errors.Is(err, shared.ErrSongNotFound) {
			t.Errorf("FindSong is exact, expected ErrSongNotFound, got %v", err)
		}
	})

	t.Run("filter", func(t *testing.T) {
		user, _, _ := setupUser(t)
		_ = user.AddSongToCollection(songGo)
		_ = user.AddSongToCollection(songStay)
		_ = user.AddSongToCollection(models.NewSong("Gone", "X", "R", "Rock", 2))

		tt := []struct {
			name   string
			filter SongFilter
			want   int
		}{
			{name: "artist", filter: SongFilter{Artist: "x"}, want: 2},
			{name: "genre", filter: SongFilter{Genre: "rock"}, want: 2},
			{name: "artist and genre", filter: SongFilter{Artist: "X", Genre: "Rock"}, want: 1},
			{name: "empty filter", filter: SongFilter{}, want: 3},
			{name: "no match", filter: SongFilter{Album: "none"}, want: 0},
		}
		for _, tc := range tt {
			t.Run(tc.name, func(t *testing.T) {
				if got := user.FilterSongs(tc.filter); len(got) != tc.want {
					t.Errorf("FilterSongs() = %v, want %d songs", got, tc.want)
				}
			})
		}
	})

	t.Run("save failure is returned", func(t *testing.T) {
		store := tu.NewMockStore()
		accounts := NewAccounts(store, tu.NewTestLogger())
		user, _ := accounts.CreateAccount("alice", "pw1", "a@b.com")
		store.SaveErr = errors.New("read-only")

		if err := user.AddSongToCollection(songGo); err == nil {
			t.Error("expected save error")
		}
	})

	t.Run("failed save leaves the library unchanged", func(t *testing.T) {
		store := tu.NewMockStore()
		accounts := NewAccounts(store, tu.NewTestLogger())
		user, err := accounts.CreateAccount("alice", "pw1", "a@b.com")
		if err != nil {
			t.Fatalf("CreateAccount() error = %v", err)
		}
		if err := user.AddSongToCollection(songStay); err != nil {
			t.Fatalf("AddSongToCollection() error = %v", err)
		}
		roadTrip, err := user.CreatePlaylist("Road Trip")
		if err != nil {
			t.Fatalf("CreatePlaylist() error = %v", err)
		}
		if err := user.AddSongToPlaylist("Road Trip", songStay); err != nil {
			t.Fatalf("AddSongToPlaylist() error = %v", err)
		}

		store.SaveErr = errors.New("read-only")

		if err := user.AddSongToCollection(songGo); err == nil {
			t.Error("AddSongToCollection() expected save error")
		}
		if _, err := user.RemoveSongFromCollection("Stay"); err == nil {
			t.Error("RemoveSongFromCollection() expected save error")
		}
		if _, err := user.CreatePlaylist("Gym"); err == nil {
			t.Error("CreatePlaylist() expected save error")
		}
		if _, err := user.DeletePlaylist("Road Trip"); err == nil {
			t.Error("DeletePlaylist() expected save error")
		}
		if err := user.AddSongToPlaylist("Road Trip", songGo); err == nil {
			t.Error("AddSongToPlaylist() expected save error")
		}
		if _, err := user.RemoveSongFromPlaylist("Road Trip", "Stay"); err == nil {
			t.Error("RemoveSongFromPlaylist() expected save error")
		}
		if err := user.AddSongToFavorites(songGo); err == nil {
			t.Error("AddSongToFavorites() expected save error")
		}

		if got := len(user.Collection()); got != 1 {
			t.Errorf("expected 1 collected song, got %d", got)
		}
		if got := len(user.Playlists()); got != 1 {
			t.Errorf("expected 1 playlist, got %d", got)
		}
		if len(roadTrip.Songs) != 1 || roadTrip.Songs[0].Title != "Stay" {
			t.Errorf("expected Road Trip to hold only Stay, got %v", roadTrip.Songs)
		}
		if got := len(user.Favorites()); got != 0 {
			t.Errorf("expected no favorites, got %d", got)
		}

		store.SaveErr = nil

		if err := user.AddSongToCollection(songGo); err != nil {
			t.Errorf("retry AddSongToCollection() error = %v", err)
		}
		if _, err := user.CreatePlaylist("Gym"); err != nil {
			t.Errorf("retry CreatePlaylist() error = %v", err)
		}
		if got := len(user.Collection()); got != 2 {
			t.Errorf("expected 2 collected songs after retry, got %d", got)
		}
	})
}

func TestPlaylists(t *testing.T) {
	t.Run("create rejects duplicates and blank names", func(t *testing.T) {
		user, _, _ := setupUser(t)

		if _, err := user.CreatePlaylist("Road Trip"); err != nil {
			t.Fatalf("CreatePlaylist() error = %v", err)
		}
		if _, err := user.CreatePlaylist("Road Trip"); !errors.Is(err, shared.ErrPlaylistExists) {
			t.Errorf("expected ErrPlaylistExists, got %v", err)
		}
		if _, err := user.CreatePlaylist("  "); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if len(user.Playlists()) != 1 {
			t.Errorf("expected 1 playlist, got %d", len(user.Playlists()))
		}
	})

	t.Run("add and remove songs", func(t *testing.T) {
		user, accounts, _ := setupUser(t)
		_, _ = user.CreatePlaylist("Mix")

		if err := user.AddSongToPlaylist("Mix", songGo); err != nil {
			t.Fatalf("AddSongToPlaylist() error = %v", err)
		}
		if err := user.AddSongToPlaylist("Mix", songStay); err != nil {
			t.Fatalf("AddSongToPlaylist() error = %v", err)
		}
		if n, err := user.RemoveSongFromPlaylist("Mix", "Go"); err != nil || n != 1 {
			t.Fatalf("RemoveSongFromPlaylist() = %d, %v", n, err)
		}

		p, err := reload(t, accounts, "alice", "pw1").Playlist("Mix")
		if err != nil {
			t.Fatalf("Playlist() error = %v", err)
		}
		if p.Len() != 1 || p.Songs[0].Title != "Stay" {
			t.Errorf("unexpected persisted playlist: %v", p.Songs)
		}
	})

	t.Run("unknown playlist does not persist", func(t *testing.T) {
		store := tu.NewMockStore()
		accounts := NewAccounts(store, tu.NewTestLogger())
		user, _ := accounts.CreateAccount("alice", "pw1", "a@b.com")
		before := store.SaveCount()

		if err := user.AddSongToPlaylist("Nope", songGo); !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
		if _, err := user.RemoveSongFromPlaylist("Nope", "Go"); !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
		if store.SaveCount() != before {
			t.Error("not-found should not write")
		}
	})

	t.Run("delete removes every match", func(t *testing.T) {
		seed := models.NewAccount("id-1", "alice", "pw1", "a@b.com")
		seed.Playlists = `[{"name":"Dup","songs":[]},{"name":"Keep","songs":[]},{"name":"Dup","songs":[]}]`
		accounts, _ := setupAccounts(t, seed)
		user := reload(t, accounts, "alice", "pw1")

		n, err := user.DeletePlaylist("Dup")
		if err != nil || n != 2 {
			t.Fatalf("DeletePlaylist() = %d, %v", n, err)
		}

		got := reload(t, accounts, "alice", "pw1").Playlists()
		if len(got) != 1 || got[0].Name != "Keep" {
			t.Errorf("unexpected playlists: %v", got)
		}
	})
}

func TestFavorites(t *testing.T) {
	user, accounts, _ := setupUser(t)

	if err := user.AddSongToFavorites(songGo); err != nil {
		t.Fatalf("AddSongToFavorites() error = %v", err)
	}
	if err := user.AddSongToFavorites(songGo); !errors.Is(err, shared.ErrDuplicateSong) {
		t.Errorf("expected ErrDuplicateSong, got %v", err)
	}
	if len(user.Collection()) != 0 {
		t.Error("favorites are stored independently of the collection")
	}

	persisted := reload(t, accounts, "alice", "pw1")
	if len(persisted.Favorites()) != 1 {
		t.Fatalf("expected 1 persisted favorite, got %v", persisted.Favorites())
	}

	if n, err := persisted.RemoveSongFromFavorites("Go"); err != nil || n != 1 {
		t.Errorf("RemoveSongFromFavorites() = %d, %v", n, err)
	}
	if got := reload(t, accounts, "alice", "pw1").Favorites(); len(got) != 0 {
		t.Errorf("expected no favorites, got %v", got)
	}
}

func TestEditProfile(t *testing.T) {
	setup := func(t *testing.T) (*User, *Accounts, *repositories.MemoryStore) {
		t.Helper()
		user, accounts, store := setupUser(t)
		if _, err := accounts.CreateAccount("bob", "pw2", "bob@example.com"); err != nil {
			t.Fatalf("CreateAccount() error = %v", err)
		}
		return user, accounts, store
	}

	t.Run("applies every changed field in one save", func(t *testing.T) {
		user, accounts, _ := setup(t)
		_ = user.AddSongToCollection(songGo)

		changed, err := user.EditProfile(ProfileChanges{Username: "alicia", Password: "new", Email: "alicia@b.com"})
		if err != nil || !changed {
			t.Fatalf("EditProfile() = %v, %v", changed, err)
		}

		persisted := reload(t, accounts, "alicia", "new")
		if persisted.Profile().Email != "alicia@b.com" {
			t.Errorf("unexpected profile: %+v", persisted.Profile())
		}
		if len(persisted.Collection()) != 1 {
			t.Error("collections should survive a rename")
		}
		if _, err := accounts.Login("alice", "pw1"); err == nil {
			t.Error("old username should be gone")
		}

		if err := user.AddSongToCollection(songStay); err != nil {
			t.Errorf("renamed user should keep saving: %v", err)
		}
	})

	t.Run("username conflict drops every change", func(t *testing.T) {
		user, accounts, _ := setup(t)

		_, err := user.EditProfile(ProfileChanges{Username: "bob", Password: "new", Email: "new@b.com"})
		if !errors.Is(err, shared.ErrUsernameTaken) {
			t.Fatalf("expected ErrUsernameTaken, got %v", err)
		}

		persisted := reload(t, accounts, "alice", "pw1")
		if persisted.Profile().Email != "a@b.com" || user.Profile().Password != "pw1" {
			t.Error("no field should be applied on conflict")
		}
	})

	t.Run("email conflict drops every change", func(t *testing.T) {
		user, accounts, _ := setup(t)

		_, err := user.EditProfile(ProfileChanges{Password: "new", Email: "bob@example.com"})
		if !errors.Is(err, shared.ErrEmailTaken) {
			t.Fatalf("expected ErrEmailTaken, got %v", err)
		}
		reload(t, accounts, "alice", "pw1")
	})

	t.Run("malformed email", func(t *testing.T) {
		user, _, _ := setup(t)

		if _, err := user.EditProfile(ProfileChanges{Email: "nope"}); !errors.Is(err, shared.ErrInvalidEmail) {
			t.Errorf("expected ErrInvalidEmail, got %v", err)
		}
	})

	t.Run("same values are not a change", func(t *testing.T) {
		user, _, _ := setup(t)

		changed, err := user.EditProfile(ProfileChanges{Username: "alice", Email: "a@b.com"})
		if err != nil || changed {
			t.Errorf("EditProfile() = %v, %v", changed, err)
		}
		changed, err = user.EditProfile(ProfileChanges{})
		if err != nil || changed {
			t.Errorf("EditProfile(empty) = %v, %v", changed, err)
		}
	})
}

func TestLogout(t *testing.T) {
	store := tu.NewMockStore()
	accounts := NewAccounts(store, tu.NewTestLogger())
	user, _ := accounts.CreateAccount("alice", "pw1", "a@b.com")
	before := store.SaveCount()

	if err := user.Logout(); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if store.SaveCount() != before+1 {
		t.Error("logout should persist")
	}
	if user.Username() != "alice" {
		t.Error("logout should not invalidate the user")
	}
}

func TestSaveDeletedAccount(t *testing.T) {
	user, accounts, _ := setupUser(t)
	if _, err := accounts.DeleteAccount("alice"); err != nil {
		t.Fatalf("DeleteAccount() error = %v", err)
	}

	if err := user.AddSongToCollection(songGo); !errors.Is(err, shared.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestScenarios(t *testing.T) {
	t.Run("duplicate username keeps the first account", func(t *testing.T) {
		accounts, store := setupAccounts(t)

		if _, err := accounts.CreateAccount("alice", "pw1", "a@b.com"); err != nil {
			t.Fatalf("CreateAccount() error = %v", err)
		}
		if _, err := accounts.CreateAccount("alice", "pw2", "c@d.com"); !errors.Is(err, shared.ErrUsernameTaken) {
			t.Fatalf("expected ErrUsernameTaken, got %v", err)
		}

		records, _ := store.Load()
		var alices []models.Account
		for _, r := range records {
			if r.Username == "alice" {
				alices = append(alices, r)
			}
		}
		if len(alices) != 1 || alices[0].Password != "pw1" {
			t.Errorf("expected exactly one alice with pw1, got %+v", alices)
		}
	})

	t.Run("Road Trip", func(t *testing.T) {
		user, _, _ := setupUser(t)

		if _, err := user.CreatePlaylist("Road Trip"); err != nil {
			t.Fatalf("CreatePlaylist() error = %v", err)
		}
		if err := user.AddSongToPlaylist("Road Trip", songGo); err != nil {
			t.Fatalf("AddSongToPlaylist() error = %v", err)
		}

		pl, err := user.Playlist("Road Trip")
		if err != nil {
			t.Fatalf("Playlist() error = %v", err)
		}

		p := player.New()
		if err := p.Load(pl); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		song, err := p.Play()
		if err != nil {
			t.Fatalf("Play() error = %v", err)
		}
		if song.Title != "Go" || !p.IsPlaying() {
			t.Errorf("expected Go playing, got %v playing=%v", song, p.IsPlaying())
		}
	})

	t.Run("round trip through the store", func(t *testing.T) {
		user, accounts, _ := setupUser(t)
		_ = user.AddSongToCollection(songGo)
		_ = user.AddSongToCollection(songStay)
		_, _ = user.CreatePlaylist("A")
		_ = user.AddSongToPlaylist("A", songStay)
		_ = user.AddSongToPlaylist("A", songGo)
		_, _ = user.CreatePlaylist("B")
		_ = user.AddSongToFavorites(songStay)

		persisted := reload(t, accounts, "alice", "pw1")

		for i, s := range user.Collection() {
			if !persisted.Collection()[i].Equal(s) {
				t.Errorf("collection %d differs", i)
			}
		}
		for i, p := range user.Playlists() {
			if !persisted.Playlists()[i].Equal(p) {
				t.Errorf("playlist %d differs: %v vs %v", i, persisted.Playlists()[i], p)
			}
		}
		if !persisted.Favorites()[0].Equal(songStay) {
			t.Error("favorites differ")
		}
	})
}
