package library

import (
	"fmt"
	"strings"

	"github.com/desertthunder/medley/internal/models"
	"github.com/desertthunder/medley/internal/repositories"
	"github.com/desertthunder/medley/internal/shared"
)

// User is a logged-in account with its decoded collections.
//
// Playlists are held by pointer so a [player.Player] can keep a reference across mutations.
type User struct {
	id         string
	username   string
	password   string
	email      string
	collection []models.Song
	playlists  []*models.Playlist
	favorites  []models.Song
	accounts   *Accounts
}

// Profile is the credential view of a [User]. Passwords are plaintext.
type Profile struct {
	ID       string
	Username string
	Password string
	Email    string
}

// ProfileChanges holds the fields to update in [User.EditProfile]. Blank fields are left alone.
type ProfileChanges struct {
	Username string
	Password string
	Email    string
}

// SongFilter narrows [User.FilterSongs]. Blank fields match everything; set fields match case-insensitively.
type SongFilter struct {
	Artist string
	Album  string
	Genre  string
}

func newUser(account models.Account, collection []models.Song, playlists []*models.Playlist, favorites []models.Song, accounts *Accounts) *User {
	if collection == nil {
		collection = []models.Song{}
	}
	if playlists == nil {
		playlists = []*models.Playlist{}
	}
	if favorites == nil {
		favorites = []models.Song{}
	}
	return &User{
		id:         account.ID,
		username:   account.Username,
		password:   account.Password,
		email:      account.Email,
		collection: collection,
		playlists:  playlists,
		favorites:  favorites,
		accounts:   accounts,
	}
}

// Username returns the current username.
func (u *User) Username() string { return u.username }

// Profile returns the user's credentials.
func (u *User) Profile() Profile {
	return Profile{ID: u.id, Username: u.username, Password: u.password, Email: u.email}
}

// Collection returns a copy of the song collection.
func (u *User) Collection() []models.Song {
	return append([]models.Song{}, u.collection...)
}

// Favorites returns a copy of the favorite songs.
func (u *User) Favorites() []models.Song {
	return append([]models.Song{}, u.favorites...)
}

// Playlists returns the user's playlists. The pointers are shared with the user.
func (u *User) Playlists() []*models.Playlist {
	return append([]*models.Playlist{}, u.playlists...)
}

// Playlist returns the first playlist named name.
func (u *User) Playlist(name string) (*models.Playlist, error) {
	for _, p := range u.playlists {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, name)
}

// FindSong looks up a song in the collection by exact title.
func (u *User) FindSong(title string) (models.Song, error) {
	for _, s := range u.collection {
		if s.Title == title {
			return s, nil
		}
	}
	return models.Song{}, fmt.Errorf("%w: %s", shared.ErrSongNotFound, title)
}

// SearchSongs returns collection songs whose title contains keyword, ignoring case.
func (u *User) SearchSongs(keyword string) []models.Song {
	return models.SearchByTitle(u.collection, keyword)
}

// FilterSongs returns collection songs matching every set field of f.
func (u *User) FilterSongs(f SongFilter) []models.Song {
	match := func(want, got string) bool {
		return want == "" || strings.EqualFold(want, got)
	}

	results := []models.Song{}
	for _, s := range u.collection {
		if match(f.Artist, s.Artist) && match(f.Album, s.Album) && match(f.Genre, s.Genre) {
			results = append(results, s)
		}
	}
	return results
}

// AddSongToCollection appends song unless a song with the same title is already collected.
func (u *User) AddSongToCollection(song models.Song) error {
	if models.ContainsSong(u.collection, song) {
		u.accounts.logger.Warn("song already in collection", "username", u.username, "title", song.Title)
		return fmt.Errorf("%w: %s", shared.ErrDuplicateSong, song.Title)
	}

	return u.commit(func() {
		u.collection = append(u.collection, song)
	})
}

// RemoveSongFromCollection drops every collected song titled title and returns how many were removed.
// The state is written back even when nothing matched.
func (u *User) RemoveSongFromCollection(title string) (int, error) {
	var n int
	err := u.commit(func() {
		u.collection, n = models.RemoveByTitle(u.collection, title)
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// CreatePlaylist adds an empty playlist. Names are unique per user.
func (u *User) CreatePlaylist(name string) (*models.Playlist, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: playlist name is required", shared.ErrInvalidInput)
	}
	if _, err := u.Playlist(name); err == nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistExists, name)
	}

	p := models.NewPlaylist(name)
	if err := u.commit(func() { u.playlists = append(u.playlists, p) }); err != nil {
		return nil, err
	}
	return p, nil
}

// DeletePlaylist removes every playlist named name and returns how many were removed.
func (u *User) DeletePlaylist(name string) (int, error) {
	kept := make([]*models.Playlist, 0, len(u.playlists))
	for _, p := range u.playlists {
		if p.Name != name {
			kept = append(kept, p)
		}
	}
	n := len(u.playlists) - len(kept)
	if err := u.commit(func() { u.playlists = kept }); err != nil {
		return 0, err
	}
	return n, nil
}

// AddSongToPlaylist appends song to the first playlist named name.
func (u *User) AddSongToPlaylist(name string, song models.Song) error {
	p, err := u.Playlist(name)
	if err != nil {
		return err
	}

	return u.commit(func() { p.AddSong(song) })
}

// RemoveSongFromPlaylist drops every song titled title from the first playlist named name.
func (u *User) RemoveSongFromPlaylist(name, title string) (int, error) {
	p, err := u.Playlist(name)
	if err != nil {
		return 0, err
	}

	var n int
	if err := u.commit(func() { n = p.RemoveSong(title) }); err != nil {
		return 0, err
	}
	return n, nil
}

// AddSongToFavorites marks song as a favorite unless a song with the same title already is.
func (u *User) AddSongToFavorites(song models.Song) error {
	if models.ContainsSong(u.favorites, song) {
		u.accounts.logger.Warn("song already in favorites", "username", u.username, "title", song.Title)
		return fmt.Errorf("%w: %s", shared.ErrDuplicateSong, song.Title)
	}

	return u.commit(func() {
		u.favorites = append(u.favorites, song)
	})
}

// RemoveSongFromFavorites drops every favorite titled title and returns how many were removed.
func (u *User) RemoveSongFromFavorites(title string) (int, error) {
	var n int
	err := u.commit(func() {
		u.favorites, n = models.RemoveByTitle(u.favorites, title)
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// EditProfile applies the non-blank fields of changes in one write and reports whether anything changed.
//
// A conflict or malformed email rejects the whole edit: nothing is applied.
func (u *User) EditProfile(changes ProfileChanges) (bool, error) {
	accounts, err := u.accounts.load()
	if err != nil {
		return false, err
	}

	i := repositories.IndexOf(accounts, u.username)
	if i < 0 {
		return false, fmt.Errorf("%w: %s", shared.ErrAccountNotFound, u.username)
	}

	next := Profile{ID: u.id, Username: u.username, Password: u.password, Email: u.email}

	if changes.Username != "" && changes.Username != u.username {
		if repositories.IndexOf(accounts, changes.Username) >= 0 {
			return false, fmt.Errorf("%w: %s", shared.ErrUsernameTaken, changes.Username)
		}
		next.Username = changes.Username
	}
	if changes.Password != "" {
		next.Password = changes.Password
	}
	if changes.Email != "" && changes.Email != u.email {
		if !ValidEmail(changes.Email) {
			return false, fmt.Errorf("%w: %q", shared.ErrInvalidEmail, changes.Email)
		}
		if other, ok := repositories.FindByEmail(accounts, changes.Email); ok && other.Username != u.username {
			return false, fmt.Errorf("%w: %s", shared.ErrEmailTaken, changes.Email)
		}
		next.Email = changes.Email
	}

	if next == u.Profile() {
		return false, nil
	}

	record, err := u.record()
	if err != nil {
		return false, err
	}
	record.Username, record.Password, record.Email = next.Username, next.Password, next.Email
	accounts[i] = record

	if err := u.accounts.save(accounts); err != nil {
		return false, err
	}

	u.accounts.logger.Info("profile updated", "username", u.username, "new_username", next.Username)
	u.username, u.password, u.email = next.Username, next.Password, next.Email
	return true, nil
}

// Logout writes the current state back and ends the session.
func (u *User) Logout() error {
	if err := u.save(); err != nil {
		return err
	}
	u.accounts.logger.Info("logged out", "username", u.username)
	return nil
}

// record serializes the user into an [models.Account].
func (u *User) record() (models.Account, error) {
	collection, err := models.EncodeSongs(u.collection)
	if err != nil {
		return models.Account{}, err
	}
	playlists, err := models.EncodePlaylists(u.playlists)
	if err != nil {
		return models.Account{}, err
	}
	favorites, err := models.EncodeSongs(u.favorites)
	if err != nil {
		return models.Account{}, err
	}

	return models.Account{
		ID:         u.id,
		Username:   u.username,
		Password:   u.password,
		Email:      u.email,
		Collection: collection,
		Playlists:  playlists,
		Favorites:  favorites,
	}, nil
}

// libraryState is the in-memory library as it was before a change.
// Slice headers are enough: changes append or allocate, never write over existing elements.
type libraryState struct {
	collection []models.Song
	favorites  []models.Song
	playlists  []*models.Playlist
	songs      [][]models.Song
}

// commit applies change and persists it. When the save fails the change is undone,
// including edits to playlists the [player.Player] may hold.
func (u *User) commit(change func()) error {
	prev := libraryState{collection: u.collection, favorites: u.favorites, playlists: u.playlists}
	for _, p := range u.playlists {
		prev.songs = append(prev.songs, p.Songs)
	}

	change()
	if err := u.save(); err != nil {
		u.collection, u.favorites, u.playlists = prev.collection, prev.favorites, prev.playlists
		for i, p := range prev.playlists {
			p.Songs = prev.songs[i]
		}
		u.accounts.logger.Warn("change not saved, reverted", "username", u.username, "error", err)
		return err
	}
	return nil
}

// save loads every record, replaces this user's record by username and writes the set back.
func (u *User) save() error {
	record, err := u.record()
	if err != nil {
		return err
	}

	accounts, err := u.accounts.load()
	if err != nil {
		return err
	}

	i := repositories.IndexOf(accounts, u.username)
	if i < 0 {
		return fmt.Errorf("%w: %s", shared.ErrAccountNotFound, u.username)
	}
	accounts[i] = record

	return u.accounts.save(accounts)
}
