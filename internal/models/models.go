// package models defines the data model for the music library
package models

import (
	"fmt"
	"strings"
)

// Song is a single track. Two songs are the same song when their titles match.
type Song struct {
	Title    string
	Artist   string
	Album    string
	Genre    string
	Duration float64 // minutes
}

// NewSong creates a [Song] from its fields.
func NewSong(title, artist, album, genre string, duration float64) Song {
	return Song{Title: title, Artist: artist, Album: album, Genre: genre, Duration: duration}
}

// Equal reports whether s and other share a title. Artist, album, genre and duration are ignored.
func (s Song) Equal(other Song) bool {
	return s.Title == other.Title
}

func (s Song) String() string {
	return fmt.Sprintf("%s by %s from the album %s (%s) - %v", s.Title, s.Artist, s.Album, s.Genre, s.Duration)
}

// ContainsSong reports whether songs holds a song equal to s.
func ContainsSong(songs []Song, s Song) bool {
	for _, existing := range songs {
		if existing.Equal(s) {
			return true
		}
	}
	return false
}

// RemoveByTitle returns songs without any entry titled title, and how many were dropped.
func RemoveByTitle(songs []Song, title string) ([]Song, int) {
	kept := make([]Song, 0, len(songs))
	for _, s := range songs {
		if s.Title != title {
			kept = append(kept, s)
		}
	}
	return kept, len(songs) - len(kept)
}

// SearchByTitle returns the songs whose title contains keyword, ignoring case.
func SearchByTitle(songs []Song, keyword string) []Song {
	keyword = strings.ToLower(keyword)
	results := []Song{}
	for _, s := range songs {
		if strings.Contains(strings.ToLower(s.Title), keyword) {
			results = append(results, s)
		}
	}
	return results
}

// Playlist is a named, ordered collection of songs. Order is playback order.
type Playlist struct {
	Name  string
	Songs []Song
}

// NewPlaylist creates an empty [Playlist].
func NewPlaylist(name string) *Playlist {
	return &Playlist{Name: name, Songs: []Song{}}
}

// AddSong appends s to the end of the playlist. Duplicates are allowed.
func (p *Playlist) AddSong(s Song) {
	p.Songs = append(p.Songs, s)
}

// RemoveSong drops every song titled title and returns how many were removed.
func (p *Playlist) RemoveSong(title string) int {
	var n int
	p.Songs, n = RemoveByTitle(p.Songs, title)
	return n
}

// Len returns the number of songs.
func (p *Playlist) Len() int {
	return len(p.Songs)
}

// IsEmpty reports whether the playlist has no songs.
func (p *Playlist) IsEmpty() bool {
	return p.Len() == 0
}

// TotalDuration sums the song durations in minutes.
func (p *Playlist) TotalDuration() float64 {
	var total float64
	for _, s := range p.Songs {
		total += s.Duration
	}
	return total
}

// Equal compares name and the ordered song list.
func (p *Playlist) Equal(other *Playlist) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.Name != other.Name || len(p.Songs) != len(other.Songs) {
		return false
	}
	for i := range p.Songs {
		if !p.Songs[i].Equal(other.Songs[i]) {
			return false
		}
	}
	return true
}

// Account is one row of the account store: scalar credentials plus three serialized collections.
//
// Passwords are stored in plaintext.
type Account struct {
	ID         string
	Username   string
	Password   string
	Email      string
	Collection string // JSON list of songs
	Playlists  string // JSON list of playlists
	Favorites  string // JSON list of songs
}

// NewAccount creates an [Account] with empty collections.
func NewAccount(id, username, password, email string) Account {
	return Account{
		ID:         id,
		Username:   username,
		Password:   password,
		Email:      email,
		Collection: EmptyCollection,
		Playlists:  EmptyCollection,
		Favorites:  EmptyCollection,
	}
}

// Validate checks the fields every stored record must carry.
func (a Account) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("account id is required")
	}
	if a.Username == "" {
		return fmt.Errorf("username is required")
	}
	if a.Email == "" {
		return fmt.Errorf("email is required")
	}
	return nil
}
