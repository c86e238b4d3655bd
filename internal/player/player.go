// package player implements playback state over a loaded playlist.
//
// The player never owns its playlist: it holds a pointer into the logged-in user's playlists,
// so edits made through the user are visible on the next [Player.Play].
package player

import (
	"errors"
	"fmt"

	"github.com/desertthunder/medley/internal/models"
)

var (
	ErrNoPlaylist      = errors.New("no playlist loaded")
	ErrEmptyPlaylist   = errors.New("playlist is empty")
	ErrIndexOutOfRange = errors.New("song index out of range")
)

// State is the playback state.
type State int

const (
	Stopped State = iota // initial; nothing current
	Paused               // a playlist is loaded, nothing is playing
	Playing
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Paused:
		return "paused"
	case Playing:
		return "playing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Player steps through a [models.Playlist].
//
// The current song points at its entry in the loaded playlist. If the playlist's songs are
// replaced afterwards it keeps pointing at the old entry until the next play.
type Player struct {
	playlist    *models.Playlist
	currentSong *models.Song
	index       int
	isPlaying   bool
	state       State
}

// New creates a stopped [Player] with nothing loaded.
func New() *Player {
	return &Player{}
}

// Load makes pl the current playlist and rewinds to its first song without playing.
//
// A nil or empty playlist is rejected and the player is left as it was.
func (p *Player) Load(pl *models.Playlist) error {
	if pl == nil {
		return ErrNoPlaylist
	}
	if pl.IsEmpty() {
		return fmt.Errorf("%w: %s", ErrEmptyPlaylist, pl.Name)
	}

	p.playlist = pl
	p.index = 0
	p.currentSong = nil
	p.isPlaying = false
	p.state = Paused
	return nil
}

// Play starts the song at the current index.
func (p *Player) Play() (*models.Song, error) {
	if err := p.ready(); err != nil {
		return nil, err
	}
	if p.index < 0 || p.index >= p.playlist.Len() {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, p.index, p.playlist.Len())
	}

	p.currentSong = &p.playlist.Songs[p.index]
	p.isPlaying = true
	p.state = Playing
	return p.currentSong, nil
}

// Pause stops playback but keeps the current song and playlist.
// With no current song the state is left alone, so a stopped player stays stopped.
func (p *Player) Pause() {
	p.isPlaying = false
	if p.currentSong != nil {
		p.state = Paused
	}
}

// Stop clears the current song and rewinds. The playlist stays loaded.
func (p *Player) Stop() {
	p.currentSong = nil
	p.isPlaying = false
	p.index = 0
	p.state = Stopped
}

// Next advances to the following song, wrapping to the first, and plays it.
func (p *Player) Next() (*models.Song, error) {
	return p.step(1)
}

// Previous moves back one song, wrapping to the last, and plays it.
func (p *Player) Previous() (*models.Song, error) {
	return p.step(-1)
}

// Seek moves to index without changing whether the player is playing.
func (p *Player) Seek(index int) error {
	if err := p.ready(); err != nil {
		return err
	}
	if index < 0 || index >= p.playlist.Len() {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, p.playlist.Len())
	}
	p.index = index
	if p.isPlaying {
		_, err := p.Play()
		return err
	}
	return nil
}

func (p *Player) step(delta int) (*models.Song, error) {
	if err := p.ready(); err != nil {
		return nil, err
	}

	n := p.playlist.Len()
	p.index = ((p.index+delta)%n + n) % n
	return p.Play()
}

func (p *Player) ready() error {
	if p.playlist == nil {
		return ErrNoPlaylist
	}
	if p.playlist.IsEmpty() {
		return fmt.Errorf("%w: %s", ErrEmptyPlaylist, p.playlist.Name)
	}
	return nil
}

// CurrentSong returns the song being played or paused, or nil.
func (p *Player) CurrentSong() *models.Song { return p.currentSong }

// IsPlaying reports whether a song is playing.
func (p *Player) IsPlaying() bool { return p.isPlaying }

// Playlist returns the loaded playlist, or nil.
func (p *Player) Playlist() *models.Playlist { return p.playlist }

// Index returns the zero-based cursor into the playlist.
func (p *Player) Index() int { return p.index }

// State returns the playback state.
func (p *Player) State() State { return p.state }
