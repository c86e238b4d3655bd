package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/desertthunder/medley/internal/models"
	"github.com/desertthunder/medley/internal/shared"
)

var (
	_ list.Item = playlistItem{}
	_ list.Item = songItem{}
)

// playlistItem wraps [models.Playlist] to implement [list.Item].
type playlistItem struct {
	playlist *models.Playlist
}

func (i playlistItem) FilterValue() string { return i.playlist.Name }
func (i playlistItem) Title() string       { return i.playlist.Name }
func (i playlistItem) Description() string {
	return fmt.Sprintf("%d songs • %s", i.playlist.Len(), shared.FormatDuration(i.playlist.TotalDuration()))
}

// songItem wraps [models.Song] to implement [list.Item]; current marks the player's cursor.
type songItem struct {
	song    models.Song
	current bool
}

func (i songItem) FilterValue() string { return i.song.Title }
func (i songItem) Title() string {
	if i.current {
		return "▶ " + i.song.Title
	}
	return i.song.Title
}
func (i songItem) Description() string {
	desc := i.song.Artist
	if i.song.Album != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.song.Album)
	}
	return fmt.Sprintf("%s • %s", desc, shared.FormatDuration(i.song.Duration))
}

func playlistItems(playlists []*models.Playlist) []list.Item {
	items := make([]list.Item, len(playlists))
	for i, pl := range playlists {
		items[i] = playlistItem{playlist: pl}
	}
	return items
}

func songItems(pl *models.Playlist, current int) []list.Item {
	if pl == nil {
		return []list.Item{}
	}
	items := make([]list.Item, len(pl.Songs))
	for i, s := range pl.Songs {
		items[i] = songItem{song: s, current: i == current}
	}
	return items
}
