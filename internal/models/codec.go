package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EmptyCollection is the serialized form of an empty song or playlist list.
const EmptyCollection = "[]"

// songRecord is the serialized shape of a [Song].
type songRecord struct {
	Title    string  `json:"title"`
	Artist   string  `json:"artist"`
	Album    string  `json:"album"`
	Genre    string  `json:"genre"`
	Duration float64 `json:"duration"`
}

// playlistRecord is the serialized shape of a [Playlist].
type playlistRecord struct {
	Name  string       `json:"name"`
	Songs []songRecord `json:"songs"`
}

func toSongRecords(songs []Song) []songRecord {
	records := make([]songRecord, len(songs))
	for i, s := range songs {
		records[i] = songRecord(s)
	}
	return records
}

func fromSongRecords(records []songRecord) []Song {
	songs := make([]Song, len(records))
	for i, r := range records {
		songs[i] = Song(r)
	}
	return songs
}

// EncodeSongs serializes songs for an [Account] field.
func EncodeSongs(songs []Song) (string, error) {
	data, err := json.Marshal(toSongRecords(songs))
	if err != nil {
		return "", fmt.Errorf("failed to encode songs: %w", err)
	}
	return string(data), nil
}

// DecodeSongs parses an [Account] song field. A blank field decodes to an empty list.
func DecodeSongs(data string) ([]Song, error) {
	if strings.TrimSpace(data) == "" {
		return []Song{}, nil
	}

	var records []songRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, fmt.Errorf("failed to decode songs: %w", err)
	}
	return fromSongRecords(records), nil
}

// EncodePlaylists serializes playlists for an [Account] field.
func EncodePlaylists(playlists []*Playlist) (string, error) {
	records := make([]playlistRecord, len(playlists))
	for i, p := range playlists {
		records[i] = playlistRecord{Name: p.Name, Songs: toSongRecords(p.Songs)}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("failed to encode playlists: %w", err)
	}
	return string(data), nil
}

// DecodePlaylists parses an [Account] playlist field. A blank field decodes to an empty list.
func DecodePlaylists(data string) ([]*Playlist, error) {
	if strings.TrimSpace(data) == "" {
		return []*Playlist{}, nil
	}

	var records []playlistRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, fmt.Errorf("failed to decode playlists: %w", err)
	}

	playlists := make([]*Playlist, len(records))
	for i, r := range records {
		playlists[i] = &Playlist{Name: r.Name, Songs: fromSongRecords(r.Songs)}
	}
	return playlists, nil
}
