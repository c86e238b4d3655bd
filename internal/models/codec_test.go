package models

import (
	"strings"
	"testing"
)

func TestCodec(t *testing.T) {
	t.Run("songs round trip", func(t *testing.T) {
		songs := []Song{
			NewSong("Go", "X", "Y", "Pop", 3.5),
			NewSong("Stay", "Z", "W", "Rock", 4),
		}

		data, err := EncodeSongs(songs)
		if err != nil {
			t.Fatalf("EncodeSongs() error = %v", err)
		}

		decoded, err := DecodeSongs(data)
		if err != nil {
			t.Fatalf("DecodeSongs() error = %v", err)
		}

		if len(decoded) != len(songs) {
			t.Fatalf("expected %d songs, got %d", len(songs), len(decoded))
		}
		for i := range songs {
			if decoded[i] != songs[i] {
				t.Errorf("song %d: got %+v, want %+v", i, decoded[i], songs[i])
			}
		}
	})

	t.Run("playlists round trip", func(t *testing.T) {
		road := NewPlaylist("Road Trip")
		road.AddSong(NewSong("Go", "X", "Y", "Pop", 3.5))
		road.AddSong(NewSong("Stay", "Z", "W", "Rock", 4))
		playlists := []*Playlist{road, NewPlaylist("Empty")}

		data, err := EncodePlaylists(playlists)
		if err != nil {
			t.Fatalf("EncodePlaylists() error = %v", err)
		}

		decoded, err := DecodePlaylists(data)
		if err != nil {
			t.Fatalf("DecodePlaylists() error = %v", err)
		}

		if len(decoded) != len(playlists) {
			t.Fatalf("expected %d playlists, got %d", len(playlists), len(decoded))
		}
		for i := range playlists {
			if !decoded[i].Equal(playlists[i]) {
				t.Errorf("playlist %d: got %+v, want %+v", i, decoded[i], playlists[i])
			}
		}
		if decoded[1].Songs == nil {
			t.Error("empty playlist should decode to a non-nil song list")
		}
	})

	t.Run("empty collections encode as []", func(t *testing.T) {
		data, err := EncodeSongs(nil)
		if err != nil {
			t.Fatalf("EncodeSongs() error = %v", err)
		}
		if data != EmptyCollection {
			t.Errorf("expected %q, got %q", EmptyCollection, data)
		}

		data, err = EncodePlaylists([]*Playlist{})
		if err != nil {
			t.Fatalf("EncodePlaylists() error = %v", err)
		}
		if data != EmptyCollection {
			t.Errorf("expected %q, got %q", EmptyCollection, data)
		}
	})

	t.Run("blank fields decode to empty lists", func(t *testing.T) {
		songs, err := DecodeSongs("  ")
		if err != nil || len(songs) != 0 {
			t.Errorf("DecodeSongs(blank) = %v, %v", songs, err)
		}
		playlists, err := DecodePlaylists("")
		if err != nil || len(playlists) != 0 {
			t.Errorf("DecodePlaylists(blank) = %v, %v", playlists, err)
		}
	})

	t.Run("uses the fixed field names", func(t *testing.T) {
		data, err := EncodePlaylists([]*Playlist{{Name: "p", Songs: []Song{NewSong("t", "a", "al", "g", 1.25)}}})
		if err != nil {
			t.Fatalf("EncodePlaylists() error = %v", err)
		}
		want := `[{"name":"p","songs":[{"title":"t","artist":"a","album":"al","genre":"g","duration":1.25}]}]`
		if data != want {
			t.Errorf("got %s, want %s", data, want)
		}
	})

	t.Run("decodes legacy records", func(t *testing.T) {
		legacy := `[{"title": "Go", "artist": "X", "album": "Y", "genre": "Pop", "duration": 3.5}]`
		songs, err := DecodeSongs(legacy)
		if err != nil {
			t.Fatalf("DecodeSongs() error = %v", err)
		}
		if len(songs) != 1 || songs[0].Duration != 3.5 {
			t.Errorf("unexpected songs: %+v", songs)
		}
	})

	t.Run("malformed data", func(t *testing.T) {
		if _, err := DecodeSongs("{not json"); err == nil || !strings.Contains(err.Error(), "decode songs") {
			t.Errorf("expected decode error, got %v", err)
		}
		if _, err := DecodePlaylists(`{"name": "x"}`); err == nil {
			t.Error("expected decode error for an object instead of a list")
		}
	})
}
