// package formatter renders songs and playlists as listings and export files (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/desertthunder/medley/internal/models"
	"github.com/desertthunder/medley/internal/shared"
)

// Format selects an export renderer.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// Formats lists the supported export formats.
var Formats = []Format{FormatCSV, FormatMarkdown, FormatText}

// ParseFormat resolves a format name. "md" and "txt" are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, s)
	}
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatCSV:
		return ".csv"
	case FormatMarkdown:
		return ".md"
	default:
		return ".txt"
	}
}

// Render renders pl in format f.
func (f Format) Render(pl *models.Playlist) ([]byte, error) {
	switch f {
	case FormatCSV:
		return ExportToCSV(pl)
	case FormatMarkdown:
		return ExportToMarkdown(pl)
	case FormatText:
		return ExportToText(pl)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, string(f))
	}
}

// ExportToCSV converts a playlist to CSV format with columns: Title, Artist, Album, Genre, Duration
func ExportToCSV(pl *models.Playlist) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Title", "Artist", "Album", "Genre", "Duration"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range pl.Songs {
		record := []string{
			song.Title,
			song.Artist,
			song.Album,
			song.Genre,
			strconv.FormatFloat(song.Duration, 'f', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a playlist to Markdown with a numbered track list
func ExportToMarkdown(pl *models.Playlist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", pl.Name))
	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n", pl.Len()))
	buf.WriteString(fmt.Sprintf("**Length**: %s\n\n", shared.FormatDuration(pl.TotalDuration())))

	buf.WriteString("## Tracks\n\n")
	for i, song := range pl.Songs {
		albumPart := ""
		if song.Album != "" {
			albumPart = fmt.Sprintf(" (%s)", song.Album)
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s [%s]\n", i+1, song.Artist, song.Title, albumPart, shared.FormatDuration(song.Duration)))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a playlist to plain text format
func ExportToText(pl *models.Playlist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", pl.Name))
	buf.WriteString(fmt.Sprintf("Tracks: %d (%s)\n\n", pl.Len(), shared.FormatDuration(pl.TotalDuration())))

	for i, song := range pl.Songs {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, song.Artist, song.Title))
	}

	return buf.Bytes(), nil
}

// Slug turns a playlist name into a file-safe base name.
func Slug(name string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			return unicode.ToLower(r)
		default:
			return '-'
		}
	}, strings.TrimSpace(name))

	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "playlist"
	}
	return slug
}

// WriteExport writes pl to path in format f.
//
// Defaults to {slug}{ext} in the working directory when path is empty.
func WriteExport(pl *models.Playlist, f Format, path string) (string, error) {
	if path == "" {
		path = Slug(pl.Name) + f.Extension()
	}

	data, err := f.Render(pl)
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", f, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

// Library is the read side of a logged-in user needed for a full export.
type Library interface {
	Username() string
	Collection() []models.Song
	Playlists() []*models.Playlist
	Favorites() []models.Song
}

// ManifestEntry describes one exported playlist.
type ManifestEntry struct {
	Name     string `json:"name"`
	File     string `json:"file"`
	Songs    int    `json:"songs"`
	Duration string `json:"duration"`
}

// Manifest is written as manifest.json next to a library export.
type Manifest struct {
	Username   string          `json:"username"`
	Format     Format          `json:"format"`
	ExportedAt time.Time       `json:"exported_at"`
	Collection int             `json:"collection"`
	Favorites  int             `json:"favorites"`
	Playlists  []ManifestEntry `json:"playlists"`
}

// LibraryExportResult contains the paths of files created by WriteLibraryExport
type LibraryExportResult struct {
	Directory    string
	Files        []string
	ManifestFile string
}

// WriteLibraryExport writes every playlist of lib into dir, plus the collection and favorites as
// pseudo-playlists and a manifest.json describing the export.
func WriteLibraryExport(lib Library, f Format, dir string) (*LibraryExportResult, error) {
	if dir == "" {
		dir = Slug(lib.Username()) + "-export"
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &LibraryExportResult{Directory: dir, Files: []string{}}
	manifest := Manifest{
		Username:   lib.Username(),
		Format:     f,
		ExportedAt: time.Now().UTC(),
		Collection: len(lib.Collection()),
		Favorites:  len(lib.Favorites()),
		Playlists:  []ManifestEntry{},
	}

	used := map[string]int{}
	write := func(pl *models.Playlist, base string) (string, error) {
		used[base]++
		if n := used[base]; n > 1 {
			base = fmt.Sprintf("%s-%d", base, n)
		}
		return WriteExport(pl, f, filepath.Join(dir, base+f.Extension()))
	}

	for _, pl := range lib.Playlists() {
		path, err := write(pl, Slug(pl.Name))
		if err != nil {
			return nil, err
		}
		result.Files = append(result.Files, path)
		manifest.Playlists = append(manifest.Playlists, ManifestEntry{
			Name:     pl.Name,
			File:     filepath.Base(path),
			Songs:    pl.Len(),
			Duration: shared.FormatDuration(pl.TotalDuration()),
		})
	}

	for _, extra := range []struct {
		name  string
		songs []models.Song
	}{
		{"_collection", lib.Collection()},
		{"_favorites", lib.Favorites()},
	} {
		pl := &models.Playlist{Name: strings.TrimPrefix(extra.name, "_"), Songs: extra.songs}
		path, err := WriteExport(pl, f, filepath.Join(dir, extra.name+f.Extension()))
		if err != nil {
			return nil, err
		}
		result.Files = append(result.Files, path)
	}

	data, err := shared.MarshalJSON(manifest, true)
	if err != nil {
		return nil, fmt.Errorf("failed to generate manifest: %w", err)
	}

	result.ManifestFile = filepath.Join(dir, "manifest.json")
	if err := os.WriteFile(result.ManifestFile, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}

	return result, nil
}

// SongList writes one numbered line per song, or empty when there are none.
func SongList(w io.Writer, songs []models.Song, empty string) error {
	if len(songs) == 0 {
		_, err := fmt.Fprintln(w, empty)
		return err
	}

	for i, song := range songs {
		if _, err := fmt.Fprintf(w, "%d. %s [%s]\n", i+1, song, shared.FormatDuration(song.Duration)); err != nil {
			return err
		}
	}
	return nil
}

// PlaylistList writes each playlist with its songs indented beneath it.
func PlaylistList(w io.Writer, playlists []*models.Playlist) error {
	if len(playlists) == 0 {
		_, err := fmt.Fprintln(w, "No playlists available.")
		return err
	}

	for _, pl := range playlists {
		if _, err := fmt.Fprintf(w, "Playlist: %s (%d songs, %s)\n", pl.Name, pl.Len(), shared.FormatDuration(pl.TotalDuration())); err != nil {
			return err
		}
		if pl.IsEmpty() {
			if _, err := fmt.Fprintf(w, "  No songs in playlist '%s'.\n", pl.Name); err != nil {
				return err
			}
			continue
		}
		for i, song := range pl.Songs {
			if _, err := fmt.Fprintf(w, "  %d. %s\n", i+1, song); err != nil {
				return err
			}
		}
	}
	return nil
}
