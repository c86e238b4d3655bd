package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/medley/internal/formatter"
	"github.com/desertthunder/medley/internal/library"
	"github.com/desertthunder/medley/internal/models"
	"github.com/desertthunder/medley/internal/shared"
)

func (r *Runner) writeSongs(cmd *cli.Command, songs []models.Song, empty string) error {
	if cmd.Bool("json") {
		return r.writeJSON(songs, cmd.Bool("pretty"))
	}
	return formatter.SongList(r.output, songs, empty)
}

// songFromFlags reads a song from --title, --artist, --album, --genre and --duration.
//
// Missing text fields are prompted for; only the title is required.
func (r *Runner) songFromFlags(cmd *cli.Command) (models.Song, error) {
	title, err := r.value(cmd.String("title"), "Title", "title")
	if err != nil {
		return models.Song{}, err
	}

	song := models.NewSong(title, cmd.String("artist"), cmd.String("album"), cmd.String("genre"), cmd.Float("duration"))
	if !r.prompter.Interactive() {
		return song, nil
	}

	for _, field := range []struct {
		flag  string
		title string
		dst   *string
	}{
		{"artist", "Artist", &song.Artist},
		{"album", "Album", &song.Album},
		{"genre", "Genre", &song.Genre},
	} {
		if cmd.IsSet(field.flag) {
			continue
		}
		if *field.dst, err = r.prompter.Input(field.title, nil); err != nil {
			return models.Song{}, err
		}
	}

	if !cmd.IsSet("duration") {
		raw, err := r.prompter.Input("Duration (minutes)", validDuration)
		if err != nil {
			return models.Song{}, err
		}
		if song.Duration, err = parseDuration(raw); err != nil {
			return models.Song{}, err
		}
	}
	return song, nil
}

func parseDuration(raw string) (float64, error) {
	d, err := strconv.ParseFloat(raw, 64)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: duration must be a non-negative number of minutes", shared.ErrInvalidArgument)
	}
	return d, nil
}

func validDuration(raw string) error {
	_, err := parseDuration(raw)
	return err
}

// CollectionList prints every collected song.
func (r *Runner) CollectionList(ctx context.Context, cmd *cli.Command, user *library.User) error {
	return r.writeSongs(cmd, user.Collection(), "No songs in the collection.")
}

// CollectionAdd adds a song to the collection.
func (r *Runner) CollectionAdd(ctx context.Context, cmd *cli.Command, user *library.User) error {
	song, err := r.songFromFlags(cmd)
	if err != nil {
		return err
	}
	if err := user.AddSongToCollection(song); err != nil {
		return err
	}

	r.writePlain("✓ Added %s to the collection\n", song.Title)
	return nil
}

// CollectionRemove drops songs titled --title from the collection.
func (r *Runner) CollectionRemove(ctx context.Context, cmd *cli.Command, user *library.User) error {
	title, err := r.value(cmd.String("title"), "Title", "title")
	if err != nil {
		return err
	}

	n, err := user.RemoveSongFromCollection(title)
	if err != nil {
		return err
	}
	if n == 0 {
		r.writePlain("No song titled %s in the collection.\n", title)
		return nil
	}
	r.writePlain("✓ Removed %d song(s) titled %s\n", n, title)
	return nil
}

// CollectionSearch lists collected songs whose title contains --keyword.
func (r *Runner) CollectionSearch(ctx context.Context, cmd *cli.Command, user *library.User) error {
	keyword, err := r.value(cmd.String("keyword"), "Keyword", "keyword")
	if err != nil {
		return err
	}
	return formatter.SongList(r.output, user.SearchSongs(keyword), "No songs found.")
}

// CollectionFilter lists collected songs matching every given attribute.
func (r *Runner) CollectionFilter(ctx context.Context, cmd *cli.Command, user *library.User) error {
	filter := library.SongFilter{
		Artist: cmd.String("artist"),
		Album:  cmd.String("album"),
		Genre:  cmd.String("genre"),
	}
	if filter == (library.SongFilter{}) {
		return fmt.Errorf("%w: one of --artist, --album or --genre", shared.ErrMissingArgument)
	}
	return formatter.SongList(r.output, user.FilterSongs(filter), "No songs found.")
}

// PlaylistList prints every playlist with its songs.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command, user *library.User) error {
	if cmd.Bool("json") {
		return r.writeJSON(user.Playlists(), cmd.Bool("pretty"))
	}
	return formatter.PlaylistList(r.output, user.Playlists())
}

// PlaylistCreate adds an empty playlist named --name.
func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command, user *library.User) error {
	name, err := r.value(cmd.String("name"), "Playlist name", "name")
	if err != nil {
		return err
	}
	if _, err := user.CreatePlaylist(name); err != nil {
		return err
	}

	r.writePlain("✓ Playlist %s created\n", name)
	return nil
}

// PlaylistDelete removes the playlist named --name.
func (r *Runner) PlaylistDelete(ctx context.Context, cmd *cli.Command, user *library.User) error {
	name, err := r.value(cmd.String("name"), "Playlist name", "name")
	if err != nil {
		return err
	}

	n, err := user.DeletePlaylist(name)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, name)
	}
	r.writePlain("✓ Playlist %s deleted\n", name)
	return nil
}

// PlaylistAdd appends the collected song titled --title to playlist --name.
func (r *Runner) PlaylistAdd(ctx context.Context, cmd *cli.Command, user *library.User) error {
	name, err := r.value(cmd.String("name"), "Playlist name", "name")
	if err != nil {
		return err
	}
	title, err := r.value(cmd.String("title"), "Title", "title")
	if err != nil {
		return err
	}

	song, err := user.FindSong(title)
	if err != nil {
		return err
	}
	if err := user.AddSongToPlaylist(name, song); err != nil {
		return err
	}

	r.writePlain("✓ Added %s to %s\n", title, name)
	return nil
}

// PlaylistRemove drops songs titled --title from playlist --name.
func (r *Runner) PlaylistRemove(ctx context.Context, cmd *cli.Command, user *library.User) error {
	name, err := r.value(cmd.String("name"), "Playlist name", "name")
	if err != nil {
		return err
	}
	title, err := r.value(cmd.String("title"), "Title", "title")
	if err != nil {
		return err
	}

	n, err := user.RemoveSongFromPlaylist(name, title)
	if err != nil {
		return err
	}
	if n == 0 {
		r.writePlain("No song titled %s in %s.\n", title, name)
		return nil
	}
	r.writePlain("✓ Removed %d song(s) titled %s from %s\n", n, title, name)
	return nil
}

// PlaylistExport writes playlist --name to --output in --format.
func (r *Runner) PlaylistExport(ctx context.Context, cmd *cli.Command, user *library.User) error {
	name, err := r.value(cmd.String("name"), "Playlist name", "name")
	if err != nil {
		return err
	}
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	pl, err := user.Playlist(name)
	if err != nil {
		return err
	}

	path, err := formatter.WriteExport(pl, format, cmd.String("output"))
	if err != nil {
		return err
	}

	r.logger.Info("playlist exported", "playlist", name, "format", format, "path", path)
	r.writePlain("✓ Exported %s (%d songs) to %s\n", name, pl.Len(), path)
	return nil
}

// FavoritesList prints the favorite songs.
func (r *Runner) FavoritesList(ctx context.Context, cmd *cli.Command, user *library.User) error {
	return r.writeSongs(cmd, user.Favorites(), "No favorite songs.")
}

// FavoritesAdd marks the collected song titled --title as a favorite.
func (r *Runner) FavoritesAdd(ctx context.Context, cmd *cli.Command, user *library.User) error {
	title, err := r.value(cmd.String("title"), "Title", "title")
	if err != nil {
		return err
	}

	song, err := user.FindSong(title)
	if err != nil {
		return err
	}
	if err := user.AddSongToFavorites(song); err != nil {
		return err
	}

	r.writePlain("✓ Added %s to favorites\n", title)
	return nil
}

// FavoritesRemove drops songs titled --title from favorites.
func (r *Runner) FavoritesRemove(ctx context.Context, cmd *cli.Command, user *library.User) error {
	title, err := r.value(cmd.String("title"), "Title", "title")
	if err != nil {
		return err
	}

	n, err := user.RemoveSongFromFavorites(title)
	if err != nil {
		return err
	}
	if n == 0 {
		r.writePlain("No favorite titled %s.\n", title)
		return nil
	}
	r.writePlain("✓ Removed %s from favorites\n", title)
	return nil
}
