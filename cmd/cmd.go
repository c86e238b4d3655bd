// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// App builds the root command. Before loads the config selected by --config.
func (r *Runner) App() *cli.Command {
	return &cli.Command{
		Name:    "medley",
		Usage:   "Manage a personal music library: collection, playlists, favorites and playback",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
				Sources: cli.EnvVars("MEDLEY_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "store",
				Usage: "Override the account store driver (sqlite, csv, postgres, memory)",
			},
		},
		Before:   r.configure,
		Commands: r.register(),
	}
}

func withSessionFlags(flags ...cli.Flag) []cli.Flag {
	return append(sessionFlags(), flags...)
}

func songFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Song title"},
		&cli.StringFlag{Name: "artist", Usage: "Song artist"},
		&cli.StringFlag{Name: "album", Usage: "Song album"},
		&cli.StringFlag{Name: "genre", Usage: "Song genre"},
		&cli.FloatFlag{Name: "duration", Usage: "Song duration in minutes"},
	}
}

func titleFlag() cli.Flag {
	return &cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Song title"}
}

func nameFlag() cli.Flag {
	return &cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Playlist name"}
}

func formatFlag(value string) cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Export format (csv, markdown, text)",
		Value:   value,
	}
}

func jsonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
		&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage: "Write a config file and initialize the configured account store",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "rollback", Usage: "Revert the newest sqlite migration instead"},
		},
		Action: r.Setup,
	}
}

func accountCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "account",
		Aliases: []string{"acct"},
		Usage:   "Create, recover, edit and delete accounts",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Register a new account",
				Flags: withSessionFlags(
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email"},
				),
				Action: r.AccountCreate,
			},
			{
				Name:  "delete",
				Usage: "Delete an account and its library",
				Flags: withSessionFlags(
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Skip the confirmation prompt"},
				),
				Action: r.AccountDelete,
			},
			{
				Name:  "forgot-username",
				Usage: "Look up the username registered to an email",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email"},
				},
				Action: r.ForgotUsername,
			},
			{
				Name:  "forgot-password",
				Usage: "Reset the password of an account to a generated one",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "Account username"},
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email"},
				},
				Action: r.ForgotPassword,
			},
			{
				Name:   "profile",
				Usage:  "Show account details",
				Flags:  withSessionFlags(jsonFlags()...),
				Action: r.withSession(r.Profile),
			},
			{
				Name:  "edit",
				Usage: "Change username, password or email",
				Flags: withSessionFlags(
					&cli.StringFlag{Name: "new-username", Usage: "New username"},
					&cli.StringFlag{Name: "new-password", Usage: "New password"},
					&cli.StringFlag{Name: "new-email", Usage: "New email"},
				),
				Action: r.withSession(r.EditProfile),
			},
		},
	}
}

func collectionCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "collection",
		Aliases: []string{"songs"},
		Usage:   "Manage the song collection",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List every song in the collection",
				Flags:  withSessionFlags(jsonFlags()...),
				Action: r.withSession(r.CollectionList),
			},
			{
				Name:   "add",
				Usage:  "Add a song to the collection",
				Flags:  withSessionFlags(songFlags()...),
				Action: r.withSession(r.CollectionAdd),
			},
			{
				Name:   "remove",
				Usage:  "Remove songs by title from the collection",
				Flags:  withSessionFlags(titleFlag()),
				Action: r.withSession(r.CollectionRemove),
			},
			{
				Name:  "search",
				Usage: "Search the collection by title",
				Flags: withSessionFlags(
					&cli.StringFlag{Name: "keyword", Aliases: []string{"k"}, Usage: "Case-insensitive title keyword"},
				),
				Action: r.withSession(r.CollectionSearch),
			},
			{
				Name:  "filter",
				Usage: "Filter the collection by artist, album or genre",
				Flags: withSessionFlags(
					&cli.StringFlag{Name: "artist", Usage: "Artist to match"},
					&cli.StringFlag{Name: "album", Usage: "Album to match"},
					&cli.StringFlag{Name: "genre", Usage: "Genre to match"},
				),
				Action: r.withSession(r.CollectionFilter),
			},
		},
	}
}

func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Manage playlists",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List playlists and their songs",
				Flags:  withSessionFlags(jsonFlags()...),
				Action: r.withSession(r.PlaylistList),
			},
			{
				Name:   "create",
				Usage:  "Create an empty playlist",
				Flags:  withSessionFlags(nameFlag()),
				Action: r.withSession(r.PlaylistCreate),
			},
			{
				Name:   "delete",
				Usage:  "Delete a playlist",
				Flags:  withSessionFlags(nameFlag()),
				Action: r.withSession(r.PlaylistDelete),
			},
			{
				Name:   "add",
				Usage:  "Add a song from the collection to a playlist",
				Flags:  withSessionFlags(nameFlag(), titleFlag()),
				Action: r.withSession(r.PlaylistAdd),
			},
			{
				Name:   "remove",
				Usage:  "Remove songs by title from a playlist",
				Flags:  withSessionFlags(nameFlag(), titleFlag()),
				Action: r.withSession(r.PlaylistRemove),
			},
			{
				Name:  "export",
				Usage: "Export a playlist to a file",
				Flags: withSessionFlags(
					nameFlag(),
					formatFlag("text"),
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output file path"},
				),
				Action: r.withSession(r.PlaylistExport),
			},
		},
	}
}

func favoritesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "favorites",
		Aliases: []string{"fav"},
		Usage:   "Manage favorite songs",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List favorite songs",
				Flags:  withSessionFlags(jsonFlags()...),
				Action: r.withSession(r.FavoritesList),
			},
			{
				Name:   "add",
				Usage:  "Mark a collection song as a favorite",
				Flags:  withSessionFlags(titleFlag()),
				Action: r.withSession(r.FavoritesAdd),
			},
			{
				Name:   "remove",
				Usage:  "Remove songs by title from favorites",
				Flags:  withSessionFlags(titleFlag()),
				Action: r.withSession(r.FavoritesRemove),
			},
		},
	}
}

func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the whole library (playlists, collection, favorites) to a directory",
		Flags: withSessionFlags(
			formatFlag("csv"),
			&cli.StringFlag{Name: "dir", Aliases: []string{"d"}, Usage: "Output directory"},
		),
		Action: r.withSession(r.ExportLibrary),
	}
}

func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "Browse playlists and control playback in the terminal UI",
		Flags: withSessionFlags(
			&cli.StringFlag{Name: "playlist", Usage: "Load this playlist on start"},
		),
		Action: r.withSession(r.Play),
	}
}

