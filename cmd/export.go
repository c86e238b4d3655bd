package main

import (
	"context"

	"github.com/charmbracelet/huh/spinner"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/medley/internal/formatter"
	"github.com/desertthunder/medley/internal/library"
)

// ExportLibrary writes every playlist, the collection and favorites into --dir with a manifest.json.
func (r *Runner) ExportLibrary(ctx context.Context, cmd *cli.Command, user *library.User) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	var result *formatter.LibraryExportResult
	export := func(context.Context) error {
		var err error
		result, err = formatter.WriteLibraryExport(user, format, cmd.String("dir"))
		return err
	}

	if r.prompter.Interactive() {
		err = spinner.New().Title("Exporting library...").Context(ctx).ActionWithErr(export).Run()
	} else {
		err = export(ctx)
	}
	if err != nil {
		return err
	}

	r.logger.Info("library exported", "username", user.Username(), "format", format, "dir", result.Directory)

	r.writePlainHeader("Export Complete")
	r.writePlain("Directory: %s\n", result.Directory)
	r.writePlain("Files:     %d\n", len(result.Files))
	r.writePlain("Manifest:  %s\n", result.ManifestFile)
	return nil
}
