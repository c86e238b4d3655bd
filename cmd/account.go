package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/medley/internal/library"
	"github.com/desertthunder/medley/internal/shared"
)

// AccountCreate registers an account, re-prompting for the email while it is malformed or taken.
func (r *Runner) AccountCreate(ctx context.Context, cmd *cli.Command) error {
	svc, err := r.Accounts()
	if err != nil {
		return err
	}

	username, err := r.value(cmd.String("username"), "Username", "username")
	if err != nil {
		return err
	}
	password, err := r.secret(cmd.String("password"), "Password", "password")
	if err != nil {
		return err
	}
	email, err := r.value(cmd.String("email"), "Email", "email")
	if err != nil {
		return err
	}

	var user *library.User
	err = r.withCorrections(func() error {
		u, err := svc.CreateAccount(username, password, email)
		user = u
		return err
	}, func(reason error) error {
		email, err = r.correctEmail(reason)
		return err
	})
	if err != nil {
		return err
	}

	r.writePlain("✓ Account %s created\n", user.Username())
	return nil
}

func (r *Runner) correctEmail(reason error) (string, error) {
	if errors.Is(reason, shared.ErrEmailTaken) {
		r.writePlain("That email address is already in use.\n")
	} else {
		r.writePlain("That is not a valid email address.\n")
	}
	return r.prompter.Input("Email", notEmpty)
}

// AccountDelete removes the logged-in account. The session ends without a save.
func (r *Runner) AccountDelete(ctx context.Context, cmd *cli.Command) error {
	user, err := r.login(cmd)
	if err != nil {
		return err
	}

	if !cmd.Bool("yes") {
		if !r.prompter.Interactive() {
			return fmt.Errorf("%w: pass --yes to delete without a prompt", shared.ErrMissingArgument)
		}
		ok, err := r.prompter.Confirm(fmt.Sprintf("Delete account %s and its library?", user.Username()))
		if err != nil {
			return err
		}
		if !ok {
			r.writePlain("Nothing deleted.\n")
			return nil
		}
	}

	svc, err := r.Accounts()
	if err != nil {
		return err
	}
	deleted, err := svc.DeleteAccount(user.Username())
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: %s", shared.ErrAccountNotFound, user.Username())
	}

	r.writePlain("✓ Account %s deleted\n", user.Username())
	return nil
}

// ForgotUsername prints the username registered to --email.
func (r *Runner) ForgotUsername(ctx context.Context, cmd *cli.Command) error {
	svc, err := r.Accounts()
	if err != nil {
		return err
	}

	email, err := r.value(cmd.String("email"), "Email", "email")
	if err != nil {
		return err
	}

	username, err := svc.ForgotUsername(email)
	if err != nil {
		return err
	}

	r.writePlain("Your username is: %s\n", username)
	return nil
}

// ForgotPassword resets the password of the account matching --username and --email.
func (r *Runner) ForgotPassword(ctx context.Context, cmd *cli.Command) error {
	svc, err := r.Accounts()
	if err != nil {
		return err
	}

	username, err := r.value(cmd.String("username"), "Username", "username")
	if err != nil {
		return err
	}
	email, err := r.value(cmd.String("email"), "Email", "email")
	if err != nil {
		return err
	}

	password, err := svc.ForgotPassword(username, email)
	if err != nil {
		return err
	}

	r.writePlain("Your new password is: %s\n", password)
	return nil
}

// Profile prints the account's credentials and library totals.
func (r *Runner) Profile(ctx context.Context, cmd *cli.Command, user *library.User) error {
	profile := user.Profile()

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{
			"id":         profile.ID,
			"username":   profile.Username,
			"email":      profile.Email,
			"collection": len(user.Collection()),
			"playlists":  len(user.Playlists()),
			"favorites":  len(user.Favorites()),
		}, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Profile")
	r.writePlain("Username:   %s\n", profile.Username)
	r.writePlain("Email:      %s\n", profile.Email)
	r.writePlain("ID:         %s\n", profile.ID)
	r.writePlain("Collection: %d songs\n", len(user.Collection()))
	r.writePlain("Playlists:  %d\n", len(user.Playlists()))
	r.writePlain("Favorites:  %d songs\n", len(user.Favorites()))
	return nil
}

// EditProfile applies --new-username, --new-password and --new-email in a single write.
func (r *Runner) EditProfile(ctx context.Context, cmd *cli.Command, user *library.User) error {
	changes := library.ProfileChanges{
		Username: cmd.String("new-username"),
		Password: cmd.String("new-password"),
		Email:    cmd.String("new-email"),
	}
	if changes == (library.ProfileChanges{}) {
		return fmt.Errorf("%w: one of --new-username, --new-password or --new-email", shared.ErrMissingArgument)
	}

	var changed bool
	err := r.withCorrections(func() error {
		var err error
		changed, err = user.EditProfile(changes)
		return err
	}, func(reason error) error {
		email, err := r.correctEmail(reason)
		changes.Email = email
		return err
	})
	if err != nil {
		return err
	}

	if !changed {
		r.writePlain("Nothing to change.\n")
		return nil
	}
	r.writePlain("✓ Profile updated for %s\n", user.Username())
	return nil
}
