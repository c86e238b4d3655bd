package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/medley/internal/library"
	"github.com/desertthunder/medley/internal/shared"
)

// sessionFlags identify the account a library command acts on.
func sessionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "username",
			Aliases: []string{"u"},
			Usage:   "Account username",
			Sources: cli.EnvVars("MEDLEY_USERNAME"),
		},
		&cli.StringFlag{
			Name:    "password",
			Aliases: []string{"p"},
			Usage:   "Account password",
			Sources: cli.EnvVars("MEDLEY_PASSWORD"),
		},
	}
}

// withCorrections calls attempt until it succeeds, fails for a reason input can't fix,
// or session.max_attempts runs out. Between attempts correct obtains new input.
func (r *Runner) withCorrections(attempt func() error, correct func(error) error) error {
	var err error
	for i := 0; i < r.config.Session.MaxAttempts; i++ {
		if err = attempt(); err == nil || !library.NeedsCorrection(err) {
			return err
		}
		if !r.prompter.Interactive() || i == r.config.Session.MaxAttempts-1 {
			break
		}

		r.logger.Warn("input rejected", "error", err, "attempt", i+1)
		if cerr := correct(err); cerr != nil {
			return cerr
		}
	}
	return err
}

// value returns current, or prompts for it when blank and a terminal is attached.
func (r *Runner) value(current, title, flag string) (string, error) {
	if current != "" {
		return current, nil
	}
	if !r.prompter.Interactive() {
		return "", fmt.Errorf("%w: --%s", shared.ErrMissingArgument, flag)
	}
	return r.prompter.Input(title, notEmpty)
}

func (r *Runner) secret(current, title, flag string) (string, error) {
	if current != "" {
		return current, nil
	}
	if !r.prompter.Interactive() {
		return "", fmt.Errorf("%w: --%s", shared.ErrMissingArgument, flag)
	}
	return r.prompter.Password(title)
}

// login authenticates from flags, re-prompting for credentials on rejection.
func (r *Runner) login(cmd *cli.Command) (*library.User, error) {
	svc, err := r.Accounts()
	if err != nil {
		return nil, err
	}

	username, err := r.value(cmd.String("username"), "Username", "username")
	if err != nil {
		return nil, err
	}
	password, err := r.secret(cmd.String("password"), "Password", "password")
	if err != nil {
		return nil, err
	}

	var user *library.User
	err = r.withCorrections(func() error {
		u, err := svc.Login(username, password)
		user = u
		return err
	}, func(error) error {
		r.writePlain("Invalid username or password. Please try again.\n")
		if username, err = r.prompter.Input("Username", notEmpty); err != nil {
			return err
		}
		password, err = r.prompter.Password("Password")
		return err
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("session started", "username", user.Username())
	return user, nil
}

// withSession wraps a library action in login and logout.
func (r *Runner) withSession(fn func(ctx context.Context, cmd *cli.Command, user *library.User) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		user, err := r.login(cmd)
		if err != nil {
			return err
		}

		if err := fn(ctx, cmd, user); err != nil {
			return err
		}
		return user.Logout()
	}
}
