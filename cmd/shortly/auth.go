package main

import (
	"errors"
	"fmt"

	"shortly-web/internal/api"
	"shortly-web/internal/session"
	"shortly-web/internal/views"

	"github.com/spf13/cobra"
)

type credentialFlags struct {
	email    string
	password string
}

func (f *credentialFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.email, "email", "e", "", "account email (prompted when empty)")
	cmd.Flags().StringVarP(&f.password, "password", "p", "", "account password (prompted when empty)")
}

// read fills the credentials from flags and prompts. confirm asks for the
// password twice unless it came from a flag.
func (f *credentialFlags) read(a *app, cmd *cobra.Command, confirm bool) (views.Credentials, error) {
	var creds views.Credentials
	var err error
	if creds.Email, err = a.prompt(cmd, "Email", f.email); err != nil {
		return creds, err
	}
	if creds.Password, err = a.promptSecret(cmd, "Password", f.password); err != nil {
		return creds, err
	}
	creds.Confirm = creds.Password
	if confirm && f.password == "" {
		if creds.Confirm, err = a.promptSecret(cmd, "Confirm password", ""); err != nil {
			return creds, err
		}
	}
	return creds, nil
}

func authError(err error) error {
	switch {
	case errors.Is(err, session.ErrNotValidated):
		return errors.New("could not confirm the session, please sign in again")
	case !api.IsAPIError(err):
		return err
	}
	return errors.New(views.ErrorMessage(err))
}

func newLoginCmd(a *app) *cobra.Command {
	var flags credentialFlags
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := flags.read(a, cmd, false)
			if err != nil {
				return err
			}
			if msg := creds.Validate(false); msg != "" {
				return errors.New(msg)
			}
			if err := a.store.Login(cmd.Context(), creds.Email, creds.Password); err != nil {
				if ctxErr := cmd.Context().Err(); ctxErr != nil {
					return ctxErr
				}
				return authError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", creds.Email)
			return nil
		},
	}
	flags.bind(cmd)
	return cmd
}

func newRegisterCmd(a *app) *cobra.Command {
	var flags credentialFlags
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := flags.read(a, cmd, true)
			if err != nil {
				return err
			}
			if msg := creds.Validate(true); msg != "" {
				return errors.New(msg)
			}
			if err := a.store.Register(cmd.Context(), creds.Email, creds.Password); err != nil {
				if ctxErr := cmd.Context().Err(); ctxErr != nil {
					return ctxErr
				}
				return authError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account created. Signed in as %s\n", creds.Email)
			return nil
		},
	}
	flags.bind(cmd)
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Logout(cmd.Context()); err != nil {
				return fmt.Errorf("failed to remove token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			nav, err := views.LoadNav(cmd.Context(), a.store)
			if err != nil {
				return err
			}
			if !nav.Authenticated {
				return errNotSignedIn
			}
			if nav.Admin {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (admin)\n", nav.User.Email)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), nav.User.Email)
			return nil
		},
	}
}
