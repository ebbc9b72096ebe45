package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"shortly-web/internal/api"
	"shortly-web/internal/clipboard"
	"shortly-web/internal/config"
	"shortly-web/internal/session"
	"shortly-web/internal/views"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errNotSignedIn = errors.New("not signed in, run `shortly login` first")

// app is the state shared by every command of one invocation
type app struct {
	cfg       *config.Config
	log       logrus.FieldLogger
	clipboard clipboard.Writer

	client *api.Client
	store  *session.Store
	in     *bufio.Reader
	// readSecret reads one line without echo. It stays nil when stdin is not a terminal.
	readSecret func() ([]byte, error)
}

func newApp(cfg *config.Config, log logrus.FieldLogger, cb clipboard.Writer) *app {
	return &app{cfg: cfg, log: log, clipboard: cb}
}

// setup builds the API client and the session store over the token file
func (a *app) setup(cmd *cobra.Command) {
	a.client = api.NewClient(a.cfg.APIURL, time.Duration(a.cfg.HTTPTimeoutSeconds)*time.Second)
	a.store = session.NewStore(a.client.Auth, session.NewFileTokenStore(a.cfg.TokenFile), a.log)
	a.in = bufio.NewReader(cmd.InOrStdin())
	if a.readSecret == nil {
		a.readSecret = terminalReader(cmd.InOrStdin())
	}
}

func terminalReader(in io.Reader) func() ([]byte, error) {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil
	}
	return func() ([]byte, error) {
		return term.ReadPassword(int(f.Fd()))
	}
}

func (a *app) close() {
	if a.store != nil {
		a.store.Close()
	}
}

// prompt reads one line for label unless value is already set
func (a *app) prompt(cmd *cobra.Command, label, value string) (string, error) {
	if value != "" {
		return value, nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ", label)
	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptSecret is prompt without echo when stdin is a terminal
func (a *app) promptSecret(cmd *cobra.Command, label, value string) (string, error) {
	if value != "" || a.readSecret == nil {
		return a.prompt(cmd, label, value)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ", label)
	secret, err := a.readSecret()
	fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	return string(secret), nil
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "shortly",
		Short:         "Create and manage short links from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.cfg.APIURL, "api-url", a.cfg.APIURL, "backend API base URL")
	root.PersistentFlags().StringVar(&a.cfg.TokenFile, "token-file", a.cfg.TokenFile, "file holding the bearer token")

	root.AddCommand(
		newRegisterCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newShortenCmd(a),
		newListCmd(a),
		newStatsCmd(a),
		newDeleteCmd(a),
		newAdminCmd(a),
	)
	return root
}

// gate turns a view outcome into the error a command reports
func gate(outcome views.Outcome) error {
	switch outcome {
	case views.OutcomeRedirectLogin:
		return errNotSignedIn
	case views.OutcomeDenied:
		return errors.New("access denied, admin privileges are required")
	}
	return nil
}

// failed reports an inline view message as a command error
func failed(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg == "" {
		return nil
	}
	return errors.New(msg)
}
