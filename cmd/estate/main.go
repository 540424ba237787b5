package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/estate/internal/config"
	"github.com/naveenspark/estate/internal/forms"
	"github.com/naveenspark/estate/internal/logging"
	"github.com/naveenspark/estate/internal/session"
	"github.com/naveenspark/estate/internal/tui"
	"github.com/naveenspark/estate/pkg/client"
	"github.com/naveenspark/estate/pkg/domain"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// app bundles what every subcommand needs.
type app struct {
	cfg   *config.Config
	log   *logging.SlogLogger
	store *session.Manager
	api   *client.Client

	closers []io.Closer
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	log, logFile, err := logging.OpenFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	store, closer, err := session.Open(ctx, cfg.SessionBackend, cfg.SessionPath)
	if err != nil {
		logFile.Close() //nolint:errcheck
		return nil, err
	}
	api := client.New(cfg.APIURL, store,
		client.WithTimeout(cfg.Timeout),
		client.WithLogger(log),
	)
	return &app{
		cfg:     cfg,
		log:     log,
		store:   store,
		api:     api,
		closers: []io.Closer{closer, logFile},
	}, nil
}

func (a *app) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	cmd := ""
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}
	if len(args) > 0 && cmd == "" {
		switch args[0] {
		case "--version", "-v":
			cmd = "version"
		case "--help", "-h":
			cmd = "help"
		}
	}

	switch cmd {
	case "version":
		fmt.Fprintln(stdout, "estate "+version)
		return nil
	case "help":
		printHelp(stdout)
		return nil
	case "", "login", "register", "logout", "whoami":
	default:
		printHelp(stdout)
		return fmt.Errorf("unknown command %q", cmd)
	}

	cfg, err := config.Load(args)
	if err != nil {
		return err
	}
	ctx := context.Background()
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close() //nolint:errcheck

	a.log.Debug(ctx, "starting", "command", cmd, "version", version, "api", cfg.APIURL, "session", cfg.SessionBackend)

	in := bufio.NewReader(stdin)
	switch cmd {
	case "login":
		return runLogin(ctx, a, in, stdout)
	case "register":
		return runRegister(ctx, a, in, stdout)
	case "logout":
		return runLogout(ctx, a, stdout)
	case "whoami":
		return runWhoami(ctx, a, stdout)
	}
	return runTUI(a)
}

func runTUI(a *app) error {
	m := tui.NewApp(tui.Deps{
		API:      a.api,
		Session:  a.store,
		Log:      a.log,
		PageSize: a.cfg.PageSize,
		Version:  version,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// errInvalidInput is returned when a prompt form fails local validation.
var errInvalidInput = errors.New("invalid input")

func printFieldErrors(w io.Writer, errs forms.FieldErrors) {
	for _, f := range errs.Fields() {
		printFailure(w, errs[f])
	}
}

func runLogin(ctx context.Context, a *app, in *bufio.Reader, w io.Writer) error {
	email, err := getSimpleText(in, "Email", w)
	if err != nil {
		return err
	}
	password, err := getPassword(w, "Пароль")
	if err != nil {
		return err
	}

	f := forms.Login{Email: email, Password: password}
	if errs := f.Validate(); !errs.OK() {
		printFieldErrors(w, errs)
		return errInvalidInput
	}

	tokens, err := a.api.Authenticate(ctx, domain.Credentials{Email: f.Email, Password: f.Password})
	if err != nil {
		a.log.Error(ctx, "login", "email", f.Email, "err", err)
		return fmt.Errorf("login: %w", err)
	}
	if err := a.store.Save(ctx, *tokens); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	printSuccess(w, "Вход выполнен.")
	return nil
}

func runRegister(ctx context.Context, a *app, in *bufio.Reader, w io.Writer) error {
	var f forms.Register
	var err error
	if f.FirstName, err = getSimpleText(in, "Имя", w); err != nil {
		return err
	}
	if f.SecondName, err = getSimpleText(in, "Фамилия", w); err != nil {
		return err
	}
	if f.Email, err = getSimpleText(in, "Email", w); err != nil {
		return err
	}
	if f.Password, err = getPassword(w, "Пароль"); err != nil {
		return err
	}

	if errs := f.Validate(); !errs.OK() {
		printFieldErrors(w, errs)
		return errInvalidInput
	}

	tokens, err := a.api.Register(ctx, domain.Registration{
		FirstName:  f.FirstName,
		SecondName: f.SecondName,
		Email:      f.Email,
		Password:   f.Password,
	})
	if err != nil {
		a.log.Error(ctx, "register", "email", f.Email, "err", err)
		printFailure(w, "Ошибка регистрации. Попробуйте снова.")
		return fmt.Errorf("register: %w", err)
	}
	if err := a.store.Save(ctx, *tokens); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	printSuccess(w, "Регистрация завершена.")
	return nil
}

func runLogout(ctx context.Context, a *app, w io.Writer) error {
	if !a.store.IsAuthenticated(ctx) {
		fmt.Fprintln(w, "Already logged out.")
		return nil
	}
	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	fmt.Fprintln(w, "Logged out.")
	return nil
}

func runWhoami(ctx context.Context, a *app, w io.Writer) error {
	id, err := session.NewIdentity(a.store).UserID(ctx)
	if err != nil {
		fmt.Fprintln(w, "not logged in")
		return nil
	}
	fmt.Fprintln(w, "user "+id)
	return nil
}
