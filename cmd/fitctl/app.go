package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/2beens/fitforge/internal/apiclient"
	"github.com/2beens/fitforge/internal/diets"
	"github.com/2beens/fitforge/internal/prefs"
	"github.com/2beens/fitforge/internal/session"
	"github.com/2beens/fitforge/internal/workouts"
)

var errUsage = errors.New("usage")

type app struct {
	apiURL       string
	prefs        *prefs.Store
	httpClient   *http.Client
	in           io.Reader
	out          io.Writer
	newTicker    session.TickerFactory
	restDuration time.Duration
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return a.login(ctx, rest)
	case "logout":
		return a.logout(ctx)
	case "whoami":
		return a.whoami(ctx)
	case "theme":
		return a.theme(ctx, rest)
	case "workouts":
		return a.workouts(ctx, rest)
	case "diets":
		return a.diets(ctx)
	case "chat":
		return a.chat(ctx, rest)
	case "run":
		if len(rest) != 1 {
			return errUsage
		}
		return a.runWorkout(ctx, rest[0])
	default:
		return errUsage
	}
}

func (a *app) client(ctx context.Context) (*apiclient.Client, error) {
	token, err := a.prefs.Get(ctx, prefs.KeyToken)
	if err != nil && !errors.Is(err, prefs.ErrNotFound) {
		return nil, err
	}
	return apiclient.New(a.apiURL, token, a.httpClient), nil
}

func (a *app) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	email := fs.String("email", "", "account email")
	password := fs.String("password", os.Getenv("FITFORGE_PASSWORD"), "account password (or FITFORGE_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	res, err := apiclient.New(a.apiURL, "", a.httpClient).Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	if err := a.prefs.SaveLogin(ctx, res.UID, res.Token); err != nil {
		return err
	}
	a.printf("signed in as %s\n", res.UID)
	return nil
}

// logout always forgets the local login, even when the server call fails.
func (a *app) logout(ctx context.Context) error {
	c, err := a.client(ctx)
	if err != nil {
		return err
	}

	logoutErr := c.Logout(ctx)
	if errors.Is(logoutErr, apiclient.ErrNotSignedIn) {
		a.printf("not signed in\n")
		return nil
	}
	if err := a.prefs.ClearLogin(ctx); err != nil {
		return err
	}
	if logoutErr != nil {
		return fmt.Errorf("signed out locally, server logout failed: %w", logoutErr)
	}
	a.printf("signed out\n")
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	uid, err := a.prefs.Get(ctx, prefs.KeyUID)
	if errors.Is(err, prefs.ErrNotFound) {
		a.printf("not signed in\n")
		return nil
	}
	if err != nil {
		return err
	}
	a.printf("%s\n", uid)
	return nil
}

func (a *app) theme(ctx context.Context, args []string) error {
	var (
		mode string
		err  error
	)
	switch {
	case len(args) == 0:
		mode, err = a.prefs.ThemeMode(ctx)
	case args[0] == "toggle":
		mode, err = a.prefs.ToggleTheme(ctx)
	default:
		mode = args[0]
		err = a.prefs.SetThemeMode(ctx, mode)
	}
	if err != nil {
		return err
	}
	a.printf("theme: %s\n", mode)
	return nil
}

func (a *app) workouts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("workouts", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	category := fs.String("category", "", "gym or home")
	search := fs.String("search", "", "muscle group search term")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	c, err := a.client(ctx)
	if err != nil {
		return err
	}
	list, err := c.Workouts(ctx, workouts.Category(*category), *search)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.printf("no workouts found\n")
		return nil
	}
	for _, w := range list {
		a.printf("%-10s %-32s %-14s %s\n", w.ID, w.Title, w.Duration, w.Calories)
	}
	return nil
}

func (a *app) diets(ctx context.Context) error {
	c, err := a.client(ctx)
	if err != nil {
		return err
	}
	plans, err := c.Diets(ctx)
	if err != nil {
		return err
	}
	for i, p := range plans {
		if i > 0 {
			a.printf("\n")
		}
		a.printf("%s (%s)\n", p.Goal, p.TotalCalories)
		a.printMeal("Breakfast", p.Meals.Breakfast)
		a.printMeal("Lunch", p.Meals.Lunch)
		a.printMeal("Snack", p.Meals.Snack)
		a.printMeal("Dinner", p.Meals.Dinner)
	}
	return nil
}

func (a *app) printMeal(name, meal string) {
	lines := diets.MealLines(meal)
	if len(lines) == 0 {
		return
	}
	a.printf("  %s:\n", name)
	for _, l := range lines {
		a.printf("    - %s\n", l)
	}
}

func (a *app) chat(ctx context.Context, args []string) error {
	prompt := strings.TrimSpace(strings.Join(args, " "))
	if prompt == "" {
		return errUsage
	}

	c, err := a.client(ctx)
	if err != nil {
		return err
	}
	reply, err := c.Chat(ctx, prompt)
	if err != nil {
		return err
	}
	a.printf("%s\n", reply.Text)
	return nil
}
