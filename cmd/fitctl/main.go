// Command fitctl is the terminal client for fitforge: sign in, browse
// workouts and diet plans, chat with the assistant and run a guided workout.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/2beens/fitforge/internal/prefs"
	"github.com/2beens/fitforge/internal/session"

	log "github.com/sirupsen/logrus"
)

const usage = `usage: fitctl [-api URL] [-prefs DIR] <command> [args]

commands:
  login -email EMAIL [-password PASSWORD]
  logout
  whoami
  theme [toggle|light|dark]
  workouts [-category gym|home] [-search TERM]
  diets
  chat PROMPT
  run WORKOUT_ID
`

func main() {
	apiURL := flag.String("api", envOr("FITFORGE_API_URL", "http://localhost:9000"), "fitforge service base URL")
	prefsDir := flag.String("prefs", envOr("FITFORGE_PREFS_DIR", defaultPrefsDir()), "local preferences directory")
	logLevel := flag.String("log-level", "warn", "log level [trace | debug | info | warn | error]")
	flag.Usage = func() {
		_, _ = fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	level, err := log.ParseLevel(*logLevel)
	if err != nil {
		log.Fatalf("invalid log level %q: %s", *logLevel, err)
	}
	log.SetLevel(level)

	store, err := prefs.Open(*prefsDir)
	if err != nil {
		log.Fatalf("open preferences: %s", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Errorf("close preferences: %s", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a := &app{
		apiURL:    *apiURL,
		prefs:     store,
		in:        os.Stdin,
		out:       os.Stdout,
		newTicker: session.NewTimeTicker,
	}
	if err := a.run(ctx, flag.Args()); err != nil {
		if errors.Is(err, errUsage) {
			flag.Usage()
			os.Exit(2)
		}
		_, _ = fmt.Fprintln(os.Stderr, "fitctl:", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultPrefsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fitforge"
	}
	return filepath.Join(home, ".fitforge")
}
