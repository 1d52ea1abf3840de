package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/2beens/fitforge/internal/calories"
	"github.com/2beens/fitforge/internal/prefs"
	"github.com/2beens/fitforge/internal/session"
)

const runHelp = "commands: [s]tart [p]ause [n]ext [b]ack skip [r]eset [f]inish [q]uit, empty line for status\n"

// lockedWriter serializes writes from the input loop and the ticker goroutine.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func statusLine(s session.Snapshot) string {
	if s.Workout == nil {
		return string(s.State)
	}
	line := fmt.Sprintf("[%s] %s  %d/%d %s",
		s.State, s.Clock, s.ExerciseIndex+1, len(s.Workout.Exercises), s.CurrentExercise)
	if s.Resting {
		line += fmt.Sprintf("  rest %ds", s.RestRemaining)
	}
	return line
}

// runWorkout runs a guided session in the terminal. Calories are estimated
// locally from the workout label.
func (a *app) runWorkout(ctx context.Context, id string) error {
	c, err := a.client(ctx)
	if err != nil {
		return err
	}
	w, err := c.Workout(ctx, id)
	if err != nil {
		return err
	}

	uid, err := a.prefs.Get(ctx, prefs.KeyUID)
	if err != nil && !errors.Is(err, prefs.ErrNotFound) {
		return err
	}

	out := &lockedWriter{w: a.out}
	ctrl := session.NewController(session.ControllerParams{
		UID:          uid,
		RestDuration: a.restDuration,
		NewTicker:    a.newTicker,
		Reporter:     calories.Estimator{},
		OnTick: func(s session.Snapshot) {
			_, _ = fmt.Fprintf(out, "\r%s", statusLine(s))
		},
	})
	defer ctrl.Close()

	if err := ctrl.Select(w); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "%s (%s, %s)\n", w.Title, w.Duration, w.Calories)
	for i, e := range w.Exercises {
		_, _ = fmt.Fprintf(out, "  %d. %s\n", i+1, e)
	}
	_, _ = fmt.Fprint(out, runHelp)

	lines := make(chan string)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(a.in)
		for sc.Scan() {
			select {
			case lines <- strings.TrimSpace(strings.ToLower(sc.Text())):
			case <-done:
				return
			}
		}
	}()

	for {
		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				_, _ = fmt.Fprintln(out, "\nsession abandoned")
				return nil
			}
			line = l
		}

		switch line {
		case "s", "start":
			err = ctrl.Start()
		case "p", "pause":
			err = ctrl.Pause()
		case "n", "next":
			if ctrl.Snapshot().IsLastExercise() {
				_, _ = fmt.Fprintln(out, "\nlast exercise, type finish when done")
				continue
			}
			err = ctrl.AdvanceExercise()
		case "b", "back", "prev":
			err = ctrl.RetreatExercise()
		case "skip":
			err = ctrl.SkipRest()
		case "r", "reset":
			err = ctrl.Reset()
		case "f", "finish":
			res, err := ctrl.Finish(ctx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "\nWorkout complete! %s in %s, about %d kcal burnt\n",
				res.Workout.Title, session.FormatClock(res.ElapsedSeconds), res.Calories)
			return nil
		case "q", "quit":
			_, _ = fmt.Fprintln(out, "\nsession abandoned")
			return nil
		case "":
		default:
			_, _ = fmt.Fprint(out, "\n"+runHelp)
			continue
		}
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "\n%s", statusLine(ctrl.Snapshot()))
	}
}
