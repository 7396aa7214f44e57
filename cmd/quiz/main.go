// Command quiz takes a lesson quiz from the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"lessonquiz/internal/attempt"
	"lessonquiz/internal/client"
	"lessonquiz/internal/logger"
)

func main() {
	lessonID := flag.String("lesson", "", "lesson id to take the quiz for")
	api := flag.String("api", "http://localhost:8080/v1", "quiz API base URL")
	name := flag.String("name", os.Getenv("USER"), "learner name")
	email := flag.String("email", "", "learner email (optional, used for the pass notification)")
	offline := flag.Bool("offline", false, "fall back to a demo quiz and local grading when the API is unreachable")
	debug := flag.Bool("debug", false, "log requests")
	flag.Parse()

	if *lessonID == "" {
		flag.Usage()
		os.Exit(2)
	}

	log := logger.Discard()
	if *debug {
		log = logger.NewStdout("", true)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	apiClient := client.New(*api, client.WithLogger(log))
	if err := enroll(ctx, apiClient, *name, *email); err != nil {
		if !*offline {
			fmt.Fprintln(os.Stderr, "enroll:", err)
			os.Exit(1)
		}
		log.Warn("[Quiz] enroll failed, continuing offline", err)
	}

	att, err := attempt.Load(ctx, apiClient, apiClient, *lessonID, attempt.Options{
		Offline:  *offline,
		OnPassed: completeLesson(apiClient),
		Logger:   log,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	p := newPlayer(att, os.Stdin, os.Stdout, term.IsTerminal(int(os.Stdin.Fd())))
	if err := p.run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func enroll(ctx context.Context, c *client.Client, name, email string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("-name is required")
	}
	_, err := c.Enroll(ctx, name, email)
	return err
}

// completeLesson records the lesson once the server has verified a pass.
func completeLesson(c *client.Client) func(context.Context, string, attempt.Result) {
	return func(ctx context.Context, lessonID string, _ attempt.Result) {
		if _, err := c.CompleteLesson(ctx, lessonID); err != nil {
			fmt.Fprintln(os.Stderr, "Quiz passed, but marking the lesson complete failed:", err)
			return
		}
		fmt.Println("Lesson marked complete.")
	}
}
