package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"lessonquiz/internal/attempt"
)

const help = `Commands:
  n        next question
  p        previous question
  j N      jump to question N
  a N      answer the current question with option N
  f        flag or unflag the current question for review
  s        submit (every question must be answered)
  r        start over
  q        quit`

var errQuit = errors.New("quit")

// player drives one attempt from line-oriented input.
type player struct {
	att    *attempt.Attempt
	in     *bufio.Scanner
	out    io.Writer
	prompt bool
}

func newPlayer(att *attempt.Attempt, in io.Reader, out io.Writer, prompt bool) *player {
	return &player{att: att, in: bufio.NewScanner(in), out: out, prompt: prompt}
}

func (p *player) run(ctx context.Context) error {
	if p.att.Offline() {
		fmt.Fprintln(p.out, "Offline mode: practicing on the built-in demo quiz, results are not recorded.")
	}
	fmt.Fprintln(p.out, help)
	p.show()

	for {
		if p.prompt {
			fmt.Fprint(p.out, "> ")
		}
		if !p.in.Scan() {
			return p.in.Err()
		}
		line := strings.TrimSpace(p.in.Text())
		if line == "" {
			continue
		}
		if err := p.exec(ctx, line); err != nil {
			if err == errQuit {
				return nil
			}
			return err
		}
	}
}

// exec runs one command. Only errQuit and write failures end the loop;
// rejected commands are reported and the loop goes on.
func (p *player) exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	cmd, arg := fields[0], ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch cmd {
	case "q":
		return errQuit
	case "h", "?":
		fmt.Fprintln(p.out, help)
	case "n":
		if !p.att.Next() {
			fmt.Fprintln(p.out, "Already at the last question.")
			return nil
		}
		p.show()
	case "p":
		if !p.att.Prev() {
			fmt.Fprintln(p.out, "Already at the first question.")
			return nil
		}
		p.show()
	case "j":
		n, err := strconv.Atoi(arg)
		if err != nil {
			fmt.Fprintln(p.out, "Usage: j N")
			return nil
		}
		if err := p.att.JumpTo(n - 1); err != nil {
			fmt.Fprintf(p.out, "No question %d.\n", n)
			return nil
		}
		p.show()
	case "a":
		p.answer(arg)
	case "f":
		q := p.att.Current()
		flagged, err := p.att.ToggleFlag(q.ID)
		if err == attempt.ErrAlreadySubmitted {
			fmt.Fprintln(p.out, "This attempt is submitted, type r to start over.")
			return nil
		}
		if err != nil {
			fmt.Fprintln(p.out, err)
			return nil
		}
		if flagged {
			fmt.Fprintln(p.out, "Flagged for review.")
		} else {
			fmt.Fprintln(p.out, "Flag removed.")
		}
	case "s":
		return p.submit(ctx)
	case "r":
		if err := p.att.Reset(); err != nil {
			fmt.Fprintln(p.out, err)
			return nil
		}
		fmt.Fprintln(p.out, "Starting over.")
		p.show()
	default:
		fmt.Fprintf(p.out, "Unknown command %q, type h for help.\n", cmd)
	}
	return nil
}

func (p *player) answer(arg string) {
	n, err := strconv.Atoi(arg)
	q := p.att.Current()
	if err != nil || n < 1 || n > len(q.Options) {
		fmt.Fprintf(p.out, "Pick an option between 1 and %d.\n", len(q.Options))
		return
	}
	if err := p.att.SetAnswer(q.ID, q.Options[n-1].ID); err != nil {
		if errors.Cause(err) == attempt.ErrAlreadySubmitted {
			fmt.Fprintln(p.out, "This attempt is submitted, type r to start over.")
			return
		}
		fmt.Fprintln(p.out, err)
		return
	}
	fmt.Fprintf(p.out, "Answered %d of %d.\n", p.att.AnsweredCount(), p.att.QuestionCount())
}

func (p *player) submit(ctx context.Context) error {
	_, err := p.att.Submit(ctx)
	switch errors.Cause(err) {
	case nil:
	case attempt.ErrIncomplete:
		fmt.Fprintf(p.out, "Answer every question first (%d of %d answered).\n", p.att.AnsweredCount(), p.att.QuestionCount())
		return nil
	case attempt.ErrAlreadySubmitted:
		fmt.Fprintln(p.out, "Already submitted, type r to start over.")
		return nil
	default:
		fmt.Fprintf(p.out, "Submitting failed, your answers are kept: %v\n", err)
		return nil
	}

	recap, err := p.att.Review()
	if err != nil {
		return err
	}
	fmt.Fprintln(p.out)
	return recap.Render(p.out)
}

func (p *player) show() {
	q := p.att.Current()
	fmt.Fprintf(p.out, "\nQuestion %d/%d", p.att.CurrentIndex()+1, p.att.QuestionCount())
	if p.att.IsFlagged(q.ID) {
		fmt.Fprint(p.out, " (flagged)")
	}
	fmt.Fprintf(p.out, "\n%s\n", q.Text)

	selected := p.att.Answer(q.ID)
	for _, o := range q.Options {
		mark := " "
		if o.ID == selected {
			mark = ">"
		}
		fmt.Fprintf(p.out, " %s %s) %s\n", mark, attempt.OptionLabel(o.ID), o.Text)
	}
}
