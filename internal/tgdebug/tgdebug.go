// Package tgdebug implements the interactive, single-step debug shell
// driven by --debug and --single-threaded: a tiny readline-backed REPL
// that calls a search engine's synchronous Step primitive one task at a
// time and reports what happened.
//
// Grounded on the original cmd/tqi + internal/input +
// github.com/chzyer/readline stack, which existed to drive exactly this
// shape of loop (read a line, advance state by one unit, print what
// changed) over a game's command reader instead of a search engine's task
// queue. shellReader/interactiveReader/directReader below are a direct
// repurposing of that package's CommandReader/InteractiveCommandReader/
// DirectCommandReader trio: same two-implementation split (GNU-readline by
// default, a plain buffered reader when the caller forces direct input),
// renamed and trimmed down to this shell's one-line-in, no-history-needed
// use, so that absorbing this concern here doesn't just re-carry the
// game-specific blank-line and prompt-juggling logic RunUntilQuit needed.
package tgdebug

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/brightwell/tgsynth/internal/search"
	"github.com/chzyer/readline"
)

// Stepper is the part of search.Engine[T] the shell needs. It is a plain
// interface rather than a direct dependency on the generic Engine type so
// the shell need not itself be generic over the search node's location
// type.
type Stepper interface {
	StepNodeDescription() (done bool, description string)
	Stop()
}

// engineAdapter adapts a *search.Engine[T] to Stepper, rendering the
// stepped node's job id, sequence, word count, state and label the same way RunUntilQuit renders a
// game command's result.
type engineAdapter[T comparable] struct {
	eng *search.Engine[T]
}

// Wrap adapts eng for use by Run.
func Wrap[T comparable](eng *search.Engine[T]) Stepper {
	return engineAdapter[T]{eng: eng}
}

func (a engineAdapter[T]) StepNodeDescription() (bool, string) {
	n, ok := a.eng.StepNode()
	if !ok {
		return true, ""
	}
	words := n.Words()
	return false, fmt.Sprintf("job=%s seq=%d words=%d state=%s label=%s",
		n.JobID(), n.Sequence(), len(words), n.State(), n.Label())
}

func (a engineAdapter[T]) Stop() { a.eng.Stop() }

// shellReader is the minimal line-reading contract the shell loop needs,
// implemented by interactiveReader (GNU readline) and directReader (plain
// buffered stdin), mirroring internal/input's CommandReader interface.
type shellReader interface {
	ReadLine() (string, error)
	Close() error
}

// interactiveReader reads lines through chzyer/readline, giving the shell
// history and line editing the same way InteractiveCommandReader gives the
// game's command prompt those features.
type interactiveReader struct {
	rl *readline.Instance
}

func newInteractiveReader(in io.ReadCloser, out io.Writer) (*interactiveReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: "(tgsynth) ",
		Stdin:  in,
		Stdout: out,
	})
	if err != nil {
		return nil, fmt.Errorf("starting debug shell: %w", err)
	}
	return &interactiveReader{rl: rl}, nil
}

func (r *interactiveReader) ReadLine() (string, error) { return r.rl.Readline() }
func (r *interactiveReader) Close() error              { return r.rl.Close() }

// directReader reads lines from any stream without readline's terminal
// handling, for piped/non-tty input, the same fallback role
// DirectCommandReader plays for a non-interactive game session.
type directReader struct {
	r *bufio.Reader
}

func newDirectReader(in io.Reader) *directReader {
	return &directReader{r: bufio.NewReader(in)}
}

func (r *directReader) ReadLine() (string, error) {
	line, err := r.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (r *directReader) Close() error { return nil }

// Run starts the shell, reading commands from in/out until the queue is
// drained or the user quits with "q" or "quit". It uses readline unless
// forceDirect is set, in which case it uses the plain buffered reader; it
// does not inspect whether in is terminal-backed (the original engine.New
// made the same choice through its useReadline flag). Each blank or unrecognized line advances one
// step; "q"/"quit" exits early and cooperatively stops the engine's worker
// pool.
func Run(s Stepper, in io.ReadCloser, out io.Writer, forceDirect bool) error {
	var reader shellReader
	var err error
	if forceDirect {
		reader = newDirectReader(in)
	} else {
		reader, err = newInteractiveReader(in, out)
		if err != nil {
			return err
		}
	}
	defer reader.Close()

	fmt.Fprintln(out, "single-step debug shell: <enter> or any line to advance one task, \"q\" to quit")
	for {
		line, err := reader.ReadLine()
		if err == readline.ErrInterrupt || err == io.EOF {
			s.Stop()
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading debug shell input: %w", err)
		}

		cmd := strings.TrimSpace(strings.ToLower(line))
		if cmd == "q" || cmd == "quit" {
			s.Stop()
			return nil
		}

		done, description := s.StepNodeDescription()
		if done {
			fmt.Fprintln(out, "queue drained")
			return nil
		}
		fmt.Fprintln(out, description)
	}
}
