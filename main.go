// Command text-game plays an adventure on plain standard input and output,
// one command per line.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/muesli/reflow/wordwrap"

	"github.com/tatianab/text-game/internal/config"
	"github.com/tatianab/text-game/internal/engine"
	"github.com/tatianab/text-game/internal/logger"
	"github.com/tatianab/text-game/internal/narrator"
	"github.com/tatianab/text-game/worlds"
)

const wrapWidth = 80

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := start(ctx); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func start(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	log := logger.Setup(cfg)

	source, err := worlds.Source(cfg.WorldPath)
	if err != nil {
		return err
	}

	n := narrator.Select(ctx, cfg, log)
	if c, ok := n.(io.Closer); ok {
		defer c.Close()
	}

	session, err := engine.NewSession(source,
		engine.WithNarrator(n),
		engine.WithTimeout(cfg.NarratorTimeout),
		engine.WithLogger(log),
	)
	if err != nil {
		return err
	}
	return play(ctx, session, os.Stdin, os.Stdout)
}

// play reads commands from in until the session ends, the input is
// exhausted or ctx is cancelled.
func play(ctx context.Context, s *engine.Session, in io.Reader, out io.Writer) error {
	say := func(text string) {
		fmt.Fprintln(out, wordwrap.String(text, wrapWidth))
		fmt.Fprintln(out)
	}

	say(s.Start())
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return nil
		}
		reply, active := s.Submit(ctx, scanner.Text())
		say(reply)
		if !active {
			return nil
		}
	}
}
