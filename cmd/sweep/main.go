package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/nsf/termbox-go"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/store"
)

const (
	saveTable = "saves"
	saveKey   = "current"
)

// save is what survives between runs.
type save struct {
	Board   *mines.Board
	Elapsed time.Duration
}

type options struct {
	params mines.Params
	seed   uint64
	path   string
}

func parseOptions(args []string) (options, error) {
	fs := flag.NewFlagSet("sweep", flag.ContinueOnError)
	rows := fs.Int("rows", 0, "board rows")
	cols := fs.Int("cols", 0, "board columns")
	count := fs.Int("mines", 0, "number of mines")
	preset := fs.String("preset", "beginner", "beginner, intermediate or expert")
	seed := fs.Uint64("seed", 0, "random seed for reproducible layouts (0 picks one)")
	path := fs.String("save", config.SavePath(), "save file, empty disables saving")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	params, ok := mines.Presets[*preset]
	if !ok {
		return options{}, fmt.Errorf("unknown preset %q", *preset)
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "rows":
			params.Rows = *rows
		case "cols":
			params.Cols = *cols
		case "mines":
			params.MineCount = *count
		}
	})
	if err := params.Validate(); err != nil {
		return options{}, err
	}
	return options{params: params, seed: *seed, path: *path}, nil
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return mines.NewRand()
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// load resumes the saved game when it is unfinished and matches params,
// otherwise it starts a new one.
func load(log *logrus.Logger, s *store.Store, opts options) (*mines.Board, time.Duration, error) {
	if s != nil {
		var sv save
		err := s.Get(saveKey, &sv)
		switch {
		case errors.Is(err, store.ErrNotFound):
		case err != nil:
			log.WithError(err).Warn("unable to read saved game, starting over")
		case sv.Board.Params() == opts.params && !sv.Board.Status().Over():
			log.WithField("seed", opts.params.Seed()).Info("resuming saved game")
			if opts.seed != 0 {
				log.WithField("random_seed", opts.seed).Warn("resuming saved game, random seed ignored")
			}
			return sv.Board, sv.Elapsed, nil
		}
	}
	b, err := mines.NewFromParams(opts.params, newRand(opts.seed))
	return b, 0, err
}

func persist(s *store.Store, u *ui) error {
	if s == nil {
		return nil
	}
	if u.board.Status().Over() || u.board.FirstMove() {
		return s.Delete(saveKey)
	}
	u.stopClock()
	return s.Set(saveKey, save{Board: u.board, Elapsed: u.elapsed})
}

func openStore(path string) (*store.Store, func(), error) {
	if path == "" {
		return nil, func() {}, nil
	}
	db, err := store.Open(path)
	if err != nil {
		return nil, nil, err
	}
	s, err := store.NewStore(db, saveTable)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return s, func() { db.Close() }, nil
}

func run(log *logrus.Logger, opts options) error {
	s, closeStore, err := openStore(opts.path)
	if err != nil {
		return fmt.Errorf("unable to open save file: %w", err)
	}
	defer closeStore()

	b, elapsed, err := load(log, s, opts)
	if err != nil {
		return err
	}
	u := newUI(log, b, elapsed)

	if err := termbox.Init(); err != nil {
		return err
	}
	defer termbox.Close()

	events := make(chan termbox.Event)
	go func() {
		for {
			events <- termbox.PollEvent()
		}
	}()
	tick := time.NewTicker(time.Second)
	defer tick.Stop()

	for {
		if err := u.draw(); err != nil {
			return err
		}
		select {
		case ev := <-events:
			if ev.Type == termbox.EventError {
				return ev.Err
			}
			if u.handle(ev) {
				return persist(s, u)
			}
		case <-tick.C:
		}
	}
}

func main() {
	opts, err := parseOptions(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := config.NewLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	// the terminal belongs to termbox; LOG_FILE hooks still receive entries
	log.SetOutput(io.Discard)
	mines.Log = log

	if err := run(log, opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
