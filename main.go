package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strconv"

	"go-match/internal/deck"
	"go-match/internal/game"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type strictIntFlag int

func (i *strictIntFlag) String() string {
	return fmt.Sprint(int(*i))
}

func (i *strictIntFlag) Set(s string) error {
	if s == "true" {
		return fmt.Errorf("value required (format: -flag=value)")
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*i = strictIntFlag(v)
	return nil
}

func (i *strictIntFlag) IsBoolFlag() bool { return true }

// seedFlag remembers whether a seed was given.
type seedFlag struct {
	value uint64
	set   bool
}

func (f *seedFlag) String() string {
	if !f.set {
		return "random"
	}
	return strconv.FormatUint(f.value, 10)
}

func (f *seedFlag) Set(s string) error {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid seed: %s", s)
	}
	f.value, f.set = v, true
	return nil
}

type logLevelFlag log.Level

func (l *logLevelFlag) String() string {
	return log.Level(*l).String()
}

func (l *logLevelFlag) Set(s string) error {
	lvl, err := log.ParseLevel(s)
	if err != nil {
		return err
	}
	*l = logLevelFlag(lvl)
	return nil
}

// newLogger writes to path, or discards everything when path is empty.
func newLogger(path string, level log.Level) (*log.Logger, func() error, error) {
	if path == "" {
		return nil, func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "go-match",
	})
	return logger, f.Close, nil
}

func printUsage(w io.Writer, prog string) {
	fmt.Fprintf(w, "Usage: %s [options]\n", prog)
	fmt.Fprintf(w, "\nOptions:\n")
	fmt.Fprintf(w, "    -l, --level=N          Start at level N (default 1)\n")
	fmt.Fprintf(w, "   -th, --theme=NAME       Card theme: default, animals, food, travel\n")
	fmt.Fprintf(w, "        --seed=N           Deal reproducible decks\n")
	fmt.Fprintf(w, "    -c, --config=FILE      Load levels and themes from a YAML file\n")
	fmt.Fprintf(w, "   -ns, --nosound          Disable the bell on a match\n")
	fmt.Fprintf(w, "   -na, --noanim           Disable animations\n")
	fmt.Fprintf(w, "        --log=FILE         Write logs to FILE\n")
	fmt.Fprintf(w, "        --log-level=LEVEL  Log level (default info)\n")
	fmt.Fprintf(w, "    -h, --help             Show this help message\n")
	fmt.Fprintf(w, "\nNumeric options need '=': -l=3, not -l 3.\n")
}

func main() {
	// defaults
	var level strictIntFlag = 1
	var theme string
	var seed seedFlag
	var configPath string
	var noSound bool
	var noAnim bool
	var logPath string
	var logLevel = logLevelFlag(log.InfoLevel)

	flag.Var(&level, "level", "Starting level")
	flag.Var(&level, "l", "Starting level (shorthand)")

	flag.StringVar(&theme, "theme", "", "Card theme")
	flag.StringVar(&theme, "th", "", "Card theme (shorthand)")

	flag.Var(&seed, "seed", "Seed for reproducible decks")

	flag.StringVar(&configPath, "config", "", "YAML file with levels and themes")
	flag.StringVar(&configPath, "c", "", "YAML file with levels and themes (shorthand)")

	flag.BoolVar(&noSound, "nosound", false, "Disable the bell on a match")
	flag.BoolVar(&noSound, "ns", false, "Disable the bell on a match (shorthand)")

	flag.BoolVar(&noAnim, "noanim", false, "Disable animations")
	flag.BoolVar(&noAnim, "na", false, "Disable animations (shorthand)")

	flag.StringVar(&logPath, "log", "", "Write logs to FILE")
	flag.Var(&logLevel, "log-level", "Log level (debug, info, warn, error)")

	flag.Usage = func() {
		printUsage(os.Stderr, os.Args[0])
	}

	flag.Parse()

	if flag.NArg() > 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := game.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(logPath, log.Level(logLevel))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	var rng deck.RandomSource
	uiSeed := rand.Uint64()
	if seed.set {
		rng = deck.NewSeededRNG(seed.value)
		uiSeed = seed.value
	}

	sess, err := game.NewSession(cfg, game.Options{
		StartLevel: int(level),
		Theme:      theme,
		Settings:   game.Settings{Sound: !noSound, Animations: !noAnim},
		RNG:        rng,
		Logger:     logger,
	})
	if err != nil {
		fmt.Printf("Error starting session: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(initialModel(sess, uiSeed), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error starting the program: %v\n", err)
		os.Exit(1)
	}
}
