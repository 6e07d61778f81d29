package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"xpquest/config"
	"xpquest/handlers"
	"xpquest/ledger"
	"xpquest/report"
	"xpquest/storage"
	"xpquest/templates"
	"xpquest/world"
)

const usage = `usage: xpquest <command> [flags]

commands:
  tamagotchi   chat with your AI pet and teach it new things
  kbc          explore the KBC knowledge grid
  report       export the pet's progress (-format html|pdf -out FILE)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	cmd, args := os.Args[1], os.Args[2:]

	logger := log.New(os.Stderr, fmt.Sprintf("[%s] ", strings.ToUpper(cmd)), log.LstdFlags)
	config.LoadDotEnv(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		// A second interrupt falls through to the default handler.
		<-ctx.Done()
		stop()
	}()

	var err error
	switch cmd {
	case "tamagotchi":
		err = runTamagotchi(ctx, logger, args)
	case "kbc":
		err = runKBC(ctx, logger, args)
	case "report":
		err = runReport(ctx, logger, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatalf("FATAL: %v", err)
	}
}

func runTamagotchi(ctx context.Context, logger *log.Logger, args []string) error {
	cfg, err := config.ParseConfig(flag.NewFlagSet("tamagotchi", flag.ExitOnError), args)
	if err != nil {
		return err
	}
	store, err := storage.Open(cfg.Store, cfg.StatePath)
	if err != nil {
		return err
	}
	defer store.Close()

	l, transcript := handlers.LoadTamagotchi(ctx, store, logger)
	h := &handlers.Tamagotchi{
		Ledger:     l,
		Transcript: transcript,
		Store:      store,
		Replier:    handlers.EchoReplier{},
		MaxTurns:   cfg.TranscriptTurns,
		Out:        os.Stdout,
		Log:        logger,
	}
	return h.Run(ctx, os.Stdin)
}

func runKBC(ctx context.Context, logger *log.Logger, args []string) error {
	cfg, err := config.ParseConfig(flag.NewFlagSet("kbc", flag.ExitOnError), args)
	if err != nil {
		return err
	}
	questions, err := world.LoadQuestionsFile(cfg.QuestionsPath)
	if err != nil {
		return err
	}
	m, err := world.NewMap(world.DefaultWidth, world.DefaultHeight)
	if err != nil {
		return err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	clamp := cfg.Clamp()
	logger.Printf("reward policy %s, library gate %d", clamp, cfg.LibraryGate)

	h := &handlers.World{
		Map:    m,
		Player: &world.Player{Pos: world.StartPos},
		Env: &world.Env{
			Ledger:    ledger.New(ledger.AccumulatingPolicy(clamp)),
			Rewards:   world.RewardsFor(clamp),
			Gate:      cfg.LibraryGate,
			Questions: questions,
			Rand:      rand.New(rand.NewSource(seed)),
			Out:       os.Stdout,
		},
	}
	return h.Run(ctx, os.Stdin)
}

func runReport(ctx context.Context, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	format := fs.String("format", "html", "Output format (html or pdf)")
	out := fs.String("out", "", "Output file (default stdout)")
	recent := fs.Int("recent", 10, "Conversation turns to include")
	cfg, err := config.ParseConfig(fs, args)
	if err != nil {
		return err
	}
	store, err := storage.Open(cfg.Store, cfg.StatePath)
	if err != nil {
		return err
	}
	defer store.Close()

	st, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	status := templates.NewStatus(st, *recent)

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("create report: %w", err)
		}
		defer f.Close()
		w = f
	}

	const title = "AI Tamagotchi progress"
	switch *format {
	case "html":
		err = templates.StatusPage(title, status).Render(ctx, w)
	case "pdf":
		err = report.WritePDF(w, title, status)
	default:
		return fmt.Errorf("unknown report format %q", *format)
	}
	if err != nil {
		return err
	}
	if *out != "" {
		logger.Printf("wrote %s report to %s", *format, *out)
	}
	return nil
}
