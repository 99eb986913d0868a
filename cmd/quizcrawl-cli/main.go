package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/peterkuimelis/quizcrawl/internal/battle"
	"github.com/peterkuimelis/quizcrawl/internal/boot"
	"github.com/peterkuimelis/quizcrawl/internal/content"
	"github.com/peterkuimelis/quizcrawl/internal/log"
	"github.com/peterkuimelis/quizcrawl/internal/repl"
	"github.com/peterkuimelis/quizcrawl/internal/session"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "play":
		runPlay(os.Args[2:])
	case "list":
		runList(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  quizcrawl play [--encounter N] [--seed S] [--delay D] [--encounters FILE] [--questions FILE] [--rules FILE] [--content FILE]")
	fmt.Println("  quizcrawl list [--encounters FILE]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  play    Fight an encounter in the terminal")
	fmt.Println("  list    Show the available encounters")
}

func runPlay(args []string) {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	var paths boot.Paths
	paths.Register(fs)
	number := fs.Int("encounter", 1, "encounter number to fight (see list)")
	seed := fs.Uint("seed", 0, "random seed (default: time based)")
	delay := fs.Duration("delay", 700*time.Millisecond, "pause between enemy actions")
	logFile := fs.String("log", "", "append the full battle log to this file")
	fs.Parse(args)

	var logger log.EventLogger
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fatal(err)
		}
		defer f.Close()
		logger = log.NewTextLogger(f)
	}

	engine, encounters, err := boot.Load(paths, logger)
	if err != nil {
		fatal(err)
	}
	enc, err := encounters.ByNumber(*number)
	if err != nil {
		fatal(err)
	}
	if *seed == 0 {
		*seed = uint(time.Now().UnixNano())
	}

	sess, err := session.New(engine, enc.Name, battle.SetupFromEncounter(enc, uint32(*seed)))
	if err != nil {
		fatal(err)
	}
	fmt.Printf("%s (seed %d). Type help for commands.\n", enc.Name, uint32(*seed))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := repl.New(sess, engine.Tables, os.Stdin, os.Stdout)
	r.Delay = *delay
	if err := r.Run(ctx); err != nil && ctx.Err() == nil {
		fatal(err)
	}
}

func runList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	path := fs.String("encounters", "", "path to encounters YAML file (default: built-in encounters)")
	fs.Parse(args)

	encounters := content.DefaultEncounters()
	if *path != "" {
		ef, err := content.ParseEncounterFile(*path)
		if err != nil {
			fatal(err)
		}
		encounters = ef
	}
	for i, e := range encounters.Encounters {
		fmt.Printf("%2d. %-16s difficulty %d  %v\n", i+1, e.Name, e.Difficulty, e.Enemies)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
