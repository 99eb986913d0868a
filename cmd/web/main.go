package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/peterkuimelis/quizcrawl/internal/boot"
	"github.com/peterkuimelis/quizcrawl/internal/web"
)

func main() {
	port := flag.Int("port", 8080, "HTTP port to listen on")
	delay := flag.Duration("delay", 0, "pause between enemy actions (default 600ms)")
	var paths boot.Paths
	paths.Register(flag.CommandLine)
	flag.Parse()

	engine, encounters, err := boot.Load(paths, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	srv := web.NewServer(engine, encounters)
	if *delay > 0 {
		srv.Delay = *delay
	}

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("quizcrawl web UI listening on http://localhost:%d", *port)
	if err := srv.ListenAndServe(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
