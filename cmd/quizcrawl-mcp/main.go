package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/quizcrawl/internal/boot"
	qcmcp "github.com/peterkuimelis/quizcrawl/internal/mcp"
)

func main() {
	var paths boot.Paths
	paths.Register(flag.CommandLine)
	flag.Parse()

	engine, encounters, err := boot.Load(paths, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	s := server.NewMCPServer("quizcrawl", "1.0.0")
	qcmcp.RegisterTools(s, qcmcp.NewHost(engine, encounters))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
