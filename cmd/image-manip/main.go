package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ironsheep/image-manip-mcp/internal/engine"
	"github.com/ironsheep/image-manip-mcp/internal/script"
	"github.com/ironsheep/image-manip-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	mode := "serve"
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-manip %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		case "run":
			if len(os.Args) != 3 {
				fmt.Fprintln(os.Stderr, "usage: image-manip run <script-file>")
				os.Exit(2)
			}
			mode = "run"
		case "repl":
			mode = "repl"
		default:
			fmt.Fprintf(os.Stderr, "unknown argument %q (see --help)\n", os.Args[1])
			os.Exit(2)
		}
	}

	logger, err := newLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	eng := engine.New(logger)

	switch mode {
	case "run":
		in := script.New(eng, os.Stdout, logger)
		if err := in.RunFile(os.Args[2]); err != nil {
			logger.Error("script failed", zap.Error(err))
			os.Exit(1)
		}
	case "repl":
		in := script.New(eng, os.Stdout, logger)
		if err := in.Interactive(os.Stdin); err != nil {
			logger.Fatal("session failed", zap.Error(err))
		}
	default:
		logger.Debug("starting MCP server",
			zap.String("version", Version),
			zap.String("build_time", BuildTime),
			zap.String("commit", GitCommit))
		srv := server.New(eng, logger, Version)
		if err := srv.Run(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}
}

func printHelp() {
	fmt.Println("image-manip - named-image manipulation engine")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  image-manip                 Serve MCP tools over stdin/stdout")
	fmt.Println("  image-manip run <script>    Execute a command script, stopping at the first error")
	fmt.Println("  image-manip repl            Read commands interactively until Q")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  IMAGE_MANIP_LOG_LEVEL=debug    Log level: debug, info, warn, error (default info)")
	fmt.Println()
	fmt.Println("Script commands: load, save, brighten, horizontal-flip, vertical-flip,")
	fmt.Println("greyscale, rgb-split, rgb-combine, blur, sharpen, sepia, dither, list, run.")
	fmt.Println("Type help in the repl for their arguments.")
}
