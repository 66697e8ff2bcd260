package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/image-editor-mcp/internal/editor"
	"github.com/ironsheep/image-editor-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func printHelp() {
	fmt.Println("image-editor-mcp - MCP server for raster image editing")
	fmt.Println()
	fmt.Println("Usage: image-editor-mcp [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --config, -c <file>  Load editor settings from a TOML file")
	fmt.Println("  --print-config       Print the effective configuration and exit")
	fmt.Println("  --version, -v        Print version information")
	fmt.Println("  --help, -h           Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  IMAGE_EDITOR_LOG_LEVEL=debug    Enable debug logging")
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}

func main() {
	configPath := ""
	printConfig := false

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version", "-v", "version":
			fmt.Printf("image-editor-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		case "--config", "-c":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "%s requires a file argument\n", args[i])
				os.Exit(2)
			}
			i++
			configPath = args[i]
		case "--print-config":
			printConfig = true
		default:
			fmt.Fprintf(os.Stderr, "unknown option: %s\n\n", args[i])
			printHelp()
			os.Exit(2)
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	debug := os.Getenv("IMAGE_EDITOR_LOG_LEVEL") == "debug"
	if debug {
		log.Printf("Image Editor MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	cfg := editor.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = editor.LoadConfig(configPath); err != nil {
			log.Fatalf("Config error: %v", err)
		}
		if debug {
			log.Printf("Loaded config from %s", configPath)
		}
	}

	if printConfig {
		if err := editor.WriteConfig(os.Stdout, cfg); err != nil {
			log.Fatalf("Config error: %v", err)
		}
		return
	}

	session, err := editor.NewSession(cfg, editor.WithLogger(log.Default()), editor.WithDebug(debug))
	if err != nil {
		log.Fatalf("Session error: %v", err)
	}
	defer session.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(session, log.Default())
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("Server error: %v", err)
	}
}
