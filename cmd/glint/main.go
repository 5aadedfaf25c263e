package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╔═╗╦  ╦╔╗╔╔╦╗
  ║ ╦║  ║║║║ ║
  ╚═╝╩═╝╩╝╚╝ ╩
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "glint",
		Short: "Server-driven custom elements for Go",
		Long: `Glint renders custom elements on the server and keeps them
live in the browser over WebSocket.

  • Reactive element properties with batched re-renders
  • Attribute reflection across the document boundary
  • SSR pages with a thin patch client
  • Snapshot publishing to disk or S3`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		renderCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the glint ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}
