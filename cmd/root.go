// Package cmd contains the thn-proxy command line.
package cmd

import (
	"github.com/spf13/cobra"
)

var version = "dev"

// SetVersion sets the version string reported by --version.
func SetVersion(v string) {
	version = v
}

// NewRootCmd builds the command tree. Without a subcommand the server starts.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "thn-proxy",
		Short: "Read-only proxy for The Hacker News",
		Long: `thn-proxy fetches The Hacker News listing and article pages, extracts
structured data from them and serves it over a small authenticated JSON API.

Example usage:
  thn-proxy                         # Start the server (same as "serve")
  thn-proxy healthcheck             # Probe the local server
  thn-proxy extract news --table    # Print the current listing
  thn-proxy extract content /2025/12/some-article.html`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serve := newServeCmd()
	root.RunE = serve.RunE
	root.AddCommand(serve, newHealthcheckCmd(), newExtractCmd())

	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
