package cli

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"livecounter-backend/internal/client"
	"livecounter-backend/internal/logging"
)

type rootOptions struct {
	server    string
	logLevel  string
	logFormat string

	log    zerolog.Logger
	client *client.Client
}

// defaultServer returns the service URL, checking LIVECOUNTER_SERVER first.
func defaultServer() string {
	if s := os.Getenv("LIVECOUNTER_SERVER"); s != "" {
		return s
	}
	return "http://localhost:8080"
}

// NewRootCmd creates the root cobra command for the livecounter CLI.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "livecounter",
		Short: "Look up live social media counters",
		Long:  "livecounter queries a livecounterd service for TikTok, Instagram and YouTube counters.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.log = logging.NewWithWriter(opts.logLevel, opts.logFormat, "livecounter", cmd.ErrOrStderr())
			opts.client = client.New(strings.TrimRight(opts.server, "/")+"/api", nil)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.server, "server", defaultServer(), "livecounterd URL (or LIVECOUNTER_SERVER env)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "console", "Log format (console, json)")

	root.AddCommand(
		newGetCmd(opts),
		newWatchCmd(opts),
		newEndpointsCmd(),
	)

	return root
}
