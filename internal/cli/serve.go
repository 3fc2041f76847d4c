package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/guildday/guildday/internal/daemon"
)

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to listen on (overrides config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the GuildDay API server",
	Long:  `Start the HTTP API server at localhost:8787.`,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}

	// Override config from flags
	if serveHost != "" {
		d.Config.Server.Host = serveHost
	}
	if servePort > 0 {
		d.Config.Server.Port = servePort
	}

	d.Server.SetVersion(rootCmd.Version)

	return d.Serve(context.Background())
}
