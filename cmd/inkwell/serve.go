package main

import (
	"log"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

func newServeCommand(flags *rootFlags) *cobra.Command {
	var port int
	var host string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the blog",
		Long:  `Serves server-rendered pages, static files and the WebAssembly client.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			// CLI takes precedence over the config file
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}

			logger := flags.logger()
			s, err := newSite(cfg, logger, false)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              cfg.Addr(),
				Handler:           s,
				ReadHeaderTimeout: 10 * time.Second,
			}
			log.Printf("✨ Serving %s at http://%s", cfg.Site.Title, cfg.Addr())
			return serveUntilSignal(srv, cfg.Server.ShutdownTimeout, nil)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to listen on")
	cmd.Flags().StringVarP(&host, "host", "H", "localhost", "Host to bind to")

	return cmd
}
