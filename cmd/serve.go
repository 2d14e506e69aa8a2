package cmd

import (
	"github.com/emrgen/jobpost/internal/config"
	"github.com/emrgen/jobpost/internal/server"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "serve",
		Short: "start the job post server",
		Long:  `start the http api, the change listener and the scheduled sweeps; configured from the environment`,
		Run: func(cmd *cobra.Command, args []string) {
			server.NewServer(config.LoadConfig()).Start()
		},
	}

	return command
}
