package cmd

import (
	"log/slog"
	"net/http"

	"github.com/jsphweid/scof/constants"
	"github.com/jsphweid/scof/server"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves editing sessions over HTTP",
	Long:  `Serves marking parsing and in-memory editing sessions over HTTP. Listens on SCOF_ADDR.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := constants.GetAddr()
		s := server.New(slog.Default())
		slog.Info("Serving", "addr", addr)
		return http.ListenAndServe(addr, s.Handler())
	},
}
