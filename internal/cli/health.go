package cli

import (
	"github.com/spf13/cobra"

	"github.com/padelmixer/padelmixer-admin/internal/api/response"
	"github.com/padelmixer/padelmixer-admin/internal/transport"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check API server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Health

			client := transport.NewClient(cfg.ServerURL, cfg.Timeout)
			if err := client.Get(cmd.Context(), "/health", &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}
