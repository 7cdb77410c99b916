package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewWorkerCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Show or set the worker id (Mitarbeiter) of this device",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <id>",
		Short: "Set the worker id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := rootOpts.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			session, err := svc.SetWorker(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "worker set to %s\n", session.Mitarbeiter)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the session (worker, device id, last sync)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := rootOpts.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			s := svc.Session()
			worker := s.Mitarbeiter
			if worker == "" {
				worker = "(not set)"
			}
			lastSync := s.LastSync
			if lastSync == "" {
				lastSync = "never"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "worker:    %s\ndevice:    %s\nlast sync: %s\n", worker, s.ClientID, lastSync)
			return nil
		},
	})

	return cmd
}
