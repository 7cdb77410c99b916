package cli

import (
	"errors"
	"fmt"

	"RieperLogistics_ScanLedger/internal/ledger"
	"RieperLogistics_ScanLedger/internal/uploader"

	"github.com/spf13/cobra"
)

func NewSendCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "send",
		Short: "Append the unsent batch to the remote CSV and clear the ledger",
		Long: `Send the current worker's unsent entries to the append endpoint once.
The local ledger is cleared only after the endpoint confirms success.
On failure the entries are kept and nothing is retried.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := rootOpts.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			result, err := svc.Send(cmd.Context())
			if errors.Is(err, ledger.ErrEmptyBatch) {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing to send")
				return nil
			}
			var rejected *uploader.RemoteRejection
			if errors.As(err, &rejected) {
				return fmt.Errorf("upload failed: %s", rejected.Message)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "sent %d entries as %s\n", result.Records, result.Filename)
			return nil
		},
	}
}
