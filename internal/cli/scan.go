package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"RieperLogistics_ScanLedger/internal/scanner"

	"github.com/spf13/cobra"
)

type ScanOptions struct {
	*RootOptions
	Device string
	fields entryFlags
}

func NewScanCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ScanOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Store one entry per scanned barcode",
		Long: `Read barcodes from a keyboard-wedge scanner (stdin) or a serial device
file, one per line, and store one entry per code. The remaining fields are
taken from the flags.`,
		Example: `  ledger scan -s DHL -a Palette --hundert 1
  ledger scan --device /dev/ttyACM0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Device, "device", "", "read from this device file instead of stdin")
	opts.fields.register(cmd, false)
	return cmd
}

func runScan(cmd *cobra.Command, opts *ScanOptions) error {
	svc, closeFn, err := opts.openService(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	var in io.Reader = cmd.InOrStdin()
	if opts.Device != "" {
		f, err := os.Open(opts.Device)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	var failed error
	err = scanner.Listen(cmd.Context(), in, func(code string) {
		entry := opts.fields.in
		entry.Barcode = code
		record, _, err := svc.AddEntry(cmd.Context(), entry)
		if err != nil {
			failed = errors.Join(failed, fmt.Errorf("%s: %w", code, err))
			fmt.Fprintf(cmd.ErrOrStderr(), "failed to store %s: %v\n", code, err)
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "stored %s as entry %d\n", code, record.ID)
	})
	if err != nil {
		return err
	}
	return failed
}
