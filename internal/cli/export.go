package cli

import (
	"fmt"
	"os"
	"strings"

	"RieperLogistics_ScanLedger/internal/csvexport"

	"github.com/spf13/cobra"
)

type ExportOptions struct {
	*RootOptions
	Format string
	Out    string
}

func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the unsent batch to a local file without sending it",
		Long: `Write the current worker's unsent batch to a local file. The CSV is
byte-identical to what "ledger send" would upload. The ledger is not changed.`,
		Example: `  ledger export
  ledger export --format xlsx --out today.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "csv", "output format (csv|xlsx)")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "output file (default: the upload filename)")
	return cmd
}

func runExport(cmd *cobra.Command, opts *ExportOptions) error {
	format := strings.ToLower(opts.Format)
	if format != "csv" && format != "xlsx" {
		return fmt.Errorf("invalid format %q: must be csv or xlsx", opts.Format)
	}

	svc, closeFn, err := opts.openService(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	payload, records, err := svc.Export(cmd.Context())
	if err != nil {
		return err
	}

	out := opts.Out
	if out == "" {
		out = payload.Filename
		if format == "xlsx" {
			out = strings.TrimSuffix(out, ".csv") + ".xlsx"
		}
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	if format == "xlsx" {
		err = csvexport.WriteXLSX(f, records)
	} else {
		_, err = f.WriteString(payload.CSVData)
	}
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "exported %d entries to %s\n", len(records), out)
	return nil
}
