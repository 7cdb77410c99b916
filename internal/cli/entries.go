package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"RieperLogistics_ScanLedger/internal/models"

	"github.com/spf13/cobra"
)

// 입력 필드 플래그 (add, edit, scan 공용)
type entryFlags struct {
	in models.EntryInput
}

func (f *entryFlags) register(cmd *cobra.Command, withBarcode bool) {
	if withBarcode {
		cmd.Flags().StringVarP(&f.in.Barcode, "barcode", "b", "", "scanned barcode")
	}
	cmd.Flags().StringVarP(&f.in.Spedition, "spedition", "s", "", "carrier")
	cmd.Flags().StringVarP(&f.in.Artikel, "artikel", "a", "", "article")
	cmd.Flags().StringVar(&f.in.Bemerkung, "bemerkung", "", "remark")
	cmd.Flags().StringVar(&f.in.Hundert, "hundert", "", "quantity in the 100 column")
	cmd.Flags().StringVar(&f.in.Fuenfzig, "fuenfzig", "", "quantity in the 50 column")
	cmd.Flags().StringVar(&f.in.Info, "info", "", "free-form info")
}

// 변경된 플래그만 base에 덮어쓴다
func (f *entryFlags) apply(cmd *cobra.Command, base models.EntryInput) models.EntryInput {
	set := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("barcode", &base.Barcode, f.in.Barcode)
	set("spedition", &base.Spedition, f.in.Spedition)
	set("artikel", &base.Artikel, f.in.Artikel)
	set("bemerkung", &base.Bemerkung, f.in.Bemerkung)
	set("hundert", &base.Hundert, f.in.Hundert)
	set("fuenfzig", &base.Fuenfzig, f.in.Fuenfzig)
	set("info", &base.Info, f.in.Info)
	return base
}

func inputFromRecord(r models.Record) models.EntryInput {
	return models.EntryInput{
		Barcode:   r.Barcode,
		Spedition: r.Spedition,
		Artikel:   r.Artikel,
		Bemerkung: r.Bemerkung,
		Hundert:   strconv.Itoa(r.Hundert),
		Fuenfzig:  strconv.Itoa(r.Fuenfzig),
		Info:      r.Info,
	}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid entry id %q", arg)
	}
	return id, nil
}

// 당일 목록 테이블 출력
func printView(w io.Writer, view []models.Record) error {
	if len(view) == 0 {
		_, err := fmt.Fprintln(w, "no entries today")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tBARCODE\tSPEDITION\tARTIKEL\t100\t50\tBEMERKUNG\tINFO\tTIME")
	for _, r := range view {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%s\t%s\t%s\n",
			r.ID, r.Barcode, r.Spedition, r.Artikel, r.Hundert, r.Fuenfzig, r.Bemerkung, r.Info, r.Timestamp)
	}
	return tw.Flush()
}

func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &entryFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Store one entry for the current worker",
		Example: `  ledger add -b 0012345 -s DHL -a Palette --hundert 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := rootOpts.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			record, view, err := svc.AddEntry(cmd.Context(), flags.in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added entry %d\n", record.ID)
			return printView(cmd.OutOrStdout(), view)
		},
	}
	flags.register(cmd, true)
	return cmd
}

func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show today's entries for the current worker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := rootOpts.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			view, err := svc.Today(cmd.Context())
			if err != nil {
				return err
			}
			return printView(cmd.OutOrStdout(), view)
		},
	}
}

func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &entryFlags{}
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of an unsent entry",
		Long: `Change fields of an unsent entry. Only the given flags are changed;
date and timestamp of the entry are kept.`,
		Example: `  ledger edit 3 --hundert 7`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc, closeFn, err := rootOpts.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			current, err := svc.Entry(cmd.Context(), id)
			if err != nil {
				return err
			}
			_, view, err := svc.UpdateEntry(cmd.Context(), id, flags.apply(cmd, inputFromRecord(current)))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated entry %d\n", id)
			return printView(cmd.OutOrStdout(), view)
		},
	}
	flags.register(cmd, true)
	return cmd
}

func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an unsent entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc, closeFn, err := rootOpts.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			view, err := svc.DeleteEntry(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted entry %d\n", id)
			return printView(cmd.OutOrStdout(), view)
		},
	}
}
