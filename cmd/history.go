package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/mezonai/devkit/jsonx"
	"github.com/mezonai/devkit/store"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List journaled transactions, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		receipts, err := store.NewLevelDBReceiptStore(cfg.Network.JournalDir)
		if err != nil {
			return err
		}
		defer receipts.MustClose()

		list, err := receipts.List(historyLimit)
		if err != nil {
			return err
		}
		if historyJSON {
			return jsonx.NewIndentEncoder(cmd.OutOrStdout()).Encode(list)
		}
		if len(list) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No transactions recorded")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tKIND\tAMOUNT\tFEE\tCONFIRMED\tSIGNATURE")
		for _, r := range list {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%t\t%s\n",
				r.CreatedAt.Local().Format(time.DateTime), r.Kind, r.Amount, r.Fee, r.Confirmed, r.Signature)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum receipts to show, 0 for all")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "print receipts as JSON")
}
