package cmd

import (
	"fmt"

	"github.com/mezonai/devkit/config"
	"github.com/mezonai/devkit/service"
	"github.com/mezonai/devkit/types"
	"github.com/spf13/cobra"
)

var transferTo string

var transferCmd = &cobra.Command{
	Use:   "transfer [TO_ADDRESS]",
	Short: "Send the whole wallet balance, less the fee, to another address",
	Long: `Quotes the fee for a transfer of the full balance, then sends
balance - fee so the wallet ends empty. The recipient comes from --to,
the positional argument or the TO_ADDRESS environment variable.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		toText := transferTo
		if toText == "" && len(args) > 0 {
			toText = args[0]
		}
		if toText == "" {
			if toText, err = config.Require(config.EnvToAddress); err != nil {
				return err
			}
		}
		to, err := types.PublicKeyFromBase58(toText)
		if err != nil {
			return err
		}

		kp, err := loadWalletFile(cfg)
		if err != nil {
			return err
		}

		s, err := openSession(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx, cancel := s.context()
		defer cancel()

		res, err := service.NewTransferService(s.tx).SweepBalance(ctx, kp, to)
		if res != nil {
			printResult(cmd.OutOrStdout(), "Transfer", res)
			fmt.Fprintf(cmd.OutOrStdout(), "Sent %d lamports (fee %d) to %s\n", res.Amount, res.Fee, to)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(transferCmd)
	transferCmd.Flags().StringVarP(&transferTo, "to", "t", "", "recipient address")
}
