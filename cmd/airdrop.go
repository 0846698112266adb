package cmd

import (
	"fmt"

	"github.com/mezonai/devkit/service"
	"github.com/spf13/cobra"
)

var airdropAmount string

var airdropCmd = &cobra.Command{
	Use:   "airdrop",
	Short: "Request devnet test funds for the local wallet",
	Long: `Requests test funds for the wallet in --keypair and waits for confirmation.

Examples:
  # Request the default 2 SOL
  airdrop --keypair keys/dev-wallet.json

  # Request 0.5 SOL
  airdrop --amount 500_000_000`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lamports, err := parseLamports(airdropAmount)
		if err != nil {
			return err
		}
		cfg, err := loadConfig()
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

		res, err := service.NewFaucetService(s.tx).RequestFunds(ctx, kp.PublicKey(), lamports)
		if res != nil {
			printResult(cmd.OutOrStdout(), "Airdrop", res)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Received %d lamports at %s\n", res.Amount, kp.PublicKey())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(airdropCmd)
	airdropCmd.Flags().StringVarP(&airdropAmount, "amount", "a", "2_000_000_000", "lamports to request")
}
