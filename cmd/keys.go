package cmd

import (
	"fmt"

	"github.com/mezonai/devkit/keycodec"
	"github.com/mezonai/devkit/logx"
	"github.com/mezonai/devkit/wallet"
	"github.com/spf13/cobra"
)

var keygenOut string

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a new keypair",
	Long: `Generates an ed25519 keypair and prints its address and the secret key
as a JSON byte array. With --out the byte array is also written to a file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		kp, err := wallet.NewKeypair()
		if err != nil {
			return err
		}
		if keygenOut != "" {
			if err := wallet.SaveKeypairFile(keygenOut, kp); err != nil {
				return err
			}
			logx.Info("KEYGEN", "Wrote keypair for ", kp.PublicKey(), " to ", keygenOut)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "You've generated a new wallet: %s\n", kp.PublicKey())
		fmt.Fprintf(out, "Secret key bytes:\n%s\n", keycodec.FormatByteArray(kp.Bytes()))
		return nil
	},
}

var base58ToWalletCmd = &cobra.Command{
	Use:   "base58-to-wallet [base58-secret]",
	Short: "Convert a base-58 secret key to a byte array",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := argOrPrompt(args, "Enter your base58 private key: ")
		if err != nil {
			return err
		}
		array, err := base58ToByteArray(text)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), array)
		return nil
	},
}

var walletToBase58Cmd = &cobra.Command{
	Use:   "wallet-to-base58 [byte-array]",
	Short: "Convert a byte-array secret key to base-58",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := argOrPrompt(args, "Enter your wallet byte array: ")
		if err != nil {
			return err
		}
		encoded, err := byteArrayToBase58(text)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), encoded)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keygenCmd, base58ToWalletCmd, walletToBase58Cmd)
	keygenCmd.Flags().StringVarP(&keygenOut, "out", "o", "", "write the keypair to this file")
}

func base58ToByteArray(text string) (string, error) {
	b, err := keycodec.DecodeBase58(text)
	if err != nil {
		return "", err
	}
	return keycodec.FormatByteArray(b), nil
}

func byteArrayToBase58(text string) (string, error) {
	b, err := keycodec.ParseByteArray(text)
	if err != nil {
		return "", err
	}
	return keycodec.EncodeBase58(b), nil
}
