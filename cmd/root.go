package cmd

import (
	"fmt"
	"os"

	"github.com/mezonai/devkit/config"
	"github.com/mezonai/devkit/logx"
	"github.com/spf13/cobra"
)

type GlobalFlags struct {
	ConfigPath string
	EnvFile    string
	RPCURL     string
	Keypair    string
	JournalDir string
	NoJournal  bool
	Verbose    bool
}

var globalFlags GlobalFlags

var rootCmd = &cobra.Command{
	Use:   "devkit",
	Short: "Devnet wallet toolkit",
	Long: `Devnet utilities for a wallet workflow: key conversion, test funds,
full-balance transfers and the enrollment program call.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logx.SetConsole(globalFlags.Verbose)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&globalFlags.ConfigPath, "config", "", "ini file with [network] and [enrollment] sections")
	flags.StringVar(&globalFlags.EnvFile, "env-file", config.DefaultEnvFile, "dotenv file loaded before reading the environment")
	flags.StringVar(&globalFlags.RPCURL, "rpc-url", "", "ledger JSON-RPC endpoint")
	flags.StringVar(&globalFlags.Keypair, "keypair", "", "keypair file (JSON byte array)")
	flags.StringVar(&globalFlags.JournalDir, "journal-dir", "", "receipt journal directory")
	flags.BoolVar(&globalFlags.NoJournal, "no-journal", false, "do not record receipts")
	flags.BoolVarP(&globalFlags.Verbose, "verbose", "v", false, "mirror logs to stderr")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logx.Error("CMD", "Command execution failed: ", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
