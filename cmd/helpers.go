package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/holiman/uint256"
	"github.com/mezonai/devkit/client"
	"github.com/mezonai/devkit/config"
	"github.com/mezonai/devkit/errors"
	"github.com/mezonai/devkit/logx"
	"github.com/mezonai/devkit/service"
	"github.com/mezonai/devkit/store"
	"github.com/mezonai/devkit/types"
	"github.com/mezonai/devkit/wallet"
)

// loadConfig merges every config source, command flags last
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{
		IniPath: globalFlags.ConfigPath,
		EnvFile: globalFlags.EnvFile,
	})
	if err != nil {
		return nil, err
	}
	if globalFlags.RPCURL != "" {
		cfg.Network.RPCURL = globalFlags.RPCURL
	}
	if globalFlags.Keypair != "" {
		cfg.Network.KeypairPath = globalFlags.Keypair
	}
	if globalFlags.JournalDir != "" {
		cfg.Network.JournalDir = globalFlags.JournalDir
	}
	return cfg, nil
}

// session bundles what a network command needs
type session struct {
	cfg      *config.Config
	ledger   *client.RpcClient
	receipts store.ReceiptStore
	tx       *service.TxService
}

func openSession(cfg *config.Config) (*session, error) {
	ledger, err := client.NewClient(client.Config{
		Endpoint:   cfg.Network.RPCURL,
		Commitment: types.Commitment(cfg.Network.Commitment),
	})
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, ledger: ledger}
	if !globalFlags.NoJournal {
		receipts, err := store.NewLevelDBReceiptStore(cfg.Network.JournalDir)
		if err != nil {
			// network commands run without a journal
			logx.Warn("CMD", "Receipt journal unavailable: ", err)
		} else {
			s.receipts = receipts
		}
	}

	tracker := service.NewTracker(ledger, types.Commitment(cfg.Network.Commitment), cfg.Network.PollInterval())
	s.tx = service.NewTxService(ledger, tracker, s.receipts, cfg.Network.ExplorerCluster)
	return s, nil
}

// context bounds one command: request timeout plus confirmation wait
func (s *session) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.cfg.Network.RequestTimeout()+s.cfg.Network.ConfirmTimeout())
}

func (s *session) Close() {
	if s.receipts != nil {
		s.receipts.MustClose()
	}
	if err := s.ledger.Close(); err != nil {
		logx.Warn("CMD", "Closing ledger client: ", err)
	}
}

func loadWalletFile(cfg *config.Config) (*wallet.Keypair, error) {
	loader := &wallet.FileLoader{Path: cfg.Network.KeypairPath}
	return loader.LoadKeypair()
}

// parseLamports accepts decimal amounts with optional '_' separators
func parseLamports(text string) (uint64, error) {
	amount, err := uint256.FromDecimal(strings.ReplaceAll(strings.TrimSpace(text), "_", ""))
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidFormat, err, "could not parse amount %q", text)
	}
	if !amount.IsUint64() {
		return 0, errors.NewError(errors.ErrCodeInvalidFormat, "amount %s exceeds 64 bits", amount.Dec())
	}
	if amount.IsZero() {
		return 0, errors.NewError(errors.ErrCodeInvalidFormat, "amount must be positive")
	}
	return amount.Uint64(), nil
}

// promptLine reads one line from the terminal
func promptLine(prompt string) (string, error) {
	rl, err := readline.New(prompt)
	if err != nil {
		return "", err
	}
	defer rl.Close()

	line, err := rl.Readline()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// argOrPrompt uses the first positional argument when present
func argOrPrompt(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return promptLine(prompt)
}

func printResult(w io.Writer, action string, res *service.Result) {
	fmt.Fprintf(w, "%s: %s\n", action, res.Signature)
	if res.ExplorerURL != "" {
		fmt.Fprintf(w, "Explorer: %s\n", res.ExplorerURL)
	}
	if !res.Confirmed {
		fmt.Fprintln(w, "Status: submitted, not yet confirmed")
	}
}
