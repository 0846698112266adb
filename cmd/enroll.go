package cmd

import (
	"fmt"

	"github.com/mezonai/devkit/config"
	"github.com/mezonai/devkit/instruction"
	"github.com/mezonai/devkit/service"
	"github.com/mezonai/devkit/types"
	"github.com/mezonai/devkit/wallet"
	"github.com/spf13/cobra"
)

var enrollProgramID string

var enrollCmd = &cobra.Command{
	Use:   "enroll",
	Short: "Submit the enrollment completion call",
	Long: `Derives the enrollment account from BUMP_SEED and the signer, then
calls the enrollment program with GITHUB_SLUG. The signer is read from
TURBIN3_WALLET_SECRET_B58.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// every input is checked before the first network call
		github, err := config.Require(config.EnvGithubSlug)
		if err != nil {
			return err
		}
		seed, err := config.Require(config.EnvBumpSeed)
		if err != nil {
			return err
		}
		signer, err := (&wallet.EnvLoader{Name: config.EnvWalletSecret}).LoadKeypair()
		if err != nil {
			return err
		}

		programText := cfg.Enrollment.ProgramID
		if enrollProgramID != "" {
			programText = enrollProgramID
		}
		programID, err := types.PublicKeyFromBase58(programText)
		if err != nil {
			return err
		}
		program := instruction.EnrollmentProgram{
			ProgramID: programID,
			Seed:      []byte(seed),
			Method:    cfg.Enrollment.Instruction,
		}

		s, err := openSession(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx, cancel := s.context()
		defer cancel()

		res, err := service.NewEnrollService(s.tx, program).Enroll(ctx, signer, []byte(github))
		if res != nil {
			printResult(cmd.OutOrStdout(), "Enrollment", res)
			fmt.Fprintf(cmd.OutOrStdout(), "Enrollment account: %s\n", res.Account)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(enrollCmd)
	enrollCmd.Flags().StringVar(&enrollProgramID, "program-id", "", "enrollment program id")
}
