package config

const (
	DefaultRPCURL           = "https://api.devnet.solana.com"
	DefaultCommitment       = "confirmed"
	DefaultExplorerCluster  = "devnet"
	DefaultRequestTimeoutMs = 30000
	DefaultConfirmTimeoutMs = 60000
	DefaultPollIntervalMs   = 500
	DefaultKeypairPath      = "keys/dev-wallet.json"
	DefaultJournalDir       = "./data/journal"

	DefaultProgramID   = "ADcaide4vBtKuyZQqdU689YqEGZMCmS4tL35bdTv9wJa"
	DefaultInstruction = "complete"

	DefaultEnvFile = ".env"
)

// Operation inputs read from the environment
const (
	EnvToAddress    = "TO_ADDRESS"
	EnvGithubSlug   = "GITHUB_SLUG"
	EnvBumpSeed     = "BUMP_SEED"
	EnvWalletSecret = "TURBIN3_WALLET_SECRET_B58"
)

// Environment overrides of file settings
const (
	EnvRPCURL      = "RPC_URL"
	EnvKeypairPath = "KEYPAIR_PATH"
	EnvJournalDir  = "JOURNAL_DIR"
	EnvProgramID   = "PROGRAM_ID"
)
