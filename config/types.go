package config

import "time"

// NetworkConfig is the [network] section of the ini file
type NetworkConfig struct {
	RPCURL           string `ini:"rpc_url"`
	Commitment       string `ini:"commitment"`
	ExplorerCluster  string `ini:"explorer_cluster"`
	RequestTimeoutMs int    `ini:"request_timeout_ms"`
	ConfirmTimeoutMs int    `ini:"confirm_timeout_ms"`
	PollIntervalMs   int    `ini:"poll_interval_ms"`
	KeypairPath      string `ini:"keypair_path"`
	JournalDir       string `ini:"journal_dir"`
}

func (n NetworkConfig) RequestTimeout() time.Duration {
	return time.Duration(n.RequestTimeoutMs) * time.Millisecond
}

func (n NetworkConfig) ConfirmTimeout() time.Duration {
	return time.Duration(n.ConfirmTimeoutMs) * time.Millisecond
}

func (n NetworkConfig) PollInterval() time.Duration {
	return time.Duration(n.PollIntervalMs) * time.Millisecond
}

// EnrollmentConfig is the [enrollment] section of the ini file
type EnrollmentConfig struct {
	ProgramID   string `ini:"program_id"`
	Instruction string `ini:"instruction"`
}

// CLIConfig mirrors the Solana CLI config.yml
type CLIConfig struct {
	JSONRPCURL  string `yaml:"json_rpc_url"`
	KeypairPath string `yaml:"keypair_path"`
	Commitment  string `yaml:"commitment"`
}

type Config struct {
	Network    NetworkConfig
	Enrollment EnrollmentConfig
}

// LoadOptions names the optional sources merged by Load
type LoadOptions struct {
	// CLIConfigPath defaults to ~/.config/solana/cli/config.yml, missing file is ignored
	CLIConfigPath string
	// IniPath must exist when set
	IniPath string
	// EnvFile is loaded without overriding variables that are already set, missing file is ignored
	EnvFile string
	// Lookup defaults to os.LookupEnv
	Lookup func(string) (string, bool)
}
