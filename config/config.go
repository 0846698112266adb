package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mezonai/devkit/errors"
	"github.com/mezonai/devkit/logx"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

func Default() *Config {
	return &Config{
		Network: NetworkConfig{
			RPCURL:           DefaultRPCURL,
			Commitment:       DefaultCommitment,
			ExplorerCluster:  DefaultExplorerCluster,
			RequestTimeoutMs: DefaultRequestTimeoutMs,
			ConfirmTimeoutMs: DefaultConfirmTimeoutMs,
			PollIntervalMs:   DefaultPollIntervalMs,
			KeypairPath:      DefaultKeypairPath,
			JournalDir:       DefaultJournalDir,
		},
		Enrollment: EnrollmentConfig{
			ProgramID:   DefaultProgramID,
			Instruction: DefaultInstruction,
		},
	}
}

// Load merges defaults, the Solana CLI config, the ini file, the .env file
// and the process environment, later sources winning.
func Load(opts LoadOptions) (*Config, error) {
	cfg := Default()

	cliPath := opts.CLIConfigPath
	if cliPath == "" {
		cliPath = DefaultCLIConfigPath()
	}
	if cliPath != "" {
		cliCfg, err := LoadCLIConfig(cliPath)
		switch {
		case err == nil:
			cfg.applyCLIConfig(cliCfg)
		case !os.IsNotExist(err):
			return nil, err
		}
	}

	if opts.IniPath != "" {
		if err := LoadNetworkConfig(opts.IniPath, cfg); err != nil {
			return nil, err
		}
	}

	if opts.EnvFile != "" {
		if err := LoadDotEnv(opts.EnvFile); err != nil {
			return nil, err
		}
	}

	lookup := opts.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	cfg.applyEnv(lookup)
	return cfg, nil
}

// DefaultCLIConfigPath is where the Solana CLI keeps its config, "" when no home directory is known
func DefaultCLIConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "solana", "cli", "config.yml")
}

// LoadCLIConfig reads a Solana CLI config.yml
func LoadCLIConfig(path string) (*CLIConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var cliCfg CLIConfig
	if err := yaml.NewDecoder(file).Decode(&cliCfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	logx.Debug("CONFIG", "Loaded Solana CLI config ", path)
	return &cliCfg, nil
}

// LoadNetworkConfig maps the [network] and [enrollment] sections onto cfg.
// Keys absent from the file keep their current values.
func LoadNetworkConfig(path string, cfg *Config) error {
	file, err := ini.Load(path)
	if err != nil {
		return err
	}
	if err := file.Section("network").MapTo(&cfg.Network); err != nil {
		return fmt.Errorf("invalid [network] section in %s: %w", path, err)
	}
	if err := file.Section("enrollment").MapTo(&cfg.Enrollment); err != nil {
		return fmt.Errorf("invalid [enrollment] section in %s: %w", path, err)
	}
	logx.Debug("CONFIG", "Loaded network config ", path)
	return nil
}

// LoadDotEnv loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	logx.Debug("CONFIG", "Loaded environment file ", path)
	return nil
}

// Require returns a non-empty environment variable or configuration_missing
func Require(name string) (string, error) {
	return RequireFrom(os.LookupEnv, name)
}

func RequireFrom(lookup func(string) (string, bool), name string) (string, error) {
	v, ok := lookup(name)
	if !ok || v == "" {
		return "", errors.ConfigurationMissing(name)
	}
	return v, nil
}

func (c *Config) applyCLIConfig(cliCfg *CLIConfig) {
	if cliCfg.JSONRPCURL != "" {
		c.Network.RPCURL = cliCfg.JSONRPCURL
	}
	if cliCfg.KeypairPath != "" {
		c.Network.KeypairPath = cliCfg.KeypairPath
	}
	if cliCfg.Commitment != "" {
		c.Network.Commitment = cliCfg.Commitment
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	overrides := map[string]*string{
		EnvRPCURL:      &c.Network.RPCURL,
		EnvKeypairPath: &c.Network.KeypairPath,
		EnvJournalDir:  &c.Network.JournalDir,
		EnvProgramID:   &c.Enrollment.ProgramID,
	}
	for name, field := range overrides {
		if v, ok := lookup(name); ok && v != "" {
			*field = v
		}
	}
}
