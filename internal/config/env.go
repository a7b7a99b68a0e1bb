package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Note: Password is prompted at runtime and stored in memory - use GetWalletPasswordBytes()
type Config struct {
	Port                  string `envconfig:"PORT" default:"8080"`
	WalletFilePath        string `envconfig:"WALLET_FILE_PATH" required:"true"`
	RPCURL                string `envconfig:"ETH_RPC_URL" default:"http://127.0.0.1:8545"`
	TokenAddress          string `envconfig:"TOKEN_ADDRESS" required:"true"`
	ChainID               int64  `envconfig:"CHAIN_ID" default:"0"`
	TransferCooldown      int    `envconfig:"TRANSFER_COOLDOWN_MINUTES" default:"0"`
	ReceiptTimeoutSeconds int    `envconfig:"RECEIPT_TIMEOUT_SECONDS" default:"120"`
	HistoryBlockRange     uint64 `envconfig:"HISTORY_BLOCK_RANGE" default:"5000"`
	LogLevel              string `envconfig:"LOG_LEVEL" default:"info"`
	LogPretty             bool   `envconfig:"LOG_PRETTY" default:"false"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c, err := Load()
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// Load reads configuration from environment variables without touching the global instance.
func Load() (*Config, error) {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if strings.TrimSpace(c.WalletFilePath) == "" {
		return nil, errors.New("WALLET_FILE_PATH is required")
	}
	if strings.TrimSpace(c.TokenAddress) == "" {
		return nil, errors.New("TOKEN_ADDRESS is required")
	}
	if c.ReceiptTimeoutSeconds <= 0 {
		return nil, errors.New("RECEIPT_TIMEOUT_SECONDS must be positive")
	}
	if c.TransferCooldown < 0 {
		return nil, errors.New("TRANSFER_COOLDOWN_MINUTES cannot be negative")
	}
	return c, nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetWalletFilePath returns path to .wlt key file from configuration
func GetWalletFilePath() string {
	return Get().WalletFilePath
}

// GetRPCURL returns the Ethereum JSON-RPC endpoint
func GetRPCURL() string {
	return Get().RPCURL
}

// GetTokenAddress returns the token contract address
func GetTokenAddress() string {
	return Get().TokenAddress
}

// GetChainID returns configured chain id, 0 means "ask the node"
func GetChainID() int64 {
	return Get().ChainID
}

// GetTransferCooldown returns the cooldown between transfers
func GetTransferCooldown() time.Duration {
	return time.Duration(Get().TransferCooldown) * time.Minute
}

// GetReceiptTimeout returns how long a transfer waits to be mined
func GetReceiptTimeout() time.Duration {
	return time.Duration(Get().ReceiptTimeoutSeconds) * time.Second
}

// GetHistoryBlockRange returns how many recent blocks the history scans
func GetHistoryBlockRange() uint64 {
	return Get().HistoryBlockRange
}

var passwordBytes []byte

// PromptForPassword prompts the user for the wallet password in the terminal.
// The password is read without echoing (hidden input) and stored in memory.
// Call this at startup before the server begins handling requests.
func PromptForPassword() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	fmt.Fprint(os.Stderr, "Enter wallet password: ")
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	defer clear(raw)
	return SetPassword(raw)
}

// SetPassword stores a copy of password in memory.
func SetPassword(raw []byte) error {
	if len(raw) == 0 {
		return errors.New("password cannot be empty")
	}
	clear(passwordBytes)
	passwordBytes = make([]byte, len(raw))
	copy(passwordBytes, raw)
	return nil
}

// GetWalletPasswordBytes returns the password stored in memory (from PromptForPassword).
// Returns an error if the password was not set.
// Caller must zero the returned slice after use for security.
func GetWalletPasswordBytes() ([]byte, error) {
	if len(passwordBytes) == 0 {
		return nil, errors.New("password not set: call PromptForPassword at startup")
	}
	out := make([]byte, len(passwordBytes))
	copy(out, passwordBytes)
	return out, nil
}
