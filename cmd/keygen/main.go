// Generates a new encrypted .wlt key file at WALLET_FILE_PATH and prints its address.
// Usage: WALLET_FILE_PATH=wallet.wlt go run ./cmd/keygen
package main

import (
	"fmt"
	"os"

	"github.com/AlexZinkM/token-wallet/internal/config"
	"github.com/AlexZinkM/token-wallet/internal/logger"
	"github.com/AlexZinkM/token-wallet/token"
)

func main() {
	log := logger.New("info", true)

	path := os.Getenv("WALLET_FILE_PATH")
	if path == "" {
		log.Fatal().Msg("WALLET_FILE_PATH not set")
	}

	if err := config.PromptForPassword(); err != nil {
		log.Fatal().Err(err).Msg("failed to read password")
	}
	password, err := config.GetWalletPasswordBytes()
	if err != nil {
		log.Fatal().Err(err).Msg("password unavailable")
	}
	defer clear(password)

	address, err := token.GenerateWallet(path, password)
	if err != nil {
		if token.IsFileExistsError(err) {
			log.Error().Err(err).Str("path", path).Msg("refusing to overwrite key file")
			os.Exit(1)
		}
		log.Fatal().Err(err).Msg("failed to generate wallet")
	}

	fmt.Println(address)
}
