// Command wallet serves the token wallet pages and API.
// Usage: WALLET_FILE_PATH=wallet.wlt TOKEN_ADDRESS=0x... go run ./cmd/wallet
package main

import (
	"context"
	"errors"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/AlexZinkM/token-wallet/docs"
	"github.com/AlexZinkM/token-wallet/internal/api"
	"github.com/AlexZinkM/token-wallet/internal/client"
	"github.com/AlexZinkM/token-wallet/internal/config"
	"github.com/AlexZinkM/token-wallet/internal/logger"
	"github.com/AlexZinkM/token-wallet/internal/provider"
	"github.com/AlexZinkM/token-wallet/token"

	"github.com/rs/zerolog"
)

// @title        Token Wallet API
// @version      1.0
// @description  Connects a key-file wallet to an ERC-20 token and sends transfers.
// @BasePath     /
func main() {
	if err := config.Init(); err != nil {
		boot := logger.New("info", true)
		boot.Fatal().Err(err).Msg("failed to load config")
	}
	cfg := config.Get()
	log := logger.New(cfg.LogLevel, cfg.LogPretty)

	if err := config.PromptForPassword(); err != nil {
		log.Fatal().Err(err).Msg("failed to read password")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, log); err != nil {
		log.Fatal().Err(err).Msg("wallet server stopped")
	}
}

func run(ctx context.Context, log zerolog.Logger) error {
	dialCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	rpc, err := client.Dial(dialCtx, config.GetRPCURL())
	if err != nil {
		return err
	}
	defer rpc.Close()

	tokenClient, err := client.NewTokenClient(rpc, config.GetTokenAddress())
	if err != nil {
		return err
	}

	keystore := provider.NewKeystore(
		config.GetWalletFilePath(),
		config.GetWalletPasswordBytes,
		tokenClient,
		big.NewInt(config.GetChainID()),
	)

	session := token.NewSession(keystore, tokenClient, token.Options{
		Cooldown:       config.GetTransferCooldown(),
		ReceiptTimeout: config.GetReceiptTimeout(),
		Logger:         log,
	})

	router, err := api.SetupRouter(session, tokenClient, log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + config.GetPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("token", tokenClient.Address().Hex()).
			Msg("wallet server listening, swagger at /swagger/index.html")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	return srv.Shutdown(shutdownCtx)
}
