// Package provider implements the wallet provider on top of the local
// encrypted key file.
package provider

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/AlexZinkM/token-wallet/internal/crypto"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// ErrNoProvider is returned when there is no key file to unlock.
var ErrNoProvider = errors.New("No wallet provider found. Generate a wallet first.")

// ChainIDReader reports the chain the signer signs for.
type ChainIDReader interface {
	ChainID(ctx context.Context) (*big.Int, error)
}

// PasswordFunc returns a fresh copy of the wallet password; the caller zeroes it.
type PasswordFunc func() ([]byte, error)

// Keystore is a wallet provider backed by a .wlt key file
type Keystore struct {
	filePath string
	password PasswordFunc
	chain    ChainIDReader

	mu      sync.Mutex
	chainID *big.Int
}

// NewKeystore creates a provider for filePath. chainID may be nil or zero, in which
// case the chain is asked on first signature.
func NewKeystore(filePath string, password PasswordFunc, chain ChainIDReader, chainID *big.Int) *Keystore {
	if chainID != nil && chainID.Sign() == 0 {
		chainID = nil
	}
	return &Keystore{
		filePath: filePath,
		password: password,
		chain:    chain,
		chainID:  chainID,
	}
}

// RequestAccounts unlocks the key file and returns its account.
// The unlock proves the password matches before any signing happens.
func (k *Keystore) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key, address, err := k.unlock()
	if err != nil {
		return nil, err
	}
	clear(key)
	return []common.Address{address}, nil
}

// Signer returns transact options that sign with the unlocked key
func (k *Keystore) Signer(ctx context.Context) (*bind.TransactOpts, error) {
	chainID, err := k.resolveChainID(ctx)
	if err != nil {
		return nil, err
	}

	keyBytes, _, err := k.unlock()
	if err != nil {
		return nil, err
	}
	defer clear(keyBytes)

	privateKey, err := ethcrypto.ToECDSA(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	opts, err := bind.NewKeyedTransactorWithChainID(privateKey, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create signer: %w", err)
	}
	opts.Context = ctx
	return opts, nil
}

// resolveChainID asks the chain once and keeps the answer.
func (k *Keystore) resolveChainID(ctx context.Context) (*big.Int, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.chainID != nil {
		return k.chainID, nil
	}
	if k.chain == nil {
		return nil, errors.New("chain id unknown")
	}
	id, err := k.chain.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain id: %w", err)
	}
	k.chainID = id
	return id, nil
}

// unlock decrypts the key file and checks the key matches the stored address.
// The caller must zero the returned key.
func (k *Keystore) unlock() ([]byte, common.Address, error) {
	address, err := crypto.ReadWalletAddress(k.filePath)
	if err != nil {
		if errors.Is(err, crypto.ErrKeyFileMissing) {
			return nil, common.Address{}, ErrNoProvider
		}
		return nil, common.Address{}, fmt.Errorf("failed to read wallet address: %w", err)
	}
	if !common.IsHexAddress(address) {
		return nil, common.Address{}, fmt.Errorf("invalid address in key file: %q", address)
	}

	password, err := k.password()
	if err != nil {
		return nil, common.Address{}, err
	}
	defer clear(password)

	_, walletData, err := crypto.DecryptWallet(k.filePath, password)
	if err != nil {
		return nil, common.Address{}, fmt.Errorf("failed to decrypt wallet: %w", err)
	}

	privateKey, err := ethcrypto.ToECDSA(walletData.PrivateKey)
	if err != nil {
		clear(walletData.PrivateKey)
		return nil, common.Address{}, fmt.Errorf("invalid private key: %w", err)
	}

	derived := ethcrypto.PubkeyToAddress(privateKey.PublicKey)
	if !strings.EqualFold(derived.Hex(), address) {
		clear(walletData.PrivateKey)
		return nil, common.Address{}, errors.New("private key does not match address")
	}
	return walletData.PrivateKey, derived, nil
}
