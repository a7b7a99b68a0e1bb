package token

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/AlexZinkM/token-wallet/internal/crypto"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateWallet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.wlt")

	address, err := GenerateWallet(path, []byte("pw"))
	require.NoError(t, err)
	assert.Regexp(t, `^0x[a-fA-F0-9]{40}$`, address)

	keyFile, data, err := crypto.DecryptWallet(path, []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, "ethereum", keyFile.Network)
	assert.Equal(t, address, keyFile.Address)
	assert.NotEmpty(t, keyFile.QR)
	assert.NotEmpty(t, data.CreatedAt)

	key, err := ethcrypto.ToECDSA(data.PrivateKey)
	require.NoError(t, err)
	assert.Equal(t, address, ethcrypto.PubkeyToAddress(key.PublicKey).Hex())
}

func TestGenerateWalletRefusesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.wlt")
	_, err := GenerateWallet(path, []byte("pw"))
	require.NoError(t, err)

	_, err = GenerateWallet(path, []byte("pw"))
	assert.True(t, IsFileExistsError(err))
}

func TestGenerateWalletEmptyFileIsReused(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.wlt")
	require.NoError(t, os.WriteFile(path, nil, 0600))

	_, err := GenerateWallet(path, []byte("pw"))
	require.NoError(t, err)
}

func TestGenerateWalletExtension(t *testing.T) {
	_, err := GenerateWallet(filepath.Join(t.TempDir(), "wallet.txt"), []byte("pw"))
	require.Error(t, err)
	assert.False(t, IsFileExistsError(err))
}
