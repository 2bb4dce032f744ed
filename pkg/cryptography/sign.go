package cryptography

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

func parsePrivateKey(privateKey string) (*ecdsa.PrivateKey, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return key, nil
}

// AddressFromPrivateKey derives the checksummed Ethereum address used as a node identity.
func AddressFromPrivateKey(privateKey string) (string, error) {
	key, err := parsePrivateKey(privateKey)
	if err != nil {
		return "", err
	}
	return crypto.PubkeyToAddress(key.PublicKey).Hex(), nil
}

func personalMessageHash(message string) []byte {
	return crypto.Keccak256Hash([]byte(fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(message), message))).Bytes()
}

// SignMessage produces an EIP-191 personal signature, hex encoded with v in {27, 28}.
func SignMessage(message string, privateKey string) (string, error) {
	key, err := parsePrivateKey(privateKey)
	if err != nil {
		return "", err
	}

	signature, err := crypto.Sign(personalMessageHash(message), key)
	if err != nil {
		return "", fmt.Errorf("failed to sign message: %w", err)
	}
	signature[64] += 27

	return hexutil.Encode(signature), nil
}

func VerifySignature(message string, signature string, signerAddress string) (bool, error) {
	signatureBytes, err := hexutil.Decode(signature)
	if err != nil {
		return false, fmt.Errorf("invalid signature: %w", err)
	}
	if len(signatureBytes) != 65 {
		return false, fmt.Errorf("invalid signature length")
	}
	if signatureBytes[64] >= 27 {
		signatureBytes[64] -= 27
	}

	pubKeyRaw, err := crypto.Ecrecover(personalMessageHash(message), signatureBytes)
	if err != nil {
		return false, fmt.Errorf("failed to recover public key: %w", err)
	}
	pubKey, err := crypto.UnmarshalPubkey(pubKeyRaw)
	if err != nil {
		return false, fmt.Errorf("failed to unmarshal public key: %w", err)
	}

	return crypto.PubkeyToAddress(*pubKey) == common.HexToAddress(signerAddress), nil
}

// ProofMessage is the message a prover signs when submitting a proof.
func ProofMessage(inputHash, outputHash string) string {
	return inputHash + ":" + outputHash
}
