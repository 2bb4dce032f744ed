package cryptography

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testPrivateKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testAddress    = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

func TestAddressFromPrivateKey(t *testing.T) {
	addr, err := AddressFromPrivateKey(testPrivateKey)
	require.NoError(t, err)
	assert.Equal(t, testAddress, addr)

	addr, err = AddressFromPrivateKey("0x" + testPrivateKey)
	require.NoError(t, err)
	assert.Equal(t, testAddress, addr)

	_, err = AddressFromPrivateKey("not-a-key")
	assert.ErrorContains(t, err, "invalid private key")
}

func TestSignAndVerify_RoundTrip(t *testing.T) {
	message := ProofMessage(HashString("1"), HashString("reasoning_result_1"))

	signature, err := SignMessage(message, testPrivateKey)
	require.NoError(t, err)
	assert.Len(t, signature, 132)

	ok, err := VerifySignature(message, signature, testAddress)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifySignature(message+"tampered", signature, testAddress)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = VerifySignature(message, signature, "0x0000000000000000000000000000000000000001")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifySignature_MalformedSignature(t *testing.T) {
	_, err := VerifySignature("msg", "0x1234", testAddress)
	assert.ErrorContains(t, err, "invalid signature length")

	_, err = VerifySignature("msg", "zz", testAddress)
	assert.ErrorContains(t, err, "invalid signature")
}

func TestSignMessage_InvalidKey(t *testing.T) {
	_, err := SignMessage("msg", "123456")
	assert.ErrorContains(t, err, "invalid private key")
}
