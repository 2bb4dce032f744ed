package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyneurons/polyneurons-backend/internal/consensus"
	"github.com/polyneurons/polyneurons-backend/internal/consensus/metrics"
	"github.com/polyneurons/polyneurons-backend/pkg/cryptography"
	"github.com/polyneurons/polyneurons-backend/pkg/logging"
	"github.com/polyneurons/polyneurons-backend/pkg/types"
)

const testProverKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, required uint32) *Server {
	t.Helper()
	logger := logging.NewNoOpLogger()
	engine, err := consensus.NewEngine(required, logger)
	require.NoError(t, err)
	return NewServer(Config{Port: "0"}, Dependencies{Logger: logger, Engine: engine, Collector: metrics.NewCollector()})
}

func do(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestConsensusFlow_EndToEnd(t *testing.T) {
	srv := newTestServer(t, 3)

	for _, v := range []string{"v1", "v2", "v3"} {
		w := do(t, srv, http.MethodPost, "/api/validators", types.AddValidatorRequest{Validator: v})
		require.Equal(t, http.StatusCreated, w.Code)
	}
	roster := decode[types.ValidatorsResponse](t, do(t, srv, http.MethodGet, "/api/validators", nil))
	assert.Equal(t, []string{"v1", "v2", "v3"}, roster.Validators)
	assert.Equal(t, uint32(3), roster.RequiredConfirmations)

	proof := types.ProofOfReasoning{InputHash: "0xabc", OutputHash: "0xdef", Prover: "P", Timestamp: 1}
	w := do(t, srv, http.MethodPost, "/api/proofs", types.SubmitProofRequest{Proof: proof})
	require.Equal(t, http.StatusCreated, w.Code)

	for i, v := range []string{"v1", "v2", "v3"} {
		w := do(t, srv, http.MethodPost, "/api/proofs/0xabc/validate", types.ValidateProofRequest{Validator: v})
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[types.ValidateProofResponse](t, w)
		assert.Equal(t, i == 2, resp.Consensus)
	}

	verified := decode[[]types.ProofOfReasoning](t, do(t, srv, http.MethodGet, "/api/proofs/verified", nil))
	require.Len(t, verified, 1)
	assert.Equal(t, "0xabc", verified[0].InputHash)

	stored := decode[types.ProofOfReasoning](t, do(t, srv, http.MethodGet, "/api/proofs/0xabc", nil))
	assert.True(t, stored.Verified)
	assert.Equal(t, uint32(3), stored.Confirmations)

	rewards := decode[types.RewardsResponse](t, do(t, srv, http.MethodGet, "/api/proofs/0xabc/rewards", nil))
	assert.Equal(t, map[string]uint64{"P": 700, "v1": 100, "v2": 100, "v3": 100}, rewards.Rewards)
}

func TestValidateProof_UnknownProof(t *testing.T) {
	srv := newTestServer(t, 1)

	w := do(t, srv, http.MethodPost, "/api/proofs/0xmissing/validate", types.ValidateProofRequest{Validator: "v1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[types.ValidateProofResponse](t, w).Consensus)

	rewards := decode[types.RewardsResponse](t, do(t, srv, http.MethodGet, "/api/proofs/0xmissing/rewards", nil))
	assert.Empty(t, rewards.Rewards)

	w = do(t, srv, http.MethodGet, "/api/proofs/0xmissing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBadRequests(t *testing.T) {
	srv := newTestServer(t, 1)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
	}{
		{"empty validator", http.MethodPost, "/api/validators", types.AddValidatorRequest{Validator: "  "}},
		{"malformed validator body", http.MethodPost, "/api/validators", "nope"},
		{"proof without input hash", http.MethodPost, "/api/proofs", types.SubmitProofRequest{}},
		{"vote without validator", http.MethodPost, "/api/proofs/0xabc/validate", types.ValidateProofRequest{}},
		{"signed proof with non address prover", http.MethodPost, "/api/proofs", types.SubmitProofRequest{
			Proof:     types.ProofOfReasoning{InputHash: "0x01", OutputHash: "0x02", Prover: "alice"},
			Signature: "0xdeadbeef",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, srv, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestSubmitProof_Signature(t *testing.T) {
	srv := newTestServer(t, 1)

	prover, err := cryptography.AddressFromPrivateKey(testProverKey)
	require.NoError(t, err)
	proof := types.ProofOfReasoning{InputHash: "0x01", OutputHash: "0x02", Prover: prover}

	signature, err := cryptography.SignMessage(cryptography.ProofMessage(proof.InputHash, proof.OutputHash), testProverKey)
	require.NoError(t, err)

	w := do(t, srv, http.MethodPost, "/api/proofs", types.SubmitProofRequest{Proof: proof, Signature: signature})
	assert.Equal(t, http.StatusCreated, w.Code)

	forged := proof
	forged.InputHash = "0x03"
	w = do(t, srv, http.MethodPost, "/api/proofs", types.SubmitProofRequest{Proof: forged, Signature: signature})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, srv, http.MethodPost, "/api/proofs", types.SubmitProofRequest{Proof: forged, Signature: "0xdeadbeef"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, srv, http.MethodGet, "/api/proofs/0x03", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, 2)

	w := do(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"required_confirmations":2`)

	w = do(t, srv, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "polyneurons_consensus")
}
