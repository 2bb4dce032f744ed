package chain

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/polyneurons/polyneurons-backend/internal/validator/metrics"
	"github.com/polyneurons/polyneurons-backend/pkg/logging"
)

// BlockNumberReader is the part of an RPC client the watcher needs.
// *ethclient.Client satisfies it.
type BlockNumberReader interface {
	BlockNumber(ctx context.Context) (uint64, error)
}

var _ BlockNumberReader = (*ethclient.Client)(nil)

// BlockWatcher records the chain head the validator is following.
type BlockWatcher struct {
	client BlockNumberReader
	logger logging.Logger
	latest atomic.Uint64
}

func NewBlockWatcher(client BlockNumberReader, logger logging.Logger) *BlockWatcher {
	return &BlockWatcher{client: client, logger: logger}
}

// Dial connects to an Ethereum-compatible RPC endpoint.
func Dial(ctx context.Context, rpcURL string) (*ethclient.Client, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial chain rpc %s: %w", rpcURL, err)
	}
	return client, nil
}

// Poll reads the current block number once.
func (w *BlockWatcher) Poll(ctx context.Context) (uint64, error) {
	number, err := w.client.BlockNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read block number: %w", err)
	}

	if previous := w.latest.Swap(number); number != previous {
		metrics.LatestBlockNumber.Set(float64(number))
		w.logger.Debug("Validating block", "block_number", number)
	}
	return number, nil
}

func (w *BlockWatcher) Latest() uint64 {
	return w.latest.Load()
}
