package solana

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/btcsuite/btcutil/base58"
	"github.com/ethereum/go-ethereum/rpc"
)

// ErrTransport marks a failed network round trip: endpoint unreachable, RPC
// error response, or a malformed reply. Never retried.
var ErrTransport = errors.New("rpc transport error")

// caller is the JSON-RPC boundary; satisfied by *rpc.Client and by test fakes.
type caller interface {
	CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error
}

// Client speaks the cluster's JSON-RPC 2.0 surface.
type Client struct {
	c caller
}

// Dial connects to the RPC endpoint. The transport's default timeout applies;
// no timeout or retry is layered on top.
func Dial(ctx context.Context, url string) (*Client, error) {
	c, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", ErrTransport, url, err)
	}
	return &Client{c: c}, nil
}

// SimulationValue is the inner result of simulateTransaction. Err is the
// cluster's structured error value and stays null on success.
type SimulationValue struct {
	Err           json.RawMessage `json:"err"`
	Logs          []string        `json:"logs"`
	UnitsConsumed uint64          `json:"unitsConsumed"`
}

// Rejected reports whether the simulated transaction was rejected on-chain.
func (v *SimulationValue) Rejected() bool {
	return len(v.Err) > 0 && string(v.Err) != "null"
}

// ErrText renders the structured rejection error, empty on success.
func (v *SimulationValue) ErrText() string {
	if !v.Rejected() {
		return ""
	}
	return string(v.Err)
}

// FeeSample is one observed slot/fee pair from the cluster.
type FeeSample struct {
	Slot              uint64 `json:"slot"`
	PrioritizationFee uint64 `json:"prioritization_fee"`
}

// wire shape of getRecentPrioritizationFees entries
type feeSampleWire struct {
	Slot              uint64 `json:"slot"`
	PrioritizationFee uint64 `json:"prioritizationFee"`
}

type contextValue[T any] struct {
	Value T `json:"value"`
}

// LatestBlockhash fetches a recent blockhash for the message.
func (c *Client) LatestBlockhash(ctx context.Context) ([32]byte, error) {
	var res contextValue[struct {
		Blockhash string `json:"blockhash"`
	}]
	err := c.c.CallContext(ctx, &res, "getLatestBlockhash", map[string]any{"commitment": "confirmed"})
	if err != nil {
		return [32]byte{}, fmt.Errorf("%w: getLatestBlockhash: %v", ErrTransport, err)
	}
	decoded := base58.Decode(res.Value.Blockhash)
	if len(decoded) != blockhashLen {
		return [32]byte{}, fmt.Errorf("%w: malformed blockhash %q", ErrTransport, res.Value.Blockhash)
	}
	var bh [32]byte
	copy(bh[:], decoded)
	return bh, nil
}

// SimulateTransaction submits the base64 transaction for simulation.
// Signature verification is skipped (the fee payer is a throwaway key) and
// the blockhash is replaced server-side so staleness cannot fail the run.
func (c *Client) SimulateTransaction(ctx context.Context, txBase64 string) (*SimulationValue, error) {
	var res contextValue[SimulationValue]
	err := c.c.CallContext(ctx, &res, "simulateTransaction", txBase64, map[string]any{
		"encoding":               "base64",
		"sigVerify":              false,
		"replaceRecentBlockhash": true,
		"commitment":             "confirmed",
	})
	if err != nil {
		return nil, fmt.Errorf("%w: simulateTransaction: %v", ErrTransport, err)
	}
	return &res.Value, nil
}

// RecentPrioritizationFees fetches the cluster's recent fee samples.
func (c *Client) RecentPrioritizationFees(ctx context.Context) ([]FeeSample, error) {
	var wire []feeSampleWire
	if err := c.c.CallContext(ctx, &wire, "getRecentPrioritizationFees", []string{}); err != nil {
		return nil, fmt.Errorf("%w: getRecentPrioritizationFees: %v", ErrTransport, err)
	}
	out := make([]FeeSample, len(wire))
	for i, w := range wire {
		out[i] = FeeSample{Slot: w.Slot, PrioritizationFee: w.PrioritizationFee}
	}
	return out, nil
}
