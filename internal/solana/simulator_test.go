package solana

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/btcsuite/btcutil/base58"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProgramID = "11111111111111111111111111111111"

// fakeCaller scripts JSON-RPC responses per method.
type fakeCaller struct {
	responses map[string]string // method -> result JSON
	errs      map[string]error  // method -> call error
	calls     []string
}

func (f *fakeCaller) CallContext(_ context.Context, result interface{}, method string, _ ...interface{}) error {
	f.calls = append(f.calls, method)
	if err, ok := f.errs[method]; ok {
		return err
	}
	raw, ok := f.responses[method]
	if !ok {
		return errors.New("unexpected method " + method)
	}
	return json.Unmarshal([]byte(raw), result)
}

func blockhashJSON() string {
	bh := base58.Encode(make([]byte, 32))
	return `{"value":{"blockhash":"` + bh + `"}}`
}

func newFake() *fakeCaller {
	return &fakeCaller{
		responses: map[string]string{
			"getLatestBlockhash":          blockhashJSON(),
			"simulateTransaction":         `{"value":{"err":null,"logs":["Program log: ok"],"unitsConsumed":123456}}`,
			"getRecentPrioritizationFees": `[{"slot":100,"prioritizationFee":0},{"slot":101,"prioritizationFee":5}]`,
		},
	}
}

func newTestSimulator(f *fakeCaller) *Simulator {
	return NewSimulator(&Client{c: f}, zerolog.Nop())
}

func TestSimulateSuccess(t *testing.T) {
	f := newFake()
	sim := newTestSimulator(f)

	res, err := sim.Simulate(context.Background(), SimulationRequest{
		ProgramID:     testProgramID,
		Proof:         make([]byte, 256),
		PublicWitness: make([]byte, 600),
	})
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, uint64(123456), res.UnitsConsumed)
	assert.Equal(t, []string{"Program log: ok"}, res.Logs)
	assert.Empty(t, res.Err)
	assert.Equal(t, DefaultComputeUnitLimit, res.ComputeUnitLimit)
	assert.Equal(t, 1, res.NumSignatures)
	assert.Greater(t, res.MessageSize, 856)
	assert.Equal(t, res.MessageSize+1+64, res.TransactionSize)
	require.Len(t, res.FeeSamples, 2)
	assert.Equal(t, uint64(101), res.FeeSamples[1].Slot)
	assert.Equal(t, uint64(5), res.FeeSamples[1].PrioritizationFee)
}

func TestSimulateOnChainRejection(t *testing.T) {
	f := newFake()
	f.responses["simulateTransaction"] = `{"value":{"err":{"InstructionError":[1,"InvalidAccountData"]},"logs":["Program log: boom"],"unitsConsumed":900}}`
	sim := newTestSimulator(f)

	res, err := sim.Simulate(context.Background(), SimulationRequest{
		ProgramID: testProgramID,
		Proof:     []byte{1},
	})
	require.NoError(t, err)

	assert.Equal(t, StatusFailed, res.Status)
	assert.Contains(t, res.Err, "InstructionError")
	assert.Equal(t, []string{"Program log: boom"}, res.Logs)
	assert.Equal(t, uint64(900), res.UnitsConsumed)
}

func TestSimulateTransportError(t *testing.T) {
	f := newFake()
	f.errs = map[string]error{"simulateTransaction": errors.New("connection refused")}
	sim := newTestSimulator(f)

	_, err := sim.Simulate(context.Background(), SimulationRequest{ProgramID: testProgramID})
	assert.ErrorIs(t, err, ErrTransport)
}

func TestSimulateInvalidProgramIDSkipsNetwork(t *testing.T) {
	f := newFake()
	sim := newTestSimulator(f)

	_, err := sim.Simulate(context.Background(), SimulationRequest{ProgramID: "not a program id"})
	assert.ErrorIs(t, err, ErrInvalidProgramID)
	assert.Empty(t, f.calls)
}

func TestSimulateFeeFetchFailureIsNonFatal(t *testing.T) {
	f := newFake()
	f.errs = map[string]error{"getRecentPrioritizationFees": errors.New("rate limited")}
	sim := newTestSimulator(f)

	res, err := sim.Simulate(context.Background(), SimulationRequest{ProgramID: testProgramID})
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, res.Status)
	assert.Nil(t, res.FeeSamples)
}

func TestSimulateCustomBudgetAndPrice(t *testing.T) {
	f := newFake()
	sim := newTestSimulator(f)

	res, err := sim.Simulate(context.Background(), SimulationRequest{
		ProgramID:        testProgramID,
		ComputeUnitLimit: 900_000,
		ComputeUnitPrice: 25,
	})
	require.NoError(t, err)
	assert.Equal(t, uint32(900_000), res.ComputeUnitLimit)
	assert.Equal(t, uint64(25), res.ComputeUnitPrice)
}

func TestClientMalformedBlockhash(t *testing.T) {
	f := newFake()
	f.responses["getLatestBlockhash"] = `{"value":{"blockhash":"tooshort"}}`
	c := &Client{c: f}

	_, err := c.LatestBlockhash(context.Background())
	assert.ErrorIs(t, err, ErrTransport)
}
