package solana

import (
	"crypto/ed25519"
	"encoding/binary"
	"fmt"
)

const (
	// DefaultComputeUnitLimit is requested when the caller does not override
	// the budget.
	DefaultComputeUnitLimit uint32 = 500_000

	// MaxComputeUnits is the network ceiling per transaction.
	MaxComputeUnits uint32 = 1_400_000

	signatureLen = 64
	blockhashLen = 32
)

// Instruction is a single program invocation before compilation into a
// message. The verify instruction carries no accounts, only data.
type Instruction struct {
	ProgramID PublicKey
	Data      []byte
}

// SetComputeUnitLimit builds the compute budget directive requesting a unit
// limit: discriminant 0x02 followed by a little-endian u32.
func SetComputeUnitLimit(units uint32) Instruction {
	data := make([]byte, 5)
	data[0] = 2
	binary.LittleEndian.PutUint32(data[1:], units)
	return Instruction{ProgramID: ComputeBudgetProgramID, Data: data}
}

// SetComputeUnitPrice builds the compute budget directive setting a price in
// microlamports per unit: discriminant 0x03 followed by a little-endian u64.
func SetComputeUnitPrice(microLamports uint64) Instruction {
	data := make([]byte, 9)
	data[0] = 3
	binary.LittleEndian.PutUint64(data[1:], microLamports)
	return Instruction{ProgramID: ComputeBudgetProgramID, Data: data}
}

// VerifyInstruction addresses the verifier program with proof and public
// witness bytes concatenated as the instruction payload.
func VerifyInstruction(programID PublicKey, proof, publicWitness []byte) Instruction {
	data := make([]byte, 0, len(proof)+len(publicWitness))
	data = append(data, proof...)
	data = append(data, publicWitness...)
	return Instruction{ProgramID: programID, Data: data}
}

// Transaction is a signed legacy-format transaction. The fee payer is a
// throwaway unfunded key: the transaction only ever goes through simulation.
type Transaction struct {
	signatures [][]byte
	message    []byte
}

// NewTransaction compiles the instructions into a legacy message signed by
// payer. The payer is the only signer and the only writable account; every
// program is readonly and unsigned.
func NewTransaction(payer ed25519.PrivateKey, blockhash [32]byte, instructions ...Instruction) (*Transaction, error) {
	if len(instructions) == 0 {
		return nil, fmt.Errorf("no instructions")
	}

	var payerKey PublicKey
	copy(payerKey[:], payer.Public().(ed25519.PublicKey))

	// Account table: payer first, then each distinct program in first-use order.
	keys := []PublicKey{payerKey}
	indexOf := func(pk PublicKey) uint8 {
		for i, k := range keys {
			if k == pk {
				return uint8(i)
			}
		}
		keys = append(keys, pk)
		return uint8(len(keys) - 1)
	}

	type compiled struct {
		programIndex uint8
		data         []byte
	}
	compiledIxs := make([]compiled, len(instructions))
	for i, ix := range instructions {
		compiledIxs[i] = compiled{programIndex: indexOf(ix.ProgramID), data: ix.Data}
	}

	// Message header: one required signature, no readonly signed accounts,
	// every non-payer account readonly unsigned.
	msg := []byte{1, 0, uint8(len(keys) - 1)}
	msg = appendShortVec(msg, len(keys))
	for _, k := range keys {
		msg = append(msg, k[:]...)
	}
	msg = append(msg, blockhash[:]...)
	msg = appendShortVec(msg, len(compiledIxs))
	for _, ix := range compiledIxs {
		msg = append(msg, ix.programIndex)
		msg = appendShortVec(msg, 0) // no instruction accounts
		msg = appendShortVec(msg, len(ix.data))
		msg = append(msg, ix.data...)
	}

	sig := ed25519.Sign(payer, msg)
	return &Transaction{signatures: [][]byte{sig}, message: msg}, nil
}

// MessageSize is the serialized message length, compared against the wire
// ceiling by the cost model.
func (t *Transaction) MessageSize() int { return len(t.message) }

// NumSignatures returns the signature count, which prices the base fee.
func (t *Transaction) NumSignatures() int { return len(t.signatures) }

// Serialize produces the wire bytes: a shortvec of signatures followed by the
// message.
func (t *Transaction) Serialize() []byte {
	out := appendShortVec(nil, len(t.signatures))
	for _, sig := range t.signatures {
		out = append(out, sig...)
	}
	return append(out, t.message...)
}

// Size is the full serialized transaction length.
func (t *Transaction) Size() int { return len(t.Serialize()) }

// appendShortVec appends a compact-u16 length prefix (7 bits per byte, high
// bit as continuation).
func appendShortVec(buf []byte, n int) []byte {
	v := uint16(n)
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			return append(buf, b)
		}
		buf = append(buf, b|0x80)
	}
}
