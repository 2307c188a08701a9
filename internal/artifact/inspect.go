package artifact

import (
	"bytes"
	"fmt"
	"os"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
)

// Inspection is the result of deserializing the proving artifacts locally.
// The external prover emits Groth16 artifacts over BN254; a proof or key that
// does not deserialize here would be rejected on-chain too, so inspection
// catches corrupt artifacts before any RPC round trip is spent on them.
type Inspection struct {
	ProofPath     string
	ProofSize     int64
	ProofOK       bool
	ProofErr      string
	VerifyingPath string
	VerifyingSize int64
	VerifyingOK   bool
	VerifyingErr  string
	WitnessPath   string
	WitnessSize   int64
}

// Inspect locates the proof, verifying key and public witness under root and
// checks that the proof and verifying key parse as Groth16/BN254.
func Inspect(root string) (*Inspection, error) {
	proofPath, err := Find(root, "proof")
	if err != nil {
		return nil, err
	}
	vkPath, err := Find(root, "vk")
	if err != nil {
		return nil, err
	}
	pwPath, err := Find(root, "pw")
	if err != nil {
		return nil, err
	}

	ins := &Inspection{ProofPath: proofPath, VerifyingPath: vkPath, WitnessPath: pwPath}

	proofBytes, err := os.ReadFile(proofPath)
	if err != nil {
		return nil, fmt.Errorf("read proof: %w", err)
	}
	ins.ProofSize = int64(len(proofBytes))
	proof := groth16.NewProof(ecc.BN254)
	if _, err := proof.ReadFrom(bytes.NewReader(proofBytes)); err != nil {
		ins.ProofErr = err.Error()
	} else {
		ins.ProofOK = true
	}

	vkBytes, err := os.ReadFile(vkPath)
	if err != nil {
		return nil, fmt.Errorf("read verifying key: %w", err)
	}
	ins.VerifyingSize = int64(len(vkBytes))
	vk := groth16.NewVerifyingKey(ecc.BN254)
	if _, err := vk.ReadFrom(bytes.NewReader(vkBytes)); err != nil {
		ins.VerifyingErr = err.Error()
	} else {
		ins.VerifyingOK = true
	}

	pwInfo, err := os.Stat(pwPath)
	if err != nil {
		return nil, fmt.Errorf("stat public witness: %w", err)
	}
	ins.WitnessSize = pwInfo.Size()

	return ins, nil
}
