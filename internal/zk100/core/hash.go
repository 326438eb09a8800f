package core

import (
	"math/big"
	"sync"

	"golang.org/x/crypto/blake2s"
)

// PoseidonHash implements a basic Poseidon hash function.
// NOTE: this is a BASIC implementation, kept around for the additive-MDS
// variant exercised by TestPoseidonHashBasicEmptyIsZero. Production code must go through
// HashPair, which is backed by EnhancedPoseidonHash below.
type PoseidonHash struct {
	field *Field
	// Poseidon parameters for the field
	roundsFull    int
	roundsPartial int
	// S-box power (typically 3 or 5)
	sboxPower int
}

// NewPoseidonHash creates a new Poseidon hash instance
func NewPoseidonHash(field *Field) *PoseidonHash {
	// Standard Poseidon parameters for common fields
	// These can be optimized based on the specific field
	return &PoseidonHash{
		field:         field,
		roundsFull:    8,  // Full rounds
		roundsPartial: 57, // Partial rounds
		sboxPower:     5,  // S-box power
	}
}

// Hash computes the Poseidon hash of the input
func (p *PoseidonHash) Hash(inputs []*FieldElement) (*FieldElement, error) {
	if len(inputs) == 0 {
		return p.field.Zero(), nil
	}

	// Poseidon state (capacity + rate)
	// For simplicity, we'll use a 2-element state
	state := make([]*FieldElement, 2)
	state[0] = p.field.Zero() // capacity
	state[1] = p.field.Zero() // rate

	// Process inputs in chunks
	for i := 0; i < len(inputs); i++ {
		// Add input to rate element
		state[1] = state[1].Add(inputs[i])

		// Apply Poseidon permutation
		state = p.poseidonPermutation(state)
	}

	// Return the capacity element as the hash
	return state[0], nil
}

// poseidonPermutation applies the Poseidon permutation
func (p *PoseidonHash) poseidonPermutation(state []*FieldElement) []*FieldElement {
	// Apply full rounds
	for round := 0; round < p.roundsFull/2; round++ {
		state = p.fullRound(state, round)
	}

	// Apply partial rounds
	for round := 0; round < p.roundsPartial; round++ {
		state = p.partialRound(state, round)
	}

	// Apply remaining full rounds
	for round := 0; round < p.roundsFull/2; round++ {
		state = p.fullRound(state, round)
	}

	return state
}

// fullRound applies a full round of Poseidon
func (p *PoseidonHash) fullRound(state []*FieldElement, round int) []*FieldElement {
	roundConstant := p.field.NewElementFromInt64(int64(round + 1))

	for i := range state {
		state[i] = state[i].Add(roundConstant)
		state[i] = p.sbox(state[i])
	}

	state[0] = state[0].Add(state[1])
	state[1] = state[1].Add(state[0])

	return state
}

// partialRound applies a partial round of Poseidon
func (p *PoseidonHash) partialRound(state []*FieldElement, round int) []*FieldElement {
	roundConstant := p.field.NewElementFromInt64(int64(round + 100))
	state[0] = state[0].Add(roundConstant)

	state[0] = p.sbox(state[0])

	state[0] = state[0].Add(state[1])
	state[1] = state[1].Add(state[0])

	return state
}

// sbox applies the S-box transformation
func (p *PoseidonHash) sbox(x *FieldElement) *FieldElement {
	result := x
	for i := 1; i < p.sboxPower; i++ {
		result = result.Mul(x)
	}
	return result
}

var (
	defaultPairHashOnce sync.Once
	defaultPairHash     *EnhancedPoseidonHash
)

// pairHasher returns the process-wide EnhancedPoseidonHash instance used for
// commitment-layer pair hashing over DefaultPrimeField. Round constants and
// the MDS matrix are expensive to regenerate, so this is built once.
func pairHasher() *EnhancedPoseidonHash {
	defaultPairHashOnce.Do(func() {
		params := GetDefaultPoseidonParameters(DefaultPrimeField, 128)
		h, err := NewEnhancedPoseidonHash(DefaultPrimeField, params)
		if err != nil {
			panic("core: failed to initialize default Poseidon pair hasher: " + err.Error())
		}
		defaultPairHash = h
	})
	return defaultPairHash
}

// HashPair is the single production two-to-one compression function used
// throughout the commitment layer (Merkle node hashing, program/challenge/
// output commitments). It is order-sensitive: HashPair(a, b) != HashPair(b, a)
// in general. Every cross-implementation digest in this repository must be
// computed with HashPair, never with the legacy HashPairBlake2s family below.
func HashPair(left, right *FieldElement) *FieldElement {
	h, err := pairHasher().Hash(left, right)
	if err != nil {
		// EnhancedPoseidonHash.Hash always returns a nil error; this check
		// only guards its signature.
		panic("core: HashPair: " + err.Error())
	}
	return h
}

// HashPairBlake2s is the historical/legacy pair-hash family. It produces
// digests that are NOT collision-resistant against the Poseidon family above
// and must never be compared across implementations or used in the
// production commitment path; it exists only so older witness traces that
// were hashed with it remain inspectable.
func HashPairBlake2s(field *Field, left, right *FieldElement) *FieldElement {
	h, err := blake2s.New256(nil)
	if err != nil {
		panic("core: blake2s.New256: " + err.Error())
	}
	h.Write(leftPad32(left.Bytes()))
	h.Write(leftPad32(right.Bytes()))
	sum := h.Sum(nil)
	return field.NewElement(new(big.Int).SetBytes(sum))
}

func leftPad32(b []byte) []byte {
	if len(b) >= 32 {
		return b[len(b)-32:]
	}
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}
