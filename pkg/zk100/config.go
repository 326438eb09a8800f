package zk100

import (
	"math/big"
)

// HashFamily names a commitment-layer pair-hash implementation.
type HashFamily string

const (
	// HashFamilyPoseidon is the production, collision-resistant family.
	// Every commitment this package produces is hashed with it.
	HashFamilyPoseidon HashFamily = "poseidon"
	// HashFamilyBlake2s is the historical, non-collision-resistant family,
	// kept only for DeserializePublicOutputs-style inspection of legacy
	// records. Driver.Run rejects it: this package never computes a new
	// commitment with anything but Poseidon.
	HashFamilyBlake2s HashFamily = "blake2s"
)

// MaxCyclesDefault is the cycle cap named in the commitment specification:
// a run that has not halted or deadlocked after this many cycles is stopped
// there and scored and committed as it stands, rather than run forever. The
// public outputs record carries no separate timeout marker.
const MaxCyclesDefault = 10000

// DriverConfig configures a Driver run, following the builder ("With...")
// pattern used throughout this codebase's configuration types.
type DriverConfig struct {
	FieldModulus string
	MaxCycles    int
	HashFamily   HashFamily
}

// DefaultDriverConfig returns the spec's default configuration: the
// Cairo/Starknet 252-bit prime field, a 10000-cycle cap, and the Poseidon
// hash family.
func DefaultDriverConfig() DriverConfig {
	return DriverConfig{
		FieldModulus: defaultModulusString(),
		MaxCycles:    MaxCyclesDefault,
		HashFamily:   HashFamilyPoseidon,
	}
}

// WithFieldModulus returns a copy of c using the given decimal modulus.
func (c DriverConfig) WithFieldModulus(modulus string) DriverConfig {
	c.FieldModulus = modulus
	return c
}

// WithMaxCycles returns a copy of c with a new cycle cap.
func (c DriverConfig) WithMaxCycles(maxCycles int) DriverConfig {
	c.MaxCycles = maxCycles
	return c
}

// WithHashFamily returns a copy of c using the given hash family.
func (c DriverConfig) WithHashFamily(family HashFamily) DriverConfig {
	c.HashFamily = family
	return c
}

// Validate rejects a modulus string that is not a decimal integer greater
// than 2 (primality is not checked), a non-positive cycle cap, and any hash
// family other than the two this package knows about.
func (c DriverConfig) Validate() error {
	if c.MaxCycles <= 0 {
		return newError(ErrInvalidConfig, "MaxCycles must be positive", nil)
	}
	modulus, ok := new(big.Int).SetString(c.FieldModulus, 10)
	if !ok || modulus.Cmp(big.NewInt(2)) <= 0 {
		return newError(ErrInvalidConfig, "FieldModulus must be a decimal integer > 2", nil)
	}
	switch c.HashFamily {
	case HashFamilyPoseidon, HashFamilyBlake2s:
	default:
		return newError(ErrInvalidConfig, "unknown HashFamily: "+string(c.HashFamily), nil)
	}
	return nil
}

func defaultModulusString() string {
	p := new(big.Int).Lsh(big.NewInt(1), 251)
	p.Add(p, new(big.Int).Lsh(big.NewInt(17), 192))
	p.Add(p, big.NewInt(1))
	return p.String()
}
