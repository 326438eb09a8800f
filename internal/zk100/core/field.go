package core

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Field represents a finite field with modular arithmetic operations
type Field struct {
	modulus *big.Int
}

// FieldElement represents an element in the finite field
type FieldElement struct {
	field *Field
	value *big.Int
}

// NewField creates a new finite field with the given modulus
func NewField(modulus *big.Int) (*Field, error) {
	if modulus.Cmp(big.NewInt(2)) <= 0 {
		return nil, fmt.Errorf("modulus must be greater than 2")
	}
	return &Field{modulus: new(big.Int).Set(modulus)}, nil
}

// Modulus returns the field modulus
func (f *Field) Modulus() *big.Int {
	return new(big.Int).Set(f.modulus)
}

// NewElement creates a new field element from a big.Int
func (f *Field) NewElement(value *big.Int) *FieldElement {
	normalized := new(big.Int).Mod(value, f.modulus)
	return &FieldElement{
		field: f,
		value: normalized,
	}
}

// NewElementFromInt64 creates a new field element from an int64
func (f *Field) NewElementFromInt64(value int64) *FieldElement {
	return f.NewElement(big.NewInt(value))
}

// NewElementFromUint64 creates a new field element from a uint64
func (f *Field) NewElementFromUint64(value uint64) *FieldElement {
	return f.NewElement(new(big.Int).SetUint64(value))
}

// RandomElement generates a random field element
func (f *Field) RandomElement() (*FieldElement, error) {
	value, err := rand.Int(rand.Reader, f.modulus)
	if err != nil {
		return nil, fmt.Errorf("failed to generate random element: %w", err)
	}
	return f.NewElement(value), nil
}

// Zero returns the additive identity
func (f *Field) Zero() *FieldElement {
	return f.NewElement(big.NewInt(0))
}

// One returns the multiplicative identity
func (f *Field) One() *FieldElement {
	return f.NewElement(big.NewInt(1))
}

// Big returns the value as a big.Int
func (fe *FieldElement) Big() *big.Int {
	return new(big.Int).Set(fe.value)
}

// Field returns the field this element belongs to
func (fe *FieldElement) Field() *Field {
	return fe.field
}

// Add performs field addition
func (fe *FieldElement) Add(other *FieldElement) *FieldElement {
	if !fe.field.Equals(other.field) {
		panic("cannot add elements from different fields")
	}
	result := new(big.Int).Add(fe.value, other.value)
	return fe.field.NewElement(result)
}

// Sub performs field subtraction
func (fe *FieldElement) Sub(other *FieldElement) *FieldElement {
	if !fe.field.Equals(other.field) {
		panic("cannot subtract elements from different fields")
	}
	result := new(big.Int).Sub(fe.value, other.value)
	return fe.field.NewElement(result)
}

// Neg returns the additive inverse (negation) of the field element
func (fe *FieldElement) Neg() *FieldElement {
	result := new(big.Int).Neg(fe.value)
	return fe.field.NewElement(result)
}

// Mul performs field multiplication
func (fe *FieldElement) Mul(other *FieldElement) *FieldElement {
	if !fe.field.Equals(other.field) {
		panic("cannot multiply elements from different fields")
	}
	result := new(big.Int).Mul(fe.value, other.value)
	return fe.field.NewElement(result)
}

// Inv computes the multiplicative inverse
func (fe *FieldElement) Inv() (*FieldElement, error) {
	if fe.value.Cmp(big.NewInt(0)) == 0 {
		return nil, fmt.Errorf("cannot compute inverse of zero")
	}

	// Use extended Euclidean algorithm
	gcd := new(big.Int)
	x := new(big.Int)
	y := new(big.Int)
	gcd.GCD(x, y, fe.value, fe.field.modulus)

	if gcd.Cmp(big.NewInt(1)) != 0 {
		return nil, fmt.Errorf("inverse does not exist")
	}

	// Ensure positive result
	if x.Sign() < 0 {
		x.Add(x, fe.field.modulus)
	}

	return fe.field.NewElement(x), nil
}

// Equal checks if two field elements are equal
func (fe *FieldElement) Equal(other *FieldElement) bool {
	if !fe.field.Equals(other.field) {
		return false
	}
	return fe.value.Cmp(other.value) == 0
}

// IsZero checks if the element is zero
func (fe *FieldElement) IsZero() bool {
	return fe.value.Cmp(big.NewInt(0)) == 0
}

// IsOne checks if the element is one
func (fe *FieldElement) IsOne() bool {
	return fe.value.Cmp(big.NewInt(1)) == 0
}

// String returns a string representation of the field element
func (fe *FieldElement) String() string {
	return fe.value.String()
}

// Bytes returns the byte representation of the field element
func (fe *FieldElement) Bytes() []byte {
	return fe.value.Bytes()
}

// helper method to check if two fields are equal
func (f *Field) Equals(other *Field) bool {
	return f.modulus.Cmp(other.modulus) == 0
}

// Default field for the grid VM's commitment layer.
//
// The modulus is the Cairo/Starknet prime 2^251 + 17*2^192 + 1, so that a
// field element here is interchangeable with a Cairo Felt252 on the other
// side of the witness/proof boundary.
//
// DefaultPrimeField is the 252-bit Cairo/Starknet prime field.
var DefaultPrimeField, _ = NewField(defaultModulus())

func defaultModulus() *big.Int {
	p := new(big.Int).Lsh(big.NewInt(1), 251)
	term := new(big.Int).Lsh(big.NewInt(17), 192)
	p.Add(p, term)
	p.Add(p, big.NewInt(1))
	return p
}
