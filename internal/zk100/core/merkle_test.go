package core

import "testing"

func TestMerkleRootEmpty(t *testing.T) {
	root := MerkleRoot(DefaultPrimeField, nil)
	if !root.IsZero() {
		t.Fatalf("MerkleRoot(nil) = %s, want 0", root)
	}
}

func TestMerkleRootSingleLeafIsIdentity(t *testing.T) {
	leaf := DefaultPrimeField.NewElementFromInt64(7)
	root := MerkleRoot(DefaultPrimeField, []*FieldElement{leaf})
	if !root.Equal(leaf) {
		t.Fatalf("MerkleRoot([x]) = %s, want %s", root, leaf)
	}
}

func TestMerkleRootTwoLeavesIsDirectHashPair(t *testing.T) {
	a := DefaultPrimeField.NewElementFromInt64(1)
	b := DefaultPrimeField.NewElementFromInt64(2)
	want := HashPair(a, b)
	got := MerkleRoot(DefaultPrimeField, []*FieldElement{a, b})
	if !got.Equal(want) {
		t.Fatalf("MerkleRoot([a,b]) = %s, want HashPair(a,b) = %s", got, want)
	}
}

func TestMerkleRootPadsWithZeroNotDuplicate(t *testing.T) {
	a := DefaultPrimeField.NewElementFromInt64(1)
	b := DefaultPrimeField.NewElementFromInt64(2)
	c := DefaultPrimeField.NewElementFromInt64(3)

	got := MerkleRoot(DefaultPrimeField, []*FieldElement{a, b, c})

	zero := DefaultPrimeField.Zero()
	left := HashPair(a, b)
	right := HashPair(c, zero)
	want := HashPair(left, right)

	if !got.Equal(want) {
		t.Fatalf("MerkleRoot([a,b,c]) did not zero-pad as expected")
	}
}

func TestHashPairIsOrderSensitive(t *testing.T) {
	a := DefaultPrimeField.NewElementFromInt64(11)
	b := DefaultPrimeField.NewElementFromInt64(22)
	if HashPair(a, b).Equal(HashPair(b, a)) {
		t.Fatalf("HashPair must not be commutative")
	}
}

func TestVerifyProofRoundTrip(t *testing.T) {
	leaves := make([]*FieldElement, 4)
	for i := range leaves {
		leaves[i] = DefaultPrimeField.NewElementFromInt64(int64(i + 1))
	}
	root := MerkleRoot(DefaultPrimeField, leaves)

	// Manually build the proof for leaf index 2: sibling at level 0 is
	// leaves[3], sibling at level 1 is HashPair(leaves[0], leaves[1]).
	level0Sibling := leaves[3]
	level1Sibling := HashPair(leaves[0], leaves[1])

	proof := MerkleProof{
		Siblings: []*FieldElement{level0Sibling, level1Sibling},
		Index:    2,
	}

	if !VerifyProof(DefaultPrimeField, root, leaves[2], proof) {
		t.Fatalf("VerifyProof failed for a valid proof")
	}

	tampered := DefaultPrimeField.NewElementFromInt64(999)
	if VerifyProof(DefaultPrimeField, root, tampered, proof) {
		t.Fatalf("VerifyProof accepted a tampered leaf")
	}
}

func TestHashPairBlake2sDiffersFromPoseidon(t *testing.T) {
	a := DefaultPrimeField.NewElementFromInt64(1)
	b := DefaultPrimeField.NewElementFromInt64(2)
	legacy := HashPairBlake2s(DefaultPrimeField, a, b)
	production := HashPair(a, b)
	if legacy.Equal(production) {
		t.Fatalf("legacy blake2s family must not coincide with the Poseidon family")
	}
}
