package auth

import "testing"

func TestBcryptHasherRoundTrip(t *testing.T) {
	hasher := NewBcryptHasher(4)

	hash, err := hasher.Hash("frietsaus")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "frietsaus" {
		t.Fatal("hash must not equal the plaintext")
	}
	if err := hasher.Compare(hash, "frietsaus"); err != nil {
		t.Fatalf("compare with correct password: %v", err)
	}
	if err := hasher.Compare(hash, "mayonnaise"); err == nil {
		t.Fatal("compare accepted a wrong password")
	}
}

func TestBcryptHasherDefaultCost(t *testing.T) {
	hasher := NewBcryptHasher(0)
	if _, err := hasher.Hash("frietsaus"); err != nil {
		t.Fatalf("hash with default cost: %v", err)
	}
}
