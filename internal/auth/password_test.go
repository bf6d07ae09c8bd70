package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordService_HashAndVerify(t *testing.T) {
	ps := NewPasswordServiceWithCost(bcrypt.MinCost)

	hash, err := ps.Hash("hunter2secret")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "hunter2secret" {
		t.Fatal("hash equals plaintext")
	}

	if err := ps.Verify(hash, "hunter2secret"); err != nil {
		t.Errorf("Verify with correct password: %v", err)
	}
	if err := ps.Verify(hash, "wrongpass"); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("Verify with wrong password err = %v, want ErrPasswordMismatch", err)
	}
}

func TestPasswordService_HashTooLong(t *testing.T) {
	ps := NewPasswordServiceWithCost(bcrypt.MinCost)

	if _, err := ps.Hash(strings.Repeat("a", 73)); !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("err = %v, want ErrPasswordTooLong", err)
	}
}

func TestPasswordService_VerifyBadHash(t *testing.T) {
	ps := NewPasswordServiceWithCost(bcrypt.MinCost)

	err := ps.Verify("not-a-bcrypt-hash", "whatever")
	if err == nil {
		t.Fatal("expected error for malformed hash")
	}
	if errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("malformed hash reported as mismatch: %v", err)
	}
}
