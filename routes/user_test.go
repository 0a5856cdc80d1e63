package routes

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndSaltPassword(t *testing.T) {
	hashed, err := hashAndSaltPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hashed == "correct horse battery staple" {
		t.Fatal("password must not be stored in the clear")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte("correct horse battery staple")); err != nil {
		t.Errorf("hash must verify against the original password: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte("wrong password")); err == nil {
		t.Error("hash must reject a different password")
	}
}
