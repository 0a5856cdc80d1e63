package utils

import (
	"os"
	"testing"
)

func TestCreateTokenPair(t *testing.T) {
	os.Setenv("ACCESS_TOKEN_SECRET", "access-test-secret")
	os.Setenv("REFRESH_TOKEN_SECRET", "refresh-test-secret")

	pair, err := CreateTokenPair(5, "host")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pair.AccessToken) == 0 || len(pair.RefreshToken) == 0 {
		t.Fatal("both tokens must be signed")
	}
	if string(pair.AccessToken) == string(pair.RefreshToken) {
		t.Error("access and refresh tokens must differ")
	}

	// An empty role defaults rather than signing blank claims.
	pair2, err := CreateTokenPair(6, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pair2.AccessToken) == 0 {
		t.Fatal("token pair must sign with the default role")
	}
}
