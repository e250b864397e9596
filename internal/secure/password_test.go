// internal/secure/password_test.go
//
// Run: go test ./internal/secure -v

package secure

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash equals plaintext")
	}
	if !VerifyPassword("correct horse battery staple", hash) {
		t.Fatal("verify rejected the right password")
	}
	if VerifyPassword("wrong password", hash) {
		t.Fatal("verify accepted the wrong password")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	cases := []string{
		"",
		"not-a-bcrypt-hash",
		"$1$legacy$md5hash",
		"$2a$xx$truncated",
	}
	for _, h := range cases {
		if VerifyPassword("anything", h) {
			t.Errorf("VerifyPassword accepted malformed hash %q", h)
		}
	}
}

func TestHashesAreSalted(t *testing.T) {
	a, err := HashPassword("same input")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	b, err := HashPassword("same input")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if a == b {
		t.Fatal("two hashes of the same password are identical; salt missing")
	}
}
