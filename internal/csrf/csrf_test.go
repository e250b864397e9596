// internal/csrf/csrf_test.go
//
// Run: go test ./internal/csrf -v

package csrf

import (
	"strings"
	"testing"

	"github.com/nlplab/labsite/internal/session"
)

func TestGetOrCreateIsStable(t *testing.T) {
	st := session.NewState(nil)

	first := GetOrCreate(st)
	if first == "" {
		t.Fatal("empty token issued")
	}
	if second := GetOrCreate(st); second != first {
		t.Fatalf("token changed without rotation: %q vs %q", first, second)
	}
}

func TestTokenEntropyAndEncoding(t *testing.T) {
	st := session.NewState(nil)
	tok := GetOrCreate(st)

	// 32 random bytes → 43 chars of unpadded base64url.
	if len(tok) < 43 {
		t.Fatalf("token too short: %d chars", len(tok))
	}
	if strings.ContainsAny(tok, "+/=") {
		t.Fatalf("token %q is not URL-safe", tok)
	}
}

func TestValidateLifecycle(t *testing.T) {
	st := session.NewState(nil)
	tok := GetOrCreate(st)

	if !Validate(st, tok) {
		t.Fatal("current token rejected")
	}

	rotated := Rotate(st)
	if rotated == tok {
		t.Fatal("rotation returned the previous token")
	}
	if Validate(st, tok) {
		t.Fatal("pre-rotation token still validates")
	}
	if !Validate(st, rotated) {
		t.Fatal("post-rotation token rejected")
	}
}

func TestValidateStructuralFailures(t *testing.T) {
	st := session.NewState(nil)
	tok := GetOrCreate(st)

	if Validate(st, "") {
		t.Fatal("empty submission accepted")
	}
	if Validate(st, strings.Repeat("a", 300)) {
		t.Fatal("oversized submission accepted")
	}
	if Validate(st, tok+"x") {
		t.Fatal("near-miss token accepted")
	}
}

func TestValidateWithoutStoredToken(t *testing.T) {
	st := session.NewState(nil)
	if Validate(st, "anything") {
		t.Fatal("session without a token validated a submission")
	}
}
