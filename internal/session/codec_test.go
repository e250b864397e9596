// internal/session/codec_test.go
//
// Unit-tests for the signed-cookie codec.
//
// Run: go test ./internal/session -v

package session

import (
	"encoding/base64"
	"reflect"
	"strings"
	"testing"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := map[string]any{
		"admin_user_id": float64(7),
		"csrf_token":    "tok-abc",
		"extra":         "kept",
	}

	raw, err := Encode(testKey, in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if strings.Count(raw, ".") != 1 {
		t.Fatalf("cookie %q should contain exactly one separator", raw)
	}

	out := Decode(testKey, raw)
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch:\n in=%#v\nout=%#v", in, out)
	}
}

func TestDecodeCrossKeyRejection(t *testing.T) {
	raw, err := Encode(testKey, map[string]any{"admin_user_id": float64(1)})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	otherKey := []byte("ffffffffffffffffffffffffffffffff")
	if got := Decode(otherKey, raw); len(got) != 0 {
		t.Fatalf("decode with wrong key yielded %#v, want empty", got)
	}
}

func TestDecodeSignatureMutationRejection(t *testing.T) {
	raw, err := Encode(testKey, map[string]any{"csrf_token": "x"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	sep := strings.LastIndexByte(raw, '.')
	payload, sig := raw[:sep], raw[sep+1:]

	// Flip every hex digit of the signature, one at a time.
	for i := 0; i < len(sig); i++ {
		mutated := []byte(sig)
		if mutated[i] == '0' {
			mutated[i] = '1'
		} else {
			mutated[i] = '0'
		}
		cookie := payload + "." + string(mutated)
		if got := Decode(testKey, cookie); len(got) != 0 {
			t.Fatalf("mutated signature at %d accepted", i)
		}
	}
}

func TestDecodeGarbageInputs(t *testing.T) {
	cases := []string{
		"",
		"no-separator",
		".",
		"..",
		"%%%.deadbeef",
		base64.RawURLEncoding.EncodeToString([]byte("[]")) + ".0000",
	}
	for _, c := range cases {
		if got := Decode(testKey, c); len(got) != 0 {
			t.Errorf("Decode(%q) = %#v, want empty", c, got)
		}
	}
}

// A correctly signed non-object payload must still decode to empty.
func TestDecodeSignedNonObjectPayload(t *testing.T) {
	for _, body := range []string{`[1,2,3]`, `"str"`, `42`, `null`} {
		encoded := base64.RawURLEncoding.EncodeToString([]byte(body))
		cookie := encoded + "." + signPayload(testKey, encoded)
		if got := Decode(testKey, cookie); len(got) != 0 {
			t.Errorf("signed non-object %s decoded to %#v, want empty", body, got)
		}
	}
}

func TestDecodePaddedPayload(t *testing.T) {
	// A producer that pads its base64 must still verify: the signature
	// covers the padded form, and decode strips padding before parsing.
	encoded := base64.URLEncoding.EncodeToString([]byte(`{"k":"vv"}`))
	if !strings.Contains(encoded, "=") {
		t.Fatal("test payload must require padding")
	}
	cookie := encoded + "." + signPayload(testKey, encoded)

	got := Decode(testKey, cookie)
	if got["k"] != "vv" {
		t.Fatalf("padded payload decode = %#v", got)
	}
}
