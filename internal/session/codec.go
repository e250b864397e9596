// internal/session/codec.go
//
// Signed session-cookie codec.
//
// Context
//   Session state travels inside the cookie itself; there is no server-side
//   store.  The wire format is
//
//      base64url_nopadding( canonical JSON object ) "." hex( HMAC-SHA256 )
//
//   where the MAC covers the *encoded* payload and is keyed with the
//   process-wide session secret.  `.` is outside the base64url alphabet, so
//   splitting on the last separator is unambiguous even for hostile input.
//
//   Decode is total: absent cookies, missing separators, bad signatures,
//   undecodable payloads, and non-object JSON all degrade to an empty map.
//   Tampering is therefore indistinguishable from anonymity, which is the
//   point; nothing here ever surfaces as an error to the client.
//
//   Canonical JSON comes for free: encoding/json sorts map keys and emits
//   no insignificant whitespace, so Encode(Decode(x)) is stable.
//
//------------------------------------------------------------------------------

package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// Encode serialises values and signs the encoded payload.  The only error
// path is a non-serialisable value, which indicates a programming bug.
func Encode(secret []byte, values map[string]any) (string, error) {
	payload, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	encoded := base64.RawURLEncoding.EncodeToString(payload)
	return encoded + "." + signPayload(secret, encoded), nil
}

// Decode recovers the session map from raw.  Any failure returns an empty
// (non-nil) map.
func Decode(secret []byte, raw string) map[string]any {
	empty := map[string]any{}

	i := strings.LastIndexByte(raw, '.')
	if raw == "" || i < 0 {
		return empty
	}
	encoded, sig := raw[:i], raw[i+1:]

	// Constant-time signature check before touching the payload.
	if !hmac.Equal([]byte(signPayload(secret, encoded)), []byte(sig)) {
		return empty
	}

	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(encoded, "="))
	if err != nil {
		return empty
	}

	var values map[string]any
	if err := json.Unmarshal(payload, &values); err != nil || values == nil {
		// Non-object JSON (arrays, scalars) fails Unmarshal into a map.
		return empty
	}
	return values
}

// signPayload returns the hex HMAC-SHA256 of the encoded payload.
func signPayload(secret []byte, encoded string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(encoded))
	return hex.EncodeToString(mac.Sum(nil))
}
