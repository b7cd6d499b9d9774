package bridge

import (
	"crypto/md5" //nolint:gosec // correlation key, not a security boundary
	"encoding/hex"
)

// defaultSessionSeed anchors requests that carry neither a conversation nor a
// request identifier to a single shared backend session.
const defaultSessionSeed = "default-session"

// SessionKey derives the deterministic session identifier binding a logical
// conversation to the remote agent's own session state. The base identifier
// is the first non-empty of conversationID and requestID, falling back to
// defaultSessionSeed. The key is the first 16 hex characters of the MD5
// digest of the base, formatted "session-<hex16>", so all messages of one
// conversation address one backend session while distinct conversations map
// to distinct sessions with overwhelming probability.
//
// SessionKey is a pure function: identical inputs yield identical output
// across calls and process restarts. The digest is correlation-grade only;
// the remote agent owns the session state addressed by the key.
func SessionKey(conversationID, requestID string) string {
	base := conversationID
	if base == "" {
		base = requestID
	}
	if base == "" {
		base = defaultSessionSeed
	}
	sum := md5.Sum([]byte(base)) //nolint:gosec // stable 128-bit digest, not auth
	return "session-" + hex.EncodeToString(sum[:8])
}
