package token

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Signed opaque tokens used by the app. Two kinds:
//
//   - ClientSigner issues capability tokens binding an order number and phone
//     digit-string for 24 hours: base64url(orderNumber:phoneDigits:millis) +
//     "." + hex(hmac-sha256(payload)). Read+limited-write access to exactly
//     one order; no refresh, no revocation list.
//   - SessionSigner issues admin session tokens: "millis-randomHex.hexHmac".
//     No embedded expiry; lifetime is the cookie's own max-age.

const ClientTokenTTL = 24 * time.Hour

// ClientClaims is what a verified client token grants.
type ClientClaims struct {
	OrderNumber string
	PhoneDigits string
	IssuedAt    time.Time
}

type ClientSigner struct {
	secret []byte
	now    func() time.Time
}

func NewClientSigner(secret string) *ClientSigner {
	return &ClientSigner{secret: []byte(secret), now: time.Now}
}

// NewClientSignerFromEnv reads CLIENT_TOKEN_SECRET, falling back to a
// development default.
func NewClientSignerFromEnv() *ClientSigner {
	return NewClientSigner(getenvDefault("CLIENT_TOKEN_SECRET", "str-client-portal-secret-2024"))
}

func (s *ClientSigner) Generate(orderNumber, phone string) string {
	payload := fmt.Sprintf("%s:%s:%d", orderNumber, digitsOnly(phone), s.now().UnixMilli())
	sig := s.sign(payload)
	return base64.RawURLEncoding.EncodeToString([]byte(payload)) + "." + sig
}

// Verify checks the signature and the 24-hour window. It does not check the
// order binding; callers compare Claims.OrderNumber against the requested
// resource.
func (s *ClientSigner) Verify(token string) (ClientClaims, bool) {
	encoded, sig, ok := strings.Cut(token, ".")
	if !ok {
		return ClientClaims{}, false
	}
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return ClientClaims{}, false
	}
	payload := string(raw)
	if !hmac.Equal([]byte(s.sign(payload)), []byte(sig)) {
		return ClientClaims{}, false
	}

	parts := strings.Split(payload, ":")
	if len(parts) != 3 {
		return ClientClaims{}, false
	}
	millis, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return ClientClaims{}, false
	}
	issuedAt := time.UnixMilli(millis)
	if s.now().Sub(issuedAt) > ClientTokenTTL {
		return ClientClaims{}, false
	}
	return ClientClaims{OrderNumber: parts[0], PhoneDigits: parts[1], IssuedAt: issuedAt}, true
}

func (s *ClientSigner) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

type SessionSigner struct {
	secret []byte
}

func NewSessionSigner(secret string) *SessionSigner {
	return &SessionSigner{secret: []byte(secret)}
}

func NewSessionSignerFromEnv() *SessionSigner {
	return NewSessionSigner(getenvDefault("AUTH_SECRET", "str-default-secret"))
}

func (s *SessionSigner) Generate() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	raw := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), hex.EncodeToString(buf))
	return raw + "." + s.sign(raw), nil
}

func (s *SessionSigner) Validate(tok string) bool {
	raw, sig, ok := strings.Cut(tok, ".")
	if !ok || raw == "" {
		return false
	}
	return hmac.Equal([]byte(s.sign(raw)), []byte(sig))
}

func (s *SessionSigner) sign(raw string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(raw))
	return hex.EncodeToString(mac.Sum(nil))
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
