package remote

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// nodeClaims is the minimal bearer token a joining node presents to
// prove it belongs in the cluster. This gates membership, not message
// payloads; it is a join-time credential check, not a transport
// security layer.
type nodeClaims struct {
	jwt.RegisteredClaims
	NodeID string `json:"node_id"`
}

// IssueNodeToken signs a short-lived HS256 token asserting nodeID,
// using secret as the HMAC key.
func IssueNodeToken(secret, nodeID string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("remote: secret must not be empty")
	}
	now := time.Now()
	claims := nodeClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		NodeID: nodeID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyNodeToken validates tokenString against secret and returns the
// asserted node id. Only HS256 is accepted, guarding against
// algorithm-confusion attacks against the verifier.
func VerifyNodeToken(secret, tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &nodeClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("remote: unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", fmt.Errorf("remote: invalid node token: %w", err)
	}
	claims, ok := parsed.Claims.(*nodeClaims)
	if !ok || !parsed.Valid {
		return "", fmt.Errorf("remote: invalid node token claims")
	}
	return claims.NodeID, nil
}
