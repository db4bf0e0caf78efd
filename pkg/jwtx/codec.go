package jwtx

import (
	"errors"
	"fmt"
)

// ErrVerification is returned by Codec.Decode when every configured
// verification strategy rejected the token. Callers that need the precise
// cause (expired vs bad signature) can errors.Is against the jwtx
// sentinels, which stay in the chain.
var ErrVerification = errors.New("jwtx: token verification failed")

// Codec builds and parses signed tokens. The signing strategy is fixed at
// construction; verification walks an ordered strategy chain so a
// deployment migrating between algorithms keeps accepting tokens minted
// under the previous one.
//
// The chain is asymmetric on purpose: an RS256-primary codec falls back to
// HS256 verification, but an HS256-primary codec never tries RSA — a
// shared-secret deployment holds no public key to try.
type Codec struct {
	signer    Signer
	verifiers []Verifier
}

// NewCodec wires a signer with its verification chain. The first verifier
// should match the signing strategy.
func NewCodec(signer Signer, verifiers ...Verifier) (*Codec, error) {
	if signer == nil {
		return nil, errors.New("jwtx: codec requires a signer")
	}
	if len(verifiers) == 0 {
		return nil, errors.New("jwtx: codec requires at least one verifier")
	}
	return &Codec{signer: signer, verifiers: verifiers}, nil
}

// Alg reports the primary signing algorithm ("RS256" or "HS256").
func (c *Codec) Alg() string { return c.signer.Alg() }

// KID reports the active key id; empty for HMAC.
func (c *Codec) KID() string { return c.signer.KID() }

// Encode signs the claims into a compact token string. Issued-at and
// expiry must already be stamped on the claims (the New*Claims helpers do
// that); a non-positive TTL therefore yields an already-expired token.
func (c *Codec) Encode(claims Claims) (string, error) {
	token, err := c.signer.Sign(claims)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign token: %w", err)
	}
	return token, nil
}

// Decode attempts verification under each strategy in order and returns
// the first successful parse. When all fail it returns ErrVerification;
// an expiry failure from any attempt wins over other causes so callers
// report the most useful diagnostic.
func (c *Codec) Decode(tokenStr string) (*Claims, error) {
	var firstErr, expiredErr error

	for _, v := range c.verifiers {
		claims, err := v.Verify(tokenStr)
		if err == nil {
			return claims, nil
		}
		if firstErr == nil {
			firstErr = err
		}
		if expiredErr == nil && errors.Is(err, ErrExpired) {
			expiredErr = err
		}
	}

	if expiredErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrVerification, expiredErr)
	}
	return nil, fmt.Errorf("%w: %w", ErrVerification, firstErr)
}
