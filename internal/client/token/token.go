// Package token decodes the signed session tokens issued by the storefront
// backend.
//
// Decoding does not verify the signature. The client trusts any syntactically
// valid token it holds: authenticity is established by the server when it
// issues the token and again whenever the token is presented to it. Do not add
// verification here; the client has no key to verify with.
package token

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken is returned when a token is not a three-segment JWT or
// its header/payload segments are not valid base64url-encoded JSON objects.
var ErrMalformedToken = errors.New("malformed token")

// User is the authenticated principal carried in the token payload.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// ID is a user identifier. Backends emit it either as a JSON string or as a
// number; both decode to the same textual form.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Claims is the decoded token payload.
type Claims struct {
	UserID ID     `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// User returns the principal described by the claims.
func (c *Claims) User() User {
	return User{ID: string(c.UserID), Name: c.Name, Role: c.Role}
}

var parser = jwt.NewParser()

// Decode parses the payload of tokenString without checking its signature.
func Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}

	_, parts, err := parser.ParseUnverified(tokenString, claims)
	// The signing method is looked up after the payload is decoded; an
	// unknown alg does not make the claims unreadable.
	if err != nil && !errors.Is(err, jwt.ErrTokenUnverifiable) {
		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}

	if err := requireObject(parts[1]); err != nil {
		return nil, err
	}
	return claims, nil
}

// requireObject rejects payloads that are valid JSON but not an object, such
// as null, which would otherwise decode into empty claims.
func requireObject(segment string) error {
	payload, err := parser.DecodeSegment(segment)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
	if p := bytes.TrimSpace(payload); len(p) == 0 || p[0] != '{' {
		return fmt.Errorf("%w: payload is not a JSON object", ErrMalformedToken)
	}
	return nil
}
