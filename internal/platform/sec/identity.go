// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

// Package sec provides token verification and authorization primitives.
//
// # Architecture
//
// Lectern does not mint its own credentials. Users sign in against an external
// identity provider and present the resulting RS256 ID token on every request.
// This package isolates the security-sensitive verification code from the
// domain logic; it is injected into the Application layer via the
// [IdentityVerifier] interface.
package sec

import (
	"crypto/rsa"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the verified payload of an ID token issued by the external
// identity provider.
//
// It describes the person behind the request, not their account: the account
// (roles, profile, internal ID) lives in the user directory and is resolved
// separately. Claim names follow the OpenID Connect standard profile.
type Identity struct {
	jwt.RegisteredClaims

	EmailAddress  string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	FirstName     string `json:"given_name"`
	LastName      string `json:"family_name"`
	PictureURL    string `json:"picture"`
}

// IdentityVerifier checks a raw bearer token and returns the identity it
// asserts.
type IdentityVerifier interface {
	Verify(tokenString string) (*Identity, error)
}

// IdentityService verifies RS256 ID tokens against the identity provider's
// published public key.
type IdentityService struct {
	publicKey *rsa.PublicKey
	issuer    string
	audience  string
}

// NewIdentityService creates an IdentityService.
// It reads the provider's PEM-encoded RSA public key from the given path.
func NewIdentityService(publicKeyPath, issuer, audience string) (*IdentityService, error) {
	publicKeyData, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to read public key from %s: %w", publicKeyPath, err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyData)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to parse public key: %w", err)
	}

	return &IdentityService{
		publicKey: publicKey,
		issuer:    issuer,
		audience:  audience,
	}, nil
}

// Verify checks the signature, issuer, audience, and validity window of an
// ID token string and returns the embedded [Identity].
func (service *IdentityService) Verify(tokenString string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Identity{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
			}
			return service.publicKey, nil
		},
		jwt.WithIssuer(service.issuer),
		jwt.WithAudience(service.audience),
	)

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	identity, ok := token.Claims.(*Identity)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}
	if identity.EmailAddress == "" {
		return nil, fmt.Errorf("sec: token carries no email claim")
	}

	return identity, nil
}
