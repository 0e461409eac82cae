// Package token issues and verifies the bearer tokens checked by the auth guard.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("token is invalid")
	ErrExpiredToken = errors.New("token has expired")
)

// Payload is the verified content of a token.
type Payload struct {
	ID        uuid.UUID `json:"id"`
	Subject   string    `json:"sub"`
	Role      string    `json:"role"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

// NewPayload builds a payload valid for ttl from now.
func NewPayload(subject, role string, ttl time.Duration) (*Payload, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &Payload{
		ID:        id,
		Subject:   subject,
		Role:      role,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}, nil
}

// Valid reports ErrExpiredToken once the payload is past its expiry.
func (p *Payload) Valid() error {
	if time.Now().After(p.ExpiresAt) {
		return ErrExpiredToken
	}
	return nil
}

// Maker creates and verifies tokens.
type Maker interface {
	CreateToken(subject, role string, ttl time.Duration) (string, *Payload, error)
	VerifyToken(token string) (*Payload, error)
}

// NewMaker returns the maker selected by kind ("jwt" or "paseto").
func NewMaker(kind, secret string) (Maker, error) {
	switch kind {
	case "jwt":
		return NewJWTMaker(secret)
	case "paseto":
		return NewPasetoMaker(secret)
	default:
		return nil, fmt.Errorf("unknown token type %q", kind)
	}
}
