package token

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/o1egl/paseto"
	"golang.org/x/crypto/chacha20poly1305"
)

const pasetoFooter = "storeadmin"

// PasetoMaker issues PASETO v2 local tokens.
type PasetoMaker struct {
	paseto *paseto.V2
	key    []byte
}

func NewPasetoMaker(key string) (*PasetoMaker, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("invalid key size: must be exactly %d characters", chacha20poly1305.KeySize)
	}
	return &PasetoMaker{paseto: paseto.NewV2(), key: []byte(key)}, nil
}

func (m *PasetoMaker) CreateToken(subject, role string, ttl time.Duration) (string, *Payload, error) {
	payload, err := NewPayload(subject, role, ttl)
	if err != nil {
		return "", nil, err
	}
	jsonToken := paseto.JSONToken{
		Jti:        payload.ID.String(),
		Subject:    subject,
		IssuedAt:   payload.IssuedAt,
		Expiration: payload.ExpiresAt,
	}
	jsonToken.Set("role", role)

	token, err := m.paseto.Encrypt(m.key, jsonToken, pasetoFooter)
	if err != nil {
		return "", nil, err
	}
	return token, payload, nil
}

func (m *PasetoMaker) VerifyToken(raw string) (*Payload, error) {
	var jsonToken paseto.JSONToken
	var footer string
	if err := m.paseto.Decrypt(raw, m.key, &jsonToken, &footer); err != nil {
		return nil, ErrInvalidToken
	}
	if footer != pasetoFooter {
		return nil, ErrInvalidToken
	}

	payload := &Payload{
		Subject:   jsonToken.Subject,
		Role:      jsonToken.Get("role"),
		IssuedAt:  jsonToken.IssuedAt,
		ExpiresAt: jsonToken.Expiration,
	}
	if id, err := parseUUID(jsonToken.Jti); err == nil {
		payload.ID = id
	}
	if err := payload.Valid(); err != nil {
		return nil, err
	}
	return payload, nil
}

func parseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}
