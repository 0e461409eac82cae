package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func makers(t *testing.T) map[string]Maker {
	jwtMaker, err := NewMaker("jwt", testSecret)
	require.NoError(t, err)
	pasetoMaker, err := NewMaker("paseto", testSecret)
	require.NoError(t, err)
	return map[string]Maker{"jwt": jwtMaker, "paseto": pasetoMaker}
}

func TestMakerRoundTrip(t *testing.T) {
	for name, maker := range makers(t) {
		t.Run(name, func(t *testing.T) {
			raw, issued, err := maker.CreateToken("65f1c0ffee00000000000001", "admin", time.Hour)
			require.NoError(t, err)
			require.NotEmpty(t, raw)

			payload, err := maker.VerifyToken(raw)
			require.NoError(t, err)
			assert.Equal(t, "65f1c0ffee00000000000001", payload.Subject)
			assert.Equal(t, "admin", payload.Role)
			assert.Equal(t, issued.ID, payload.ID)
			assert.WithinDuration(t, issued.ExpiresAt, payload.ExpiresAt, time.Second)
		})
	}
}

func TestMakerRejectsExpiredToken(t *testing.T) {
	for name, maker := range makers(t) {
		t.Run(name, func(t *testing.T) {
			raw, _, err := maker.CreateToken("user-1", "user", -time.Minute)
			require.NoError(t, err)

			_, err = maker.VerifyToken(raw)
			assert.ErrorIs(t, err, ErrExpiredToken)
		})
	}
}

func TestMakerRejectsTamperedToken(t *testing.T) {
	for name, maker := range makers(t) {
		t.Run(name, func(t *testing.T) {
			raw, _, err := maker.CreateToken("user-1", "user", time.Hour)
			require.NoError(t, err)

			_, err = maker.VerifyToken(raw + "x")
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestMakersDoNotAcceptEachOthersTokens(t *testing.T) {
	m := makers(t)
	raw, _, err := m["jwt"].CreateToken("user-1", "user", time.Hour)
	require.NoError(t, err)

	_, err = m["paseto"].VerifyToken(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewMakerValidatesKey(t *testing.T) {
	_, err := NewMaker("jwt", "short")
	assert.Error(t, err)
	_, err = NewMaker("paseto", testSecret+"extra")
	assert.Error(t, err)
	_, err = NewMaker("basic", testSecret)
	assert.Error(t, err)
}
