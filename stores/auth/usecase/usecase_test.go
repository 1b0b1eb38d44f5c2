package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stranger-market/goapi/base/ctx"
	"github.com/stranger-market/goapi/domain"
)

func TestSignAndParseToken(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()

	au := New("test-secret")

	token, err := au.SignToken(c, domain.Address("0xAbC0000000000000000000000000000000000001"))
	req.NoError(err)
	req.NotEmpty(token)

	address, err := au.ParseToken(c, token)
	req.NoError(err)
	req.Equal("0xabc0000000000000000000000000000000000001", address)
}

func TestParseTokenRejectsForgedToken(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()

	signer := New("test-secret")
	verifier := New("another-secret")

	token, err := signer.SignToken(c, domain.Address("0xabc0000000000000000000000000000000000001"))
	req.NoError(err)

	_, err = verifier.ParseToken(c, token)
	req.Error(err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()

	au := New("test-secret")

	_, err := au.ParseToken(c, "not-a-token")
	req.Error(err)
}
