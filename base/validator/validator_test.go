package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidAddress(t *testing.T) {
	assert.True(t, IsValidAddress("0x71c7656ec7ab88b098defb751b7401b5f6d8976f"))
	assert.True(t, IsValidAddress("0x71C7656EC7ab88b098defB751B7401B5f6d8976F"))
	assert.False(t, IsValidAddress("71c7656ec7ab88b098defb751b7401b5f6d8976f"))
	assert.False(t, IsValidAddress("0x71c7656e"))
	assert.False(t, IsValidAddress("not-an-address"))
}
