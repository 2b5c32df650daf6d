package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTag(t *testing.T) {
	assert.True(t, IsTag(StartTag))
	assert.True(t, IsTag(StopTag))
	assert.True(t, IsTag(EscapeTag))
	assert.False(t, IsTag(0x41))
	assert.False(t, IsTag(0x00))
}

func TestGeneratorShape(t *testing.T) {
	assert.Equal(t, GeneratorLength, len(Generator)*8)
	assert.Equal(t, [2]byte{0xA6, 0xBC}, Generator)
}
