package utils

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestGenerateUUID(t *testing.T) {
	id := GenerateUUID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	require.NotEqual(t, id, GenerateUUID())
}

func TestGenerateOrderID(t *testing.T) {
	id := GenerateOrderID()
	require.True(t, strings.HasPrefix(id, "ORD-"))
	require.Len(t, strings.Split(id, "-"), 3)
	require.NotEqual(t, id, GenerateOrderID())
}

func TestRandomHex(t *testing.T) {
	require.Len(t, RandomHex(4), 8)
	require.Len(t, RandomHex(16), 32)
}

func TestMaskCardNumber(t *testing.T) {
	tests := []struct {
		name string
		pan  string
		want string
	}{
		{"full pan", "6037991234561234", "603799******1234"},
		{"already masked", "603799******1234", "603799******1234"},
		{"too short", "12345678901", "12345678901"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, MaskCardNumber(tt.pan))
		})
	}
}
