package payment

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConversion_RoundTrip(t *testing.T) {
	for _, tomans := range []int64{0, 1, 9, 10, 123, 5000, 1_000_000} {
		require.Equal(t, tomans, RialsToTomans(TomansToRials(tomans)), "tomans %d", tomans)
	}
}

func TestRialsToTomans_Truncates(t *testing.T) {
	tests := []struct {
		rials int64
		want  int64
	}{
		{0, 0},
		{9, 0},
		{10, 1},
		{1234, 123}, // never 124
		{999, 99},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, RialsToTomans(tt.rials), "rials %d", tt.rials)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		code   string
		locale string
		want   string
	}{
		{"irr shows tomans", 12340, "IRR", "en", "1,234 تومان"},
		{"empty code defaults to irr", 50, "", "en", "5 تومان"},
		{"unknown code falls back", 42, "XYZ", "en", "42 XYZ"},
		{"bad locale still formats", 12340, "IRR", "??", "1,234 تومان"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FormatAmount(tt.amount, tt.code, tt.locale))
		})
	}
}

func TestFormatAmount_USD(t *testing.T) {
	got := FormatAmount(25, "USD", "en")
	require.Contains(t, got, "25")
	require.Contains(t, got, "$")
}
