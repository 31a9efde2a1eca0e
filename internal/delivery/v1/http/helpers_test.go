package http

import (
	"testing"

	"github.com/minishop-tech/go-backend/pkg/e"
	"github.com/stretchr/testify/require"
)

func TestParsePriceToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		err  error
	}{
		{in: "599.99", want: 59999},
		{in: "600", want: 60000},
		{in: "0.01", want: 1},
		{in: " 19.99 ", want: 1999},
		{in: "", err: e.ErrInvalidPrice},
		{in: "abc", err: e.ErrInvalidPrice},
		{in: "-5", err: e.ErrInvalidPrice},
		{in: "1000000001", err: e.ErrInvalidPrice},
		{in: "19.999", err: e.ErrPricePrecision},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parsePriceToCents(tc.in)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestFormatCents(t *testing.T) {
	require.Equal(t, "19.99", formatCents(1999))
	require.Equal(t, "0.05", formatCents(5))
	require.Equal(t, "0.00", formatCents(0))
	require.Equal(t, "600.00", formatCents(60000))
}
