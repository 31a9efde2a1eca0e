package telegram

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	require.Equal(t, "19.99", FormatAmount(1999))
	require.Equal(t, "0.01", FormatAmount(1))
	require.Equal(t, "1024.50", FormatAmount(102450))
}
