package pagination_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hfa-project/home_finance_app/internal/utils/pagination"
)

func TestEncodeDecodeToken_RoundTrip(t *testing.T) {
	txnDate := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, 6, 16, 10, 30, 45, 123456789, time.UTC)

	token := pagination.EncodeToken(txnDate, createdAt)
	require.NotEmpty(t, token)

	gotDate, gotCreated, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, txnDate.Equal(gotDate))
	assert.True(t, createdAt.Equal(gotCreated))
}

func TestDecodeToken_Invalid(t *testing.T) {
	for _, token := range []string{
		"not-base64!",
		"bm8tc2VwYXJhdG9y", // "no-separator"
		"",
	} {
		_, _, err := pagination.DecodeToken(token)
		assert.Error(t, err, "token %q", token)
	}
}
