package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberDefaultTemplate(t *testing.T) {
	issuedAt := time.Date(2025, time.November, 14, 0, 0, 0, 0, time.UTC)

	got, err := Number(DefaultNumberTemplate, issuedAt, 7, 2)
	require.NoError(t, err)
	assert.Equal(t, "INV-202511-007-02", got)
}

func TestNumberUnpaddedTokens(t *testing.T) {
	issuedAt := time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)

	got, err := Number("{YY}{MM}{DD}/{CLIENT}/{SEQ}", issuedAt, 12, 3)
	require.NoError(t, err)
	assert.Equal(t, "250105/12/3", got)
}

func TestNumberRejectsBadInput(t *testing.T) {
	issuedAt := time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)

	_, err := Number("", issuedAt, 1, 1)
	assert.Error(t, err)

	_, err = Number(DefaultNumberTemplate, issuedAt, 0, 1)
	assert.Error(t, err)

	_, err = Number(DefaultNumberTemplate, issuedAt, 1, 0)
	assert.Error(t, err)

	_, err = Number("INV-{NOPE}", issuedAt, 1, 1)
	assert.Error(t, err)
}
