package unit_tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memerender/internal/services"
)

func TestSuggestionService_List(t *testing.T) {
	svc := services.NewSuggestionService()

	all := svc.List("")
	require.Len(t, all, 6)
	assert.Equal(t, "Token Logo", all[0].Label)
	for _, s := range all {
		assert.NotEmpty(t, s.Icon, s.Label)
	}

	wallet := svc.List("WALLET")
	require.NotEmpty(t, wallet)
	assert.Equal(t, "Wallet UI", wallet[0].Label)

	assert.Empty(t, svc.List("zzz-no-match"))
}
