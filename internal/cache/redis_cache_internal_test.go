package cache

import (
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchPrefix_EscapesGlobSyntax(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{"reports:a@shop.com:", "reports:a@shop.com:*"},
		{"reports:a*b@shop.com:", `reports:a\*b@shop.com:*`},
		{"reports:w?x@shop.com:", `reports:w\?x@shop.com:*`},
		{"reports:[ab]@shop.com:", `reports:\[ab\]@shop.com:*`},
		{`reports:a\b@shop.com:`, `reports:a\\b@shop.com:*`},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			assert.Equal(t, tt.want, matchPrefix(tt.prefix))
		})
	}
}

func TestMatchPrefix_DoesNotReachOtherOwners(t *testing.T) {
	pattern := matchPrefix("reports:*@shop.com:")

	own, err := path.Match(pattern, "reports:*@shop.com:profit-summary")
	assert.NoError(t, err)
	assert.True(t, own)

	other, err := path.Match(pattern, "reports:bob@shop.com:profit-summary")
	assert.NoError(t, err)
	assert.False(t, other)
}
