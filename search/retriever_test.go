package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFuseRanks(t *testing.T) {
	t.Run("Should rank ids appearing in both engines first", func(t *testing.T) {
		textRanks := map[string]int{"a": 1, "b": 2}
		vecRanks := map[string]int{"b": 1, "c": 2}

		ids := fuseRanks(textRanks, vecRanks, 5)
		assert.Equal(t, []string{"b", "a", "c"}, ids)
	})

	t.Run("Should honor the limit", func(t *testing.T) {
		textRanks := map[string]int{"a": 1, "b": 2, "c": 3}

		ids := fuseRanks(textRanks, nil, 2)
		assert.Equal(t, []string{"a", "b"}, ids)
	})

	t.Run("Should return nothing for empty rank maps", func(t *testing.T) {
		assert.Empty(t, fuseRanks(nil, nil, 5))
	})
}
