package cardex_test

import (
	"testing"

	"github.com/evidlab/cardex"
	"github.com/stretchr/testify/assert"
)

func TestPriorityConfigScore(t *testing.T) {
	t.Parallel()

	cfg := cardex.DefaultPriorityConfig()

	t.Run("returns baseline for neutral text", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 3, cfg.Score("the committee met on Tuesday"))
	})

	t.Run("decrements for key terms", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 2, cfg.Score("this is the internal link to the disad"))
	})

	t.Run("decrements for statistics", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 2, cfg.Score("temperatures rose 50% in a decade"))
		assert.Equal(t, 2, cfg.Score("costs exceed 3 billion annually"))
	})

	t.Run("decrements for strong language", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 2, cfg.Score("the state must act now"))
	})

	t.Run("key term match is case-insensitive", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 2, cfg.Score("the IMPACT outweighs"))
	})

	t.Run("stacked decrements clamp at floor", func(t *testing.T) {
		t.Parallel()

		// Key term ("proves"), statistic ("50%"), and strong language
		// ("critical") all fire: 3-3 clamps to 1.
		assert.Equal(t, 1, cfg.Score("proves a 50% increase, which is critical"))
	})

	t.Run("each family decrements at most once", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 2, cfg.Score("impact solvency evidence uniqueness"))
	})

	t.Run("empty config never decrements on word lists", func(t *testing.T) {
		t.Parallel()

		empty := cardex.PriorityConfig{}

		assert.Equal(t, 3, cfg.Score("nothing special here"))
		assert.Equal(t, 3, empty.Score("proves critical essential"))
	})
}
