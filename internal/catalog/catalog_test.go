package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_UniqueIDsAndValidPrices(t *testing.T) {
	seen := map[int64]bool{}
	for _, p := range Default() {
		assert.False(t, seen[p.ID], "duplicate id %d", p.ID)
		seen[p.ID] = true
		assert.NoError(t, p.Validate())
	}
}

func TestFind(t *testing.T) {
	p, ok := Find(Default(), 3)
	require.True(t, ok)
	assert.Equal(t, "Smartwatch Series 5", p.Name)

	_, ok = Find(Default(), 999)
	assert.False(t, ok)
}

func TestFilter(t *testing.T) {
	audio := Filter(Default(), "audio", "")
	assert.Len(t, audio, 3)

	got := Filter(Default(), "", "LAPTOP")
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)

	assert.Empty(t, Filter(Default(), "Audio", "laptop"))
	assert.Len(t, Filter(Default(), "", ""), len(Default()))
}

func TestRelated(t *testing.T) {
	p, _ := Find(Default(), 4)
	rel := Related(Default(), p, 4)
	require.Len(t, rel, 2)
	for _, r := range rel {
		assert.Equal(t, "Audio", r.Category)
		assert.NotEqual(t, p.ID, r.ID)
	}

	assert.Len(t, Related(Default(), p, 1), 1)
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{"Laptops", "Wearables", "Audio", "Monitors"}, Categories(Default()))
}
