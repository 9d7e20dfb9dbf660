package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogIsConsistent(t *testing.T) {
	c := Default()

	require.NotEmpty(t, c.AllLocations())
	require.NotEmpty(t, c.AllParts())
	assert.Equal(t, 3, c.MaxStage())

	// Every stage offers at least one location.
	for stage := 1; stage <= c.MaxStage(); stage++ {
		assert.NotEmpty(t, c.LocationsForStage(stage), "stage %d", stage)
	}

	// Every referenced part exists and every location offers at least three
	// parts, one per seat.
	for _, loc := range c.AllLocations() {
		offered := 0
		for _, id := range append(append([]string{}, loc.CompulsoryParts...), loc.OptionalParts...) {
			require.NotNil(t, c.PartByID(id), "location %s references unknown part %s", loc.ID, id)
			offered++
		}
		assert.GreaterOrEqual(t, offered, 3, "location %s", loc.ID)
	}
}

func TestLookupsReturnNilForUnknownIDs(t *testing.T) {
	c := Default()
	assert.Nil(t, c.LocationByID("nowhere"))
	assert.Nil(t, c.PartByID("nothing"))
}

func TestNewPreservesDeclarationOrder(t *testing.T) {
	locations := []LocationCard{
		{ID: "b", Stage: 1},
		{ID: "a", Stage: 1},
	}
	parts := []PartDef{{ID: "z"}, {ID: "y"}}
	c := New(locations, parts)

	all := c.AllLocations()
	assert.Equal(t, "b", all[0].ID)
	assert.Equal(t, "a", all[1].ID)

	ps := c.AllParts()
	assert.Equal(t, "z", ps[0].ID)
	assert.Equal(t, "y", ps[1].ID)
}
