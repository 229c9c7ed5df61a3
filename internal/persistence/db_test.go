package persistence

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/plunder/internal/engine"
	"github.com/talgya/plunder/internal/island"
	"github.com/talgya/plunder/internal/raid"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "plunder.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestIslands_RoundTrip(t *testing.T) {
	db := openTemp(t)
	assert.False(t, db.HasIslands())

	in := []*island.Island{
		island.MustNew("Zou", 120.5, 7),
		island.MustNew("Jaya", 0, 3),
		island.MustNew("Zou", 10, 0),
	}
	require.NoError(t, db.SaveIslands(in))
	assert.True(t, db.HasIslands())

	out, err := db.LoadIslands()
	require.NoError(t, err)
	require.Len(t, out, 3)
	for i := range in {
		assert.Equal(t, in[i].Name, out[i].Name)
		assert.Equal(t, in[i].Money(), out[i].Money())
		assert.Equal(t, in[i].Marines(), out[i].Marines())
		assert.Equal(t, in[i].Ratio(), out[i].Ratio())
	}

	// full replace
	require.NoError(t, db.SaveIslands(in[:1]))
	out, err = db.LoadIslands()
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestMeta(t *testing.T) {
	db := openTemp(t)
	_, err := db.GetMeta("missing")
	assert.ErrorIs(t, err, ErrNoMeta)

	require.NoError(t, db.SaveMeta("k", "v1"))
	require.NoError(t, db.SaveMeta("k", "v2"))
	v, err := db.GetMeta("k")
	require.NoError(t, err)
	assert.Equal(t, "v2", v)
}

func TestRaids(t *testing.T) {
	db := openTemp(t)
	require.NoError(t, db.SaveRaids(nil))

	raids := []engine.Raid{
		{VoyageID: "a", Day: 1, Round: 1, Island: "Zou", Crew: 4, Loot: 40},
		{VoyageID: "a", Day: 1, Round: 2},
		{VoyageID: "b", Day: 1, Round: 1, Island: "Jaya", Crew: 2, Loot: 3.5},
	}
	require.NoError(t, db.SaveRaids(raids))

	recent, err := db.RecentRaids(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, raids[2], recent[0])
	assert.Equal(t, raids[1], recent[1])

	forA, err := db.RaidsForVoyage("a")
	require.NoError(t, err)
	assert.Equal(t, raids[:2], forA)
}

func TestSaveVoyage(t *testing.T) {
	db := openTemp(t)

	sea := []*island.Island{
		island.MustNew("E", 40, 4),
		island.MustNew("poor", 1, 50),
	}
	d := raid.NewDynamic(2)
	d.AddIslands(sea)
	v := engine.NewVoyage("voyage-1", d, []int{4})
	v.TickDay(1)
	require.Len(t, v.Pending, 2)

	require.NoError(t, db.SaveVoyage(v, sea))
	assert.Empty(t, v.Pending)

	raids, err := db.RaidsForVoyage("voyage-1")
	require.NoError(t, err)
	require.Len(t, raids, 2)
	assert.Equal(t, "E", raids[0].Island)
	assert.Equal(t, "", raids[1].Island)

	stats, err := db.VoyageStats("voyage-1")
	require.NoError(t, err)
	assert.Equal(t, v.Stats, stats)

	last, err := db.GetMeta("last_voyage")
	require.NoError(t, err)
	assert.Equal(t, "voyage-1", last)

	loaded, err := db.LoadIslands()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, 0, loaded[0].Marines())
	assert.Equal(t, 50, loaded[1].Marines())

	_, err = db.VoyageStats("nope")
	assert.ErrorIs(t, err, ErrNoMeta)
}

func TestSaveVoyage_RollsBackOnFailure(t *testing.T) {
	db := openTemp(t)

	sea := []*island.Island{island.MustNew("E", 40, 4)}
	require.NoError(t, db.SaveIslands(sea))

	d := raid.NewDynamic(1)
	d.AddIslands(sea)
	v := engine.NewVoyage("voyage-1", d, []int{2})
	v.TickDay(1)
	require.Len(t, v.Pending, 1)
	require.Equal(t, 2, sea[0].Marines())

	// raid log write fails after the sea has been rewritten
	_, err := db.conn.Exec("DROP TABLE raids")
	require.NoError(t, err)
	assert.Error(t, db.SaveVoyage(v, sea))
	assert.Len(t, v.Pending, 1)

	loaded, err := db.LoadIslands()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 40.0, loaded[0].Money())
	assert.Equal(t, 4, loaded[0].Marines())

	_, err = db.GetMeta("last_voyage")
	assert.ErrorIs(t, err, ErrNoMeta)
}
