package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoPlayers() Snapshot {
	return Snapshot{
		Players: []Entry{
			{ID: "a", Name: "Ann", IsSeated: true, IsConnected: true},
			{ID: "b", Name: "Bo", IsSeated: false, IsConnected: true},
		},
		LeaderID: "a",
	}
}

func TestCompute_FirstCallAddsEverything(t *testing.T) {
	s := New()
	d := s.Compute(twoPlayers())
	require.NotNil(t, d)
	assert.Len(t, d.Added, 2)
	require.NotNil(t, d.LeaderID)
	assert.Equal(t, "a", *d.LeaderID)
}

func TestCompute_NoChangeIsNil(t *testing.T) {
	s := New()
	require.NotNil(t, s.Compute(twoPlayers()))
	assert.Nil(t, s.Compute(twoPlayers()))
}

func TestCompute_SingleFieldUpdate(t *testing.T) {
	s := New()
	s.Compute(twoPlayers())

	snap := twoPlayers()
	snap.Players[1].IsConnected = false
	d := s.Compute(snap)

	require.NotNil(t, d)
	assert.Empty(t, d.Added)
	assert.Empty(t, d.Removed)
	assert.Nil(t, d.LeaderID)
	require.Len(t, d.Updated, 1)
	u := d.Updated[0]
	assert.Equal(t, "b", u.ID)
	require.NotNil(t, u.IsConnected)
	assert.False(t, *u.IsConnected)
	assert.Nil(t, u.Name)
	assert.Nil(t, u.IsSeated)
}

func TestCompute_Removal(t *testing.T) {
	s := New()
	s.Compute(twoPlayers())

	snap := twoPlayers()
	snap.Players = snap.Players[:1]
	d := s.Compute(snap)

	require.NotNil(t, d)
	assert.Equal(t, []string{"b"}, d.Removed)
	assert.Empty(t, d.Added)
	assert.Empty(t, d.Updated)
	assert.Nil(t, d.LeaderID)
}

func TestCompute_LeaderAgainstLastReported(t *testing.T) {
	s := New()
	s.Compute(twoPlayers())

	snap := twoPlayers()
	snap.LeaderID = "b"
	d := s.Compute(snap)
	require.NotNil(t, d)
	require.NotNil(t, d.LeaderID)
	assert.Equal(t, "b", *d.LeaderID)
	assert.Empty(t, d.Updated)

	// back to the same leader with nothing else changed
	assert.Nil(t, s.Compute(snap))
}

func TestCompute_UntouchedSnapshotOnNoDiff(t *testing.T) {
	s := New()
	s.Compute(twoPlayers())
	assert.Nil(t, s.Compute(twoPlayers()))

	snap := twoPlayers()
	snap.Players[0].Name = "Anna"
	d := s.Compute(snap)
	require.NotNil(t, d)
	require.Len(t, d.Updated, 1)
	assert.Equal(t, "Anna", *d.Updated[0].Name)
}

func TestReset(t *testing.T) {
	s := New()
	s.Compute(twoPlayers())
	s.Reset()

	d := s.Compute(twoPlayers())
	require.NotNil(t, d)
	assert.Len(t, d.Added, 2)
}
