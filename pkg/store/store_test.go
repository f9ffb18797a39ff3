package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja7ad/crossflow/pkg/crossflow"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.sqlite3"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleRun(at time.Time) Run {
	return Run{
		CreatedAt:    at,
		Volume:       1,
		TMP:          100_000,
		MembraneArea: 5,
		MWCO:         40_000,
		TargetFactor: 2,
		Step:         time.Hour,
		Resistance:   "simplified",
		Viscosity:    "water",
		Termination:  "max simulation time 5h0m0s",
		Result: crossflow.Result{
			PermeateVolume:      0.000123,
			RetentateVolume:     0.999877,
			ConcentrationFactor: 1.000123015,
			Time:                5 * time.Hour,
			Steps:               5,
			Reason:              crossflow.ReasonStrategy,
		},
	}
}

func TestStore_SaveAndGet(t *testing.T) {
	s := openTemp(t)
	at := time.Date(2026, 10, 1, 8, 30, 0, 0, time.UTC)

	saved, err := s.Save(sampleRun(at))
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	got, err := s.Get(saved.ID)
	require.NoError(t, err)
	assert.True(t, at.Equal(got.CreatedAt))
	got.CreatedAt = saved.CreatedAt
	assert.Equal(t, saved, got)
}

func TestStore_GetMissing(t *testing.T) {
	s := openTemp(t)
	_, err := s.Get("does-not-exist")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_ListNewestFirst(t *testing.T) {
	s := openTemp(t)
	base := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		r := sampleRun(base.Add(time.Duration(i) * time.Hour))
		r.Result.Steps = i
		_, err := s.Save(r)
		require.NoError(t, err)
	}

	all, err := s.List(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 2, all[0].Result.Steps)
	assert.Equal(t, 0, all[2].Result.Steps)

	two, err := s.List(2)
	require.NoError(t, err)
	require.Len(t, two, 2)
	assert.Equal(t, all[0].ID, two[0].ID)
}

func TestStore_DuplicateID(t *testing.T) {
	s := openTemp(t)
	r := sampleRun(time.Now())
	r.ID = "fixed"
	_, err := s.Save(r)
	require.NoError(t, err)
	_, err = s.Save(r)
	require.Error(t, err)
}

func TestStore_ReopenKeepsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.sqlite3")
	s, err := Open(path)
	require.NoError(t, err)
	saved, err := s.Save(sampleRun(time.Now()))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = s2.Close() }()
	got, err := s2.Get(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.Result, got.Result)
}
