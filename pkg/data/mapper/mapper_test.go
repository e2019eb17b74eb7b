package mapper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.bin")
	samples := []int16{0, 1, -1, 32767, -32768, 4096, -513}

	require.NoError(t, WriteFile(path, samples))

	r := NewReader[int16](path)
	require.NoError(t, r.Open())
	defer r.Close()

	count, err := r.EntryCount()
	require.NoError(t, err)
	assert.Equal(t, int64(len(samples)), count)

	for i, want := range samples {
		var got int16
		require.NoError(t, r.Read(int64(i), &got))
		assert.Equal(t, want, got, "record %d", i)
	}
}

func TestReader_PastEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.bin")
	require.NoError(t, WriteFile(path, []int16{1, 2, 3}))

	r := NewReader[int16](path)
	require.NoError(t, r.Open())
	defer r.Close()

	var rec int16
	assert.ErrorIs(t, r.Read(3, &rec), ErrEOF)
	assert.ErrorIs(t, r.Read(1000, &rec), ErrEOF)

	// A wider record starting in bounds but running past the end is EOF too.
	w := NewReader[int32](path)
	require.NoError(t, w.Open())
	defer w.Close()

	var wide int32
	require.NoError(t, w.Read(0, &wide))
	assert.ErrorIs(t, w.Read(1, &wide), ErrEOF)
}

func TestReader_TruncatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "odd.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x01}, 0o644))

	r := NewReader[int16](path)
	require.NoError(t, r.Open())
	defer r.Close()

	_, err := r.EntryCount()
	assert.Error(t, err)
}

func TestReader_MissingFile(t *testing.T) {
	r := NewReader[int16](filepath.Join(t.TempDir(), "nope.bin"))
	assert.Error(t, r.Open())
}

func TestLoadSamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.bin")
	samples := make([]int16, 1024)
	for i := range samples {
		samples[i] = int16(3*i - 1500)
	}
	require.NoError(t, WriteFile(path, samples))

	got, err := LoadSamples(path)
	require.NoError(t, err)
	assert.Equal(t, samples, got)
}

func TestLoadSamples_MissingFile(t *testing.T) {
	_, err := LoadSamples(filepath.Join(t.TempDir(), "nope.bin"))
	assert.Error(t, err)
}
