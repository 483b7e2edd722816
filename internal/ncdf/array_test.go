package ncdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten(t *testing.T) {
	tests := []struct {
		name      string
		values    interface{}
		wantData  []float64
		wantShape []int
		wantErr   bool
	}{
		{
			name:      "1d float64",
			values:    []float64{1, 2, 3},
			wantData:  []float64{1, 2, 3},
			wantShape: []int{3},
		},
		{
			name:      "2d float32",
			values:    [][]float32{{1, 2}, {3, 4}},
			wantData:  []float64{1, 2, 3, 4},
			wantShape: []int{2, 2},
		},
		{
			name:      "1d int64",
			values:    []int64{10, 20},
			wantData:  []float64{10, 20},
			wantShape: []int{2},
		},
		{
			name:      "3d",
			values:    [][][]float64{{{1}, {2}}, {{3}, {4}}},
			wantData:  []float64{1, 2, 3, 4},
			wantShape: []int{2, 2, 1},
		},
		{
			name:    "ragged",
			values:  [][]float64{{1, 2}, {3}},
			wantErr: true,
		},
		{
			name:    "strings",
			values:  []string{"a"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, shape, err := flatten(tt.values)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantData, data)
			assert.Equal(t, tt.wantShape, shape)
		})
	}
}

func TestArrayAt(t *testing.T) {
	arr, err := NewArray([]float64{0, 1, 2, 3, 4, 5}, []string{"bus", "time"}, []int{2, 3})
	require.NoError(t, err)

	assert.Equal(t, 0.0, arr.At(0, 0))
	assert.Equal(t, 2.0, arr.At(0, 2))
	assert.Equal(t, 3.0, arr.At(1, 0))
	assert.Equal(t, 5.0, arr.At(1, 2))

	n, err := arr.Len("time")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = arr.Len("year")
	assert.Error(t, err)
}

func TestNewArrayRejectsMismatches(t *testing.T) {
	_, err := NewArray([]float64{1, 2}, []string{"a"}, []int{3})
	assert.Error(t, err)

	_, err = NewArray([]float64{1, 2, 3}, []string{"a", "b"}, []int{3})
	assert.Error(t, err)
}

func TestArrayTranspose(t *testing.T) {
	arr, err := NewArray([]float64{0, 1, 2, 3, 4, 5}, []string{"time", "bus"}, []int{3, 2})
	require.NoError(t, err)

	got, err := arr.Transpose("bus", "time")
	require.NoError(t, err)

	assert.Equal(t, []string{"bus", "time"}, got.Dims)
	assert.Equal(t, []int{2, 3}, got.Shape)
	for ti := 0; ti < 3; ti++ {
		for b := 0; b < 2; b++ {
			assert.Equal(t, arr.At(ti, b), got.At(b, ti))
		}
	}

	_, err = arr.Transpose("bus", "year")
	assert.Error(t, err)
}

func TestArraySelectFirst(t *testing.T) {
	// Shape (year=2, bus=2, time=2): selecting year keeps the first block.
	arr, err := NewArray(
		[]float64{0, 1, 2, 3, 10, 11, 12, 13},
		[]string{"year", "bus", "time"},
		[]int{2, 2, 2},
	)
	require.NoError(t, err)

	got := arr.SelectFirst("year")
	assert.Equal(t, []string{"bus", "time"}, got.Dims)
	assert.Equal(t, []float64{0, 1, 2, 3}, got.Data)

	// Absent dimension: unchanged.
	same := got.SelectFirst("bin")
	assert.Equal(t, got, same)
}

func TestParseCFUnits(t *testing.T) {
	tests := []struct {
		name      string
		units     string
		wantStep  time.Duration
		wantEpoch time.Time
		wantErr   bool
	}{
		{
			name:      "hours with full timestamp",
			units:     "hours since 2013-01-01 00:00:00",
			wantStep:  time.Hour,
			wantEpoch: time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "days with bare date",
			units:     "days since 2000-06-15",
			wantStep:  24 * time.Hour,
			wantEpoch: time.Date(2000, 6, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "seconds with T separator",
			units:     "seconds since 2013-01-01T06:00:00",
			wantStep:  time.Second,
			wantEpoch: time.Date(2013, 1, 1, 6, 0, 0, 0, time.UTC),
		},
		{name: "no since", units: "hours", wantErr: true},
		{name: "unknown unit", units: "fortnights since 2013-01-01", wantErr: true},
		{name: "bad epoch", units: "hours since yesterday", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step, epoch, err := parseCFUnits(tt.units)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStep, step)
			assert.True(t, tt.wantEpoch.Equal(epoch), "epoch %v != %v", epoch, tt.wantEpoch)
		})
	}
}
