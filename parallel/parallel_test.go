package parallel

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStarMapSerialMatchesInputOrder(t *testing.T) {
	m := New(func(x int) int { return x * 2 }, 1, true, nil)
	got := m.StarMap(context.Background(), []int{1, 2, 3, 4})
	assert.Equal(t, []int{2, 4, 6, 8}, got)
}

func TestStarMapParallelMatchesSerial(t *testing.T) {
	serial := New(func(x int) int { return x * x }, 1, true, nil)
	parallelMapper := New(func(x int) int { return x * x }, 4, true, nil)
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	want := serial.StarMap(context.Background(), items)
	got := parallelMapper.StarMap(context.Background(), items)
	assert.Equal(t, want, got)
}

func TestStarMapEmptyInput(t *testing.T) {
	m := New(func(x int) int { return x }, 4, true, nil)
	assert.Nil(t, m.StarMap(context.Background(), nil))
}

func TestStarMapFallsBackToSerialOnPanic(t *testing.T) {
	var panicked atomic.Bool
	fn := func(x int) int {
		if x == 3 && panicked.CompareAndSwap(false, true) {
			panic("boom")
		}
		return x
	}
	m := New(fn, 4, true, nil)
	got := m.StarMap(context.Background(), []int{1, 2, 3, 4})
	assert.Equal(t, []int{1, 2, 3, 4}, got)
}
