package memstore

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionedUpdateAndView(t *testing.T) {
	s := NewPartitioned(func() []int { return make([]int, 0, 4) })

	assert.False(t, s.View("a", func(v *[]int) {}))
	assert.Equal(t, 0, s.Len())

	s.Update("a", func(v *[]int) { *v = append(*v, 1) })
	s.Update("a", func(v *[]int) { *v = append(*v, 2) })
	s.Update("b", func(v *[]int) { *v = append(*v, 9) })

	var got []int
	assert.True(t, s.View("a", func(v *[]int) { got = append(got, *v...) }))
	assert.Equal(t, []int{1, 2}, got)
	assert.Equal(t, []string{"a", "b"}, s.Keys())
}

func TestPartitionedConcurrentUpdates(t *testing.T) {
	s := NewPartitioned[int](nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		key := fmt.Sprintf("tenant-%d", i%2)
		for j := 0; j < 250; j++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.Update(key, func(v *int) { *v++ })
			}()
		}
	}
	wg.Wait()

	for _, key := range []string{"tenant-0", "tenant-1"} {
		var n int
		s.View(key, func(v *int) { n = *v })
		assert.Equal(t, 1000, n, key)
	}
}
