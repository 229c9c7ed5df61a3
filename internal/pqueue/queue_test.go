package pqueue

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func greater(a, b int) bool { return a > b }

func drain[T any](q *Queue[T]) []T {
	var out []T
	for !q.Empty() {
		x, _ := q.Pop()
		out = append(out, x)
	}
	return out
}

func TestBuild_PopsInDescendingOrder(t *testing.T) {
	in := []int{5, 1, 9, 3, 9, 0, 7}
	q := Build[int](in, greater)
	assert.Equal(t, len(in), q.Len())

	top, ok := q.Peek()
	assert.True(t, ok)
	assert.Equal(t, 9, top)

	assert.Equal(t, []int{9, 9, 7, 5, 3, 1, 0}, drain(q))
	// input untouched
	assert.Equal(t, []int{5, 1, 9, 3, 9, 0, 7}, in)
}

func TestPushPop_Random(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	q := New[int](greater)
	var want []int
	for i := 0; i < 500; i++ {
		x := rng.Intn(100)
		want = append(want, x)
		q.Push(x)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(want)))
	assert.Equal(t, want, drain(q))
}

func TestEmpty(t *testing.T) {
	q := Build[int](nil, greater)
	assert.True(t, q.Empty())
	_, ok := q.Pop()
	assert.False(t, ok)
	_, ok = q.Peek()
	assert.False(t, ok)
}

func TestComparatorTieBreak(t *testing.T) {
	type job struct {
		prio int
		name string
	}
	higher := func(a, b job) bool {
		if a.prio != b.prio {
			return a.prio > b.prio
		}
		return a.name < b.name
	}
	q := Build[job]([]job{{1, "c"}, {2, "b"}, {1, "a"}, {2, "a"}}, higher)
	q.Push(job{1, "b"})
	assert.Equal(t, []job{{2, "a"}, {2, "b"}, {1, "a"}, {1, "b"}, {1, "c"}}, drain(q))
}
