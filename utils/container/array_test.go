package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TimurZav/digital-city-cars/utils/container"
)

type elem struct {
	container.IncrementalItemBase
	id int
}

func ids(data []*elem) []int {
	out := make([]int, 0, len(data))
	for _, e := range data {
		out = append(out, e.id)
	}
	return out
}

func TestIncrementalArrayDeferredCommit(t *testing.T) {
	a := container.NewIncrementalArray[*elem]()
	e1, e2, e3 := &elem{id: 1}, &elem{id: 2}, &elem{id: 3}
	a.Add(e1)
	a.Add(e2)
	a.Add(e3)

	// test: mutations stay invisible until Prepare

	assert.Zero(t, a.Len())
	a.Prepare()
	assert.Equal(t, []int{1, 2, 3}, ids(a.Data()))

	// test: removal backfills from the tail and rewrites indices

	a.Remove(e1)
	a.Prepare()
	assert.Equal(t, []int{3, 2}, ids(a.Data()))
	for i, e := range a.Data() {
		assert.Equal(t, i, e.Index())
	}
}

func TestIncrementalArrayAddAndRemoveTogether(t *testing.T) {
	a := container.NewIncrementalArray[*elem]()
	e1, e2 := &elem{id: 1}, &elem{id: 2}
	a.Add(e1)
	a.Add(e2)
	a.Prepare()

	// 新元素顶替被删元素的位置
	e3 := &elem{id: 3}
	a.Remove(e1)
	a.Add(e3)
	a.Prepare()
	assert.Equal(t, []int{3, 2}, ids(a.Data()))
	assert.Equal(t, 0, e3.Index())
}
