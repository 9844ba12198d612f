package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockResettable struct {
	Value       int
	Name        string
	ResetCalled int
}

func (m *mockResettable) Reset() {
	m.Value = 0
	m.Name = ""
	m.ResetCalled++
}

func TestNewPool(t *testing.T) {
	pool := New[*mockResettable](5, nil)
	require.NotNil(t, pool)
	assert.Equal(t, 0, pool.Idle())
}

func TestPoolGet_EmptyPoolWithoutConstructor(t *testing.T) {
	pool := New[*mockResettable](5, nil)

	assert.Nil(t, pool.Get())
}

func TestPoolGet_EmptyPoolWithConstructor(t *testing.T) {
	built := 0
	pool := New(5, func() *mockResettable {
		built++
		return &mockResettable{Name: "fresh"}
	})

	item := pool.Get()
	require.NotNil(t, item)
	assert.Equal(t, "fresh", item.Name)
	assert.Equal(t, 1, built)
}

func TestPoolPutAndGet(t *testing.T) {
	pool := New[*mockResettable](5, nil)

	obj := &mockResettable{Value: 42, Name: "test"}
	pool.Put(obj)
	assert.Equal(t, 1, pool.Idle())

	retrieved := pool.Get()
	assert.Same(t, obj, retrieved)
	assert.Equal(t, 0, retrieved.Value)
	assert.Equal(t, "", retrieved.Name)
	assert.Equal(t, 1, retrieved.ResetCalled)
}

func TestPoolCapacityOverflow(t *testing.T) {
	pool := New[*mockResettable](2, nil)

	pool.Put(&mockResettable{Value: 1})
	pool.Put(&mockResettable{Value: 2})
	pool.Put(&mockResettable{Value: 3})

	assert.Equal(t, 2, pool.Idle())
	assert.NotNil(t, pool.Get())
	assert.NotNil(t, pool.Get())
	assert.Nil(t, pool.Get())
}

func TestPoolNilHandling(t *testing.T) {
	pool := New[*mockResettable](5, nil)

	var nilObj *mockResettable
	pool.Put(nilObj)

	assert.Equal(t, 0, pool.Idle())
}

func TestPoolReuse(t *testing.T) {
	pool := New[*mockResettable](5, nil)

	obj := &mockResettable{Value: 42, Name: "test"}
	pool.Put(obj)

	retrieved := pool.Get()
	retrieved.Value = 99
	retrieved.Name = "modified"
	pool.Put(retrieved)

	reused := pool.Get()
	assert.Equal(t, 0, reused.Value)
	assert.Equal(t, "", reused.Name)
	assert.Equal(t, 2, reused.ResetCalled)
}

func TestPoolBuffers(t *testing.T) {
	pool := New(1, func() *bytes.Buffer { return new(bytes.Buffer) })

	buf := pool.Get()
	buf.WriteString("<html>")
	pool.Put(buf)

	again := pool.Get()
	assert.Same(t, buf, again)
	assert.Equal(t, 0, again.Len())
}
