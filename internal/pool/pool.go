package pool

// Resettable is a constraint for types that have a Reset() method.
type Resettable interface {
	Reset()
}

// Poolable is a constraint for types that can be pooled (must be resettable and comparable).
type Poolable interface {
	Resettable
	comparable
}

// Pool keeps up to capacity idle objects of type T for reuse.
// Objects are reset on the way in, so Get always hands out a clean one.
type Pool[T Poolable] struct {
	items   chan T
	newItem func() T
}

// New creates a pool holding at most capacity idle objects. newItem builds
// an object when the pool is empty; it may be nil, in which case Get returns
// the zero value of T.
func New[T Poolable](capacity int, newItem func() T) *Pool[T] {
	return &Pool[T]{
		items:   make(chan T, capacity),
		newItem: newItem,
	}
}

// Get takes an idle object or builds a new one.
func (p *Pool[T]) Get() T {
	select {
	case item := <-p.items:
		return item
	default:
		if p.newItem != nil {
			return p.newItem()
		}
		var zero T
		return zero
	}
}

// Put resets item and keeps it if there is room. Zero values are dropped.
func (p *Pool[T]) Put(item T) {
	var zero T
	if item == zero {
		return
	}
	item.Reset()

	select {
	case p.items <- item:
	default:
	}
}

// Idle reports how many objects are waiting in the pool.
func (p *Pool[T]) Idle() int {
	return len(p.items)
}
