package dynamo

import "sync"

// StatePool recycles state vectors of a fixed dimension. The RK stage
// evaluations are the hot loop of a run; pooling keeps them allocation-free.
type StatePool struct {
	pool sync.Pool
	size int
}

func NewStatePool(dim int) *StatePool {
	return &StatePool{
		size: dim,
		pool: sync.Pool{
			New: func() interface{} {
				return make(State, dim)
			},
		},
	}
}

func (p *StatePool) Get() State {
	return p.pool.Get().(State)
}

func (p *StatePool) Put(s State) {
	if len(s) == p.size {
		for i := range s {
			s[i] = 0
		}
		p.pool.Put(s)
	}
}
