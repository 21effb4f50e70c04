package arc

import "github.com/hupe1980/arcmem/mem"

type options struct {
	heap mem.Heap
}

// Option configures cell construction.
type Option func(*options)

// WithHeap charges cells against h. If nil is passed, mem.Runtime is used.
func WithHeap(h mem.Heap) Option {
	return func(o *options) {
		if h == nil {
			h = mem.Runtime{}
		}
		o.heap = h
	}
}

func applyOptions(opts []Option) options {
	o := options{heap: mem.Runtime{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
