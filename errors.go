package arcmem

import (
	"github.com/hupe1980/arcmem/internal/resource"
	"github.com/hupe1980/arcmem/mem"
)

var (
	// ErrMemoryLimitExceeded is returned by a tracker when an allocation
	// would exceed its memory limit.
	ErrMemoryLimitExceeded = resource.ErrMemoryLimitExceeded

	// ErrInvalidSize is returned for non-positive span sizes.
	ErrInvalidSize = mem.ErrInvalidSize
)
