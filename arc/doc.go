// Package arc provides atomically reference-counted shared cells.
//
// # Arc
//
// An Arc is one handle to a heap cell holding a value and a counter. New
// creates the cell with a count of one; Clone hands out another handle to the
// same cell; Drop gives a handle up. The handle whose Drop brings the count to
// zero finalizes the cell: it runs the value's Drop method (if the value is a
// Dropper), clears the value and returns the cell to its mem.Heap. That
// happens exactly once per cell.
//
//	a := arc.New(config)
//	defer a.Drop()
//
//	b := a.Clone()
//	go func() {
//	    defer b.Drop()
//	    use(b.Borrow())
//	}()
//
// The value inside an Arc is immutable by contract. Borrow returns a pointer
// so large values are not copied, but writing through it is a data race.
// Use MutexArc for shared mutable state.
//
// # Handle States
//
// Each handle is Owning, Moved (ownership handed to another handle by Move)
// or Gone (dropped). Drop is a no-op on Moved and Gone handles, so deferred
// drops are safe after a Move. Any other use of a non-owning handle aborts.
//
// # Memory Ordering
//
// Clone only needs the increment to be atomic; it orders nothing. Drop must
// make every access through the dropping handle happen before the free, and
// the freeing goroutine must observe all of them. Go's sync/atomic operations
// are sequentially consistent, which gives both the release on decrement and
// the acquire before the free.
//
// The relaxed-increment argument assumes the value is never mutated outside
// a lock. Mutating it through some other channel is a contract violation and
// is not papered over here.
//
// # MutexArc
//
// MutexArc pairs a sync.Mutex with the value inside one Arc. Swap is the only
// mutation: it takes the lock, exchanges the whole value and releases the
// lock on every path. Cloning and dropping never touch the lock.
//
// # Failure
//
// There is no recoverable error path. If the heap refuses a cell the process
// aborts with an out-of-memory diagnostic.
package arc
