package syncs

import "context"

// Semaphore bounds concurrent work. A nil Semaphore never blocks.
type Semaphore chan struct{}

// NewSemaphore returns a semaphore admitting n holders. n <= 0 is unbounded.
func NewSemaphore(n int) Semaphore {
	if n <= 0 {
		return nil
	}
	return make(chan struct{}, n)
}

func (s Semaphore) Acquire(ctx context.Context) error {
	if s == nil {
		return nil
	}
	select {
	case s <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s Semaphore) Release() {
	if s == nil {
		return
	}
	<-s
}
