package async

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/vcpkg-release/pkg/utils/logging"
)

// Gather runs handlers concurrently and waits for all of them. Handlers get a
// context that keeps the caller's logger but not its cancellation, so results
// of an interrupted run are still delivered.
//
// A panicking handler is recovered and reported as an error. Errors of all
// handlers are joined.
func Gather(ctx context.Context, handlers ...func(ctx context.Context) error) error {
	newCtx := newBackgroundContext(ctx)

	errs := make([]error, len(handlers))
	var wg sync.WaitGroup

	for i, handler := range handlers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					stack := debug.Stack()
					logging.From(newCtx).Error("panic in async handler",
						"recover", r,
						"stack", string(stack))
					errs[i] = goerr.New("panic in async handler", goerr.V("recover", fmt.Sprint(r)))
				}
			}()

			errs[i] = handler(newCtx)
		}()
	}

	wg.Wait()
	return errors.Join(errs...)
}

// newBackgroundContext creates a new background context preserving the logger
func newBackgroundContext(ctx context.Context) context.Context {
	return logging.With(context.Background(), logging.From(ctx))
}
