package httpapi

import (
	"context"
)

// serverBaseCtx is cancelled when the daemon begins shutdown. The completion
// handler joins it with the per-request context so an in-flight generation
// stops for whichever ends first: the editor's request or the process.
var serverBaseCtx = context.Background()

// SetBaseContext installs the shutdown context; main calls this before
// serving. Passing nil resets to Background.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		serverBaseCtx = context.Background()
		return
	}
	serverBaseCtx = ctx
}

// joinContexts derives a context that ends when either a or b does. Callers
// must invoke the returned cancel to release the watcher goroutine once the
// handler returns.
func joinContexts(a, b context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case <-a.Done():
			cancel()
		case <-b.Done():
			cancel()
		}
	}()
	return ctx, cancel
}
