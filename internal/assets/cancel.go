// Where: cli/internal/assets/cancel.go
// What: Cooperative cancellation token.
// Why: Build/publish poll a shared aborted flag between steps.
package assets

import "sync/atomic"

// Token is a level-triggered cancellation flag shared by all handlers
// of one publishing run. Once aborted, every subsequent step in
// build/publish becomes a silent no-op; cancellation is not an error.
type Token struct {
	aborted atomic.Bool
}

// NewToken returns a token in the not-aborted state.
func NewToken() *Token {
	return &Token{}
}

// Abort requests cancellation. Safe to call from any goroutine and
// more than once.
func (t *Token) Abort() {
	t.aborted.Store(true)
}

// Aborted reports whether cancellation has been requested. A nil token
// never aborts.
func (t *Token) Aborted() bool {
	if t == nil {
		return false
	}
	return t.aborted.Load()
}
