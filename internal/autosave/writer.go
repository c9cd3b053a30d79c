package autosave

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type writeOp struct {
	ctx    context.Context
	values Values
	clear  bool
}

// Writer applies saves and clears off the caller's goroutine, one at a time
// and in the order they were requested. Queued saves collapse to the latest
// one, and a clear drops every save queued before it.
type Writer struct {
	autosave *Autosave
	log      *zap.Logger

	mu      sync.Mutex
	idle    *sync.Cond
	ops     []writeOp
	running bool
}

func NewWriter(a *Autosave, log *zap.Logger) *Writer {
	w := &Writer{autosave: a, log: log}
	w.idle = sync.NewCond(&w.mu)
	return w
}

// Save queues values to be written.
func (w *Writer) Save(ctx context.Context, values Values) {
	w.push(writeOp{ctx: ctx, values: values})
}

// Clear queues removal of the saved entry. It runs after any save already
// in progress.
func (w *Writer) Clear(ctx context.Context) {
	w.push(writeOp{ctx: ctx, clear: true})
}

// Wait blocks until every queued operation has been applied.
func (w *Writer) Wait() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for w.running {
		w.idle.Wait()
	}
}

func (w *Writer) push(op writeOp) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n := len(w.ops)
	switch {
	case op.clear:
		w.ops = append(w.ops[:0], op)
	case n > 0 && !w.ops[n-1].clear:
		w.ops[n-1] = op
	default:
		w.ops = append(w.ops, op)
	}

	if !w.running {
		w.running = true
		go w.drain()
	}
}

func (w *Writer) drain() {
	for {
		w.mu.Lock()
		if len(w.ops) == 0 {
			w.running = false
			w.idle.Broadcast()
			w.mu.Unlock()
			return
		}
		op := w.ops[0]
		w.ops = w.ops[1:]
		w.mu.Unlock()

		w.apply(op)
	}
}

func (w *Writer) apply(op writeOp) {
	if op.clear {
		if err := w.autosave.Clear(op.ctx); err != nil {
			w.log.Warn("clear saved form failed", zap.Error(err))
		}
		return
	}
	if err := w.autosave.Save(op.ctx, op.values); err != nil {
		w.log.Warn("autosave failed", zap.Error(err))
	}
}
