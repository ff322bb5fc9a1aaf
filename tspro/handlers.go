package tspro

import "sync"

// Handler is a callback for a decoded controller event. Handlers run on the
// client's reader goroutine, one at a time, in the order lines arrive.
type Handler func(event Event)

// ArgsHandler adapts a callback that only wants the raw argument strings.
func ArgsHandler(fn func(args ...string)) Handler {
	if fn == nil {
		return nil
	}
	return func(event Event) {
		fn(event.Args()...)
	}
}

// registration is one table entry. Raw entries take the line's argument
// strings as they arrived and are never held back by typed decoding.
type registration struct {
	handler Handler
	raw     bool
}

// HandlerTable maps event codes to handlers. At most one handler is held
// per code. It is safe for concurrent use; the lock is held only while the
// map is read or changed, never while a handler runs.
type HandlerTable struct {
	mu       sync.RWMutex
	handlers map[EventCode]registration
}

// NewHandlerTable creates an empty handler table.
func NewHandlerTable() *HandlerTable {
	return &HandlerTable{handlers: make(map[EventCode]registration)}
}

// Set registers h for code, replacing any previous handler. A nil handler
// removes the registration. h only sees lines that decode into a typed
// Event.
func (t *HandlerTable) Set(code EventCode, h Handler) {
	t.set(code, registration{handler: h})
}

// SetArgs registers fn for code, replacing any previous handler. fn gets
// the argument strings of every matching line, whether or not they
// convert to the typed event for code. A nil fn removes the registration.
func (t *HandlerTable) SetArgs(code EventCode, fn func(args ...string)) {
	t.set(code, registration{handler: ArgsHandler(fn), raw: true})
}

func (t *HandlerTable) set(code EventCode, r registration) {
	if r.handler == nil {
		t.Remove(code)
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handlers[code] = r
}

// Remove deletes the handler for code. Removing an absent code is a no-op.
func (t *HandlerTable) Remove(code EventCode) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.handlers, code)
}

// Lookup returns the handler registered for code.
func (t *HandlerTable) Lookup(code EventCode) (Handler, bool) {
	h, _, ok := t.lookup(code)
	return h, ok
}

// IsRaw reports whether the handler for code was registered with SetArgs.
func (t *HandlerTable) IsRaw(code EventCode) bool {
	_, raw, _ := t.lookup(code)
	return raw
}

func (t *HandlerTable) lookup(code EventCode) (Handler, bool, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.handlers[code]
	return r.handler, r.raw, ok
}

// Has reports whether a handler is registered for code.
func (t *HandlerTable) Has(code EventCode) bool {
	_, ok := t.Lookup(code)
	return ok
}

// Len returns the number of registered handlers.
func (t *HandlerTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.handlers)
}
