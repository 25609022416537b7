package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/bnema/fsearch/internal/domain/entity"
	"github.com/bnema/fsearch/internal/logging"
)

var (
	// ErrBridgeClosed fails requests issued after, or pending at, shutdown.
	ErrBridgeClosed = errors.New("message bridge closed")
	// ErrRequestTimeout fails requests the host did not answer in time.
	ErrRequestTimeout = errors.New("message bridge request timed out")
)

// DefaultRequestTimeout bounds a round trip when no timeout is configured.
const DefaultRequestTimeout = 2 * time.Second

// Callback receives a response or the error that replaced it. It always
// runs through the bridge's post function.
type Callback func(Response, error)

type pendingCall struct {
	query Query
	cb    Callback
	timer *time.Timer
}

// Bridge is the controller side of the message channel. Responses and
// notifications are delivered through post so that UI state is only ever
// touched from the UI loop.
type Bridge struct {
	conn    Conn
	post    func(func())
	timeout time.Duration
	notify  func(Response)

	mu      sync.Mutex
	nextID  uint64
	pending map[uint64]*pendingCall
	closed  bool
}

// BridgeOption customizes a Bridge.
type BridgeOption func(*Bridge)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) BridgeOption {
	return func(b *Bridge) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// WithNotificationHandler sets the receiver of host-initiated messages.
func WithNotificationHandler(fn func(Response)) BridgeOption {
	return func(b *Bridge) { b.notify = fn }
}

// NewBridge creates a bridge over conn. A nil post runs callbacks on the
// reader goroutine.
func NewBridge(conn Conn, post func(func()), opts ...BridgeOption) *Bridge {
	if post == nil {
		post = func(fn func()) { fn() }
	}
	b := &Bridge{
		conn:    conn,
		post:    post,
		timeout: DefaultRequestTimeout,
		pending: make(map[uint64]*pendingCall),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run reads responses until ctx ends or the connection closes. Pending
// requests are failed with ErrBridgeClosed on return.
func (b *Bridge) Run(ctx context.Context) error {
	log := logging.FromContext(ctx)
	defer b.failAll(ErrBridgeClosed)

	for {
		raw, err := b.conn.Recv(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) || errors.Is(err, ErrConnClosed) {
				return nil
			}
			return fmt.Errorf("bridge receive: %w", err)
		}

		var resp Response
		if err := json.Unmarshal(raw, &resp); err != nil {
			log.Warn().Err(err).Msg("dropping malformed host message")
			continue
		}
		b.dispatch(ctx, resp)
	}
}

func (b *Bridge) dispatch(ctx context.Context, resp Response) {
	log := logging.FromContext(ctx)

	if resp.ID == NotificationID {
		if b.notify == nil {
			return
		}
		log.Debug().Str("action", string(resp.Action)).Msg("host notification")
		b.post(func() { b.notify(resp) })
		return
	}

	b.mu.Lock()
	call, ok := b.pending[resp.ID]
	delete(b.pending, resp.ID)
	b.mu.Unlock()

	if !ok {
		log.Debug().Uint64("request_id", resp.ID).Msg("response for unknown or expired request")
		return
	}
	call.timer.Stop()

	var err error
	if resp.Action == ActionError {
		err = &HostError{Query: call.query, Message: resp.Error}
	}
	b.post(func() { call.cb(resp, err) })
}

// Request sends req and arranges for cb to receive the outcome. The
// returned id identifies the request; req.ID is overwritten.
func (b *Bridge) Request(ctx context.Context, req Request, cb Callback) (uint64, error) {
	if cb == nil {
		cb = func(Response, error) {}
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return 0, ErrBridgeClosed
	}
	b.nextID++
	id := b.nextID
	req.ID = id
	call := &pendingCall{query: req.Query, cb: cb}
	call.timer = time.AfterFunc(b.timeout, func() { b.expire(id) })
	b.pending[id] = call
	b.mu.Unlock()

	data, err := json.Marshal(req)
	if err == nil {
		err = b.conn.Send(ctx, data)
	}
	if err != nil {
		b.mu.Lock()
		delete(b.pending, id)
		b.mu.Unlock()
		call.timer.Stop()
		if errors.Is(err, ErrConnClosed) {
			err = ErrBridgeClosed
		}
		return 0, fmt.Errorf("send %s: %w", req.Query, err)
	}

	logging.FromContext(ctx).Debug().
		Uint64("request_id", id).
		Str("query", string(req.Query)).
		Msg("bridge request sent")
	return id, nil
}

func (b *Bridge) expire(id uint64) {
	b.mu.Lock()
	call, ok := b.pending[id]
	delete(b.pending, id)
	b.mu.Unlock()

	if ok {
		b.post(func() { call.cb(Response{ID: id}, ErrRequestTimeout) })
	}
}

// Tabs asks for the tab list.
func (b *Bridge) Tabs(ctx context.Context, cb Callback) (uint64, error) {
	return b.Request(ctx, Request{Query: QueryTabs}, cb)
}

// Update asks the host to activate id.
func (b *Bridge) Update(ctx context.Context, id entity.TabID, cb Callback) (uint64, error) {
	return b.Request(ctx, TabRequest(QueryUpdate, id), cb)
}

// Remove asks the host to close id.
func (b *Bridge) Remove(ctx context.Context, id entity.TabID, cb Callback) (uint64, error) {
	return b.Request(ctx, TabRequest(QueryRemove, id), cb)
}

// Storage asks the host for the stored value under key.
func (b *Bridge) Storage(ctx context.Context, key string, cb Callback) (uint64, error) {
	return b.Request(ctx, Request{Query: QueryStorage, Key: key}, cb)
}

// Close closes the connection and fails pending requests.
func (b *Bridge) Close() error {
	err := b.conn.Close()
	b.failAll(ErrBridgeClosed)
	return err
}

func (b *Bridge) failAll(err error) {
	b.mu.Lock()
	b.closed = true
	calls := b.pending
	b.pending = make(map[uint64]*pendingCall)
	b.mu.Unlock()

	for id, call := range calls {
		id, call := id, call
		call.timer.Stop()
		b.post(func() { call.cb(Response{ID: id}, err) })
	}
}
