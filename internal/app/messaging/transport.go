package messaging

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// ErrConnClosed is returned by Send after the connection has been closed.
var ErrConnClosed = errors.New("connection closed")

// ErrMessageTooLarge is returned for frames above MaxMessageSize.
var ErrMessageTooLarge = errors.New("message too large")

// MaxMessageSize bounds a single frame. Browsers cap host-to-extension
// messages at 1 MiB.
const MaxMessageSize = 1 << 20

// Conn moves whole serialized messages between the two sides. Recv returns
// io.EOF once the peer is gone.
type Conn interface {
	Send(ctx context.Context, msg []byte) error
	Recv(ctx context.Context) ([]byte, error)
	Close() error
}

const pipeBuffer = 32

type pipeConn struct {
	in   <-chan []byte
	out  chan<- []byte
	done chan struct{}
	once *sync.Once
}

// Pipe returns two connected in-memory ends. Closing either end closes both.
func Pipe() (Conn, Conn) {
	ab := make(chan []byte, pipeBuffer)
	ba := make(chan []byte, pipeBuffer)
	done := make(chan struct{})
	once := &sync.Once{}
	return &pipeConn{in: ba, out: ab, done: done, once: once},
		&pipeConn{in: ab, out: ba, done: done, once: once}
}

func (p *pipeConn) Send(ctx context.Context, msg []byte) error {
	select {
	case <-p.done:
		return ErrConnClosed
	default:
	}
	buf := append([]byte(nil), msg...)
	select {
	case p.out <- buf:
		return nil
	case <-p.done:
		return ErrConnClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *pipeConn) Recv(ctx context.Context) ([]byte, error) {
	select {
	case msg := <-p.in:
		return msg, nil
	case <-p.done:
		return nil, io.EOF
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *pipeConn) Close() error {
	p.once.Do(func() { close(p.done) })
	return nil
}

// StreamConn frames messages over a byte stream with a 4-byte
// little-endian length prefix, the browser native-messaging format.
type StreamConn struct {
	r io.Reader
	w io.Writer

	readMu  sync.Mutex
	writeMu sync.Mutex

	closers   []io.Closer
	closeOnce sync.Once
	closed    chan struct{}
}

// NewStreamConn frames over r and w. If either implements io.Closer it is
// closed by Close.
func NewStreamConn(r io.Reader, w io.Writer) *StreamConn {
	c := &StreamConn{r: bufio.NewReader(r), w: w, closed: make(chan struct{})}
	if rc, ok := r.(io.Closer); ok {
		c.closers = append(c.closers, rc)
	}
	if wc, ok := w.(io.Closer); ok {
		c.closers = append(c.closers, wc)
	}
	return c
}

// Send writes one frame. ctx is only checked before writing.
func (c *StreamConn) Send(ctx context.Context, msg []byte) error {
	if len(msg) > MaxMessageSize {
		return fmt.Errorf("%w: %d bytes", ErrMessageTooLarge, len(msg))
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-c.closed:
		return ErrConnClosed
	default:
	}

	frame := make([]byte, 4+len(msg))
	binary.LittleEndian.PutUint32(frame, uint32(len(msg)))
	copy(frame[4:], msg)

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if _, err := c.w.Write(frame); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// Recv reads one frame. A read blocked on the stream is released by Close,
// not by ctx.
func (c *StreamConn) Recv(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.readMu.Lock()
	defer c.readMu.Unlock()

	var header [4]byte
	if _, err := io.ReadFull(c.r, header[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, io.EOF
		}
		return nil, err
	}

	size := binary.LittleEndian.Uint32(header[:])
	if size > MaxMessageSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrMessageTooLarge, size)
	}

	msg := make([]byte, size)
	if _, err := io.ReadFull(c.r, msg); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read frame: %w", err)
	}
	return msg, nil
}

// Close closes the underlying streams.
func (c *StreamConn) Close() error {
	var errs []error
	c.closeOnce.Do(func() {
		close(c.closed)
		for _, closer := range c.closers {
			// r and w may be the same stream.
			if err := closer.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
				errs = append(errs, err)
			}
		}
	})
	return errors.Join(errs...)
}
