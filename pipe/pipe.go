// Package pipe connects the two halves of the viewer over an in-process connection,
// exchanging gob encoded messages the way they would over a socket.
package pipe

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"reflect"
	"sync"
)

// NewListener returns the two ends of an in-process connection; the listener hands out its
// end once.
func NewListener() (client net.Conn, listener net.Listener) {
	clientPipe, listenerPipe := net.Pipe()
	return clientPipe, &pipeListener{
		pipe: listenerPipe,
		done: make(chan struct{}),
	}
}

type pipeListener struct {
	mu   sync.Mutex
	pipe net.Conn
	done chan struct{}
	once sync.Once
}

func (p *pipeListener) Accept() (net.Conn, error) {
	p.mu.Lock()
	pipe := p.pipe
	p.pipe = nil
	p.mu.Unlock()

	if pipe != nil {
		return pipe, nil
	}
	<-p.done
	return nil, net.ErrClosed
}

func (p *pipeListener) Close() error {
	p.once.Do(func() { close(p.done) })
	return nil
}

func (p *pipeListener) Addr() net.Addr {
	return pipeAddr{}
}

type pipeAddr struct{}

func (pipeAddr) Network() string { return "pipe" }
func (pipeAddr) String() string  { return "pipe" }

// Messenger gob-encodes messages onto a connection and hands decoded messages to handle.
// handle runs on the receiving goroutine. Message types must be registered with gob.
type Messenger struct {
	ctx  context.Context
	send chan any
}

// NewMessenger starts sending and receiving on conn until ctx ends, which also closes conn.
// quit is called with the first transport error.
func NewMessenger(ctx context.Context, conn net.Conn, quit func(error), handle func(msg any)) *Messenger {
	m := &Messenger{
		ctx:  ctx,
		send: make(chan any),
	}

	context.AfterFunc(ctx, func() {
		conn.Close()
	})

	go m.handleSend(conn, quit)
	go m.handleReceive(conn, quit, handle)

	return m
}

// Send queues msg, giving up when the context ends.
func (m *Messenger) Send(msg any) {
	select {
	case m.send <- msg:
	case <-m.ctx.Done():
	}
}

func (m *Messenger) handleSend(conn net.Conn, quit func(error)) {
	enc := gob.NewEncoder(conn)

	for {
		select {
		case msg := <-m.send:
			if err := enc.Encode(&msg); err != nil {
				if m.ctx.Err() == nil {
					quit(fmt.Errorf("sending %v: %w", reflect.TypeOf(msg), err))
				}
				return
			}
		case <-m.ctx.Done():
			return
		}
	}
}

func (m *Messenger) handleReceive(conn net.Conn, quit func(error), handle func(msg any)) {
	dec := gob.NewDecoder(conn)

	for {
		var v any
		err := dec.Decode(&v)
		if err != nil {
			if m.ctx.Err() != nil || errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) {
				return
			}
			quit(fmt.Errorf("receiving message: %w", err))
			return
		}

		if v == nil {
			log.Println("empty message received")
			continue
		}
		handle(v)
	}
}
