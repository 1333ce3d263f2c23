package pipe

import (
	"context"
	"encoding/gob"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/qjulia/julia"
	"github.com/stewi1014/qjulia/presets"
)

func init() {
	gob.Register(&julia.RenderingConfig{})
}

func TestPipeListenerAcceptsOnce(t *testing.T) {
	client, listener := NewListener()
	defer client.Close()

	conn, err := listener.Accept()
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	accepted := make(chan error, 1)
	go func() {
		_, err := listener.Accept()
		accepted <- err
	}()

	select {
	case <-accepted:
		t.Fatal("second Accept returned before Close")
	case <-time.After(20 * time.Millisecond):
	}

	listener.Close()
	if err := <-accepted; !errors.Is(err, net.ErrClosed) {
		t.Fatalf("err = %v, want net.ErrClosed", err)
	}
}

func TestMessengerRoundTrip(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, listener := NewListener()
	server, err := listener.Accept()
	if err != nil {
		t.Fatal(err)
	}

	quit := func(err error) {
		if err != nil {
			t.Errorf("messenger quit: %v", err)
		}
	}

	received := make(chan *julia.RenderingConfig, 1)
	sender := NewMessenger(ctx, client, quit, func(any) {})
	NewMessenger(ctx, server, quit, func(msg any) {
		if cfg, ok := msg.(*julia.RenderingConfig); ok {
			received <- cfg
		}
	})

	cfg := presets.Base(320, 200)
	cfg.Mu = mgl32.Vec4{0.1, 0.2, 0.3, 0.4}
	sender.Send(&cfg)

	select {
	case got := <-received:
		if got.Mu != cfg.Mu || got.Width != 320 || got.Camera.Orig != cfg.Camera.Orig {
			t.Fatalf("received %+v", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("message not delivered")
	}
}

func TestMessengerSendAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client, server := net.Pipe()
	defer server.Close()

	m := NewMessenger(ctx, client, func(error) {}, func(any) {})
	cancel()

	sent := make(chan struct{})
	go func() {
		m.Send(&julia.RenderingConfig{})
		close(sent)
	}()

	select {
	case <-sent:
	case <-time.After(5 * time.Second):
		t.Fatal("Send blocked after the context ended")
	}
}
