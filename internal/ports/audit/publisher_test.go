package audit

import (
	"context"
	"errors"
	"testing"
)

type failing struct{}

func (failing) Publish(context.Context, Event) error { return errors.New("broker down") }

type countRecorder struct {
	ok, failed int
}

func (c *countRecorder) AuditPublished(_ string, ok bool) {
	if ok {
		c.ok++
	} else {
		c.failed++
	}
}

func TestWithRecorder(t *testing.T) {
	rec := &countRecorder{}
	ctx := context.Background()

	if err := WithRecorder(Nop{}, rec).Publish(ctx, Event{Type: EventAccessGranted}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := WithRecorder(failing{}, rec).Publish(ctx, Event{Type: EventAccessRevoked}); err == nil {
		t.Fatalf("expected error from wrapped publisher")
	}

	if rec.ok != 1 || rec.failed != 1 {
		t.Fatalf("got ok=%d failed=%d, want 1/1", rec.ok, rec.failed)
	}
}

func TestWithRecorder_NilRecorder(t *testing.T) {
	p := WithRecorder(Nop{}, nil)
	if _, ok := p.(Nop); !ok {
		t.Fatalf("expected the publisher to be returned unchanged, got %T", p)
	}
}
