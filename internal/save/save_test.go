package save

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/novaspire/worldcore/internal/ecs"
)

func TestRun_WritesEveryRequestAndRepliesResult(t *testing.T) {
	var writes int32
	pool := NewPool(4, func(ctx context.Context, e ecs.EntityID) error {
		atomic.AddInt32(&writes, 1)
		return nil
	})

	reply := make(chan Result, 2)
	reqs := []Request{
		{Entity: ecs.NewEntityID(1, 0), Reply: reply},
		{Entity: ecs.NewEntityID(2, 0), Reply: reply},
	}

	if err := pool.Run(context.Background(), reqs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if writes != 2 {
		t.Fatalf("expected 2 writes, got %d", writes)
	}
	close(reply)
	count := 0
	for r := range reply {
		if r.Err != nil {
			t.Fatalf("unexpected result error: %v", r.Err)
		}
		count++
	}
	if count != 2 {
		t.Fatalf("expected 2 results, got %d", count)
	}
}

func TestRun_OneFailureDoesNotAbortBatch(t *testing.T) {
	failing := ecs.NewEntityID(1, 0)
	ok := ecs.NewEntityID(2, 0)
	pool := NewPool(2, func(ctx context.Context, e ecs.EntityID) error {
		if e == failing {
			return errors.New("disk full")
		}
		return nil
	})

	reply := make(chan Result, 2)
	reqs := []Request{{Entity: failing, Reply: reply}, {Entity: ok, Reply: reply}}

	if err := pool.Run(context.Background(), reqs); err != nil {
		t.Fatalf("unexpected batch error: %v", err)
	}
	close(reply)

	results := map[ecs.EntityID]error{}
	for r := range reply {
		results[r.Entity] = r.Err
	}
	if results[failing] == nil {
		t.Fatalf("expected failing entity to carry an error")
	}
	if results[ok] != nil {
		t.Fatalf("expected ok entity to succeed, got %v", results[ok])
	}
}
