package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "hotel_qa/internal/adapters/redis"
	"hotel_qa/internal/domain"
)

func TestHistory_SaveLoadRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	h := redisad.New(mr.Addr(), "", 0, time.Hour)
	ctx := context.Background()

	msgs := []domain.Message{
		{Role: "user", Content: "hotels in paris?"},
		{Role: "assistant", Content: "There are two."},
	}
	if err := h.Save(ctx, "s1", msgs); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := h.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || got[0].Content != "hotels in paris?" || got[1].Role != "assistant" {
		t.Fatalf("unexpected transcript: %+v", got)
	}
}

func TestHistory_MissIsNotAnError(t *testing.T) {
	mr := miniredis.RunT(t)
	h := redisad.New(mr.Addr(), "", 0, time.Hour)

	got, err := h.Load(context.Background(), "unknown")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != nil {
		t.Fatalf("expected empty transcript, got %+v", got)
	}
}

func TestHistory_EntriesExpire(t *testing.T) {
	mr := miniredis.RunT(t)
	h := redisad.New(mr.Addr(), "", 0, time.Minute)
	ctx := context.Background()

	if err := h.Save(ctx, "s1", []domain.Message{{Role: "user", Content: "hi"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	got, err := h.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != nil {
		t.Fatalf("expected expired transcript, got %+v", got)
	}
}
