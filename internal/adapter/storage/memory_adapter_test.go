package storage

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryCart_RoundTrip(t *testing.T) {
	ctx := context.Background()
	adapter := NewMemoryAdapter()

	items := testItems()
	if err := adapter.SaveCart(ctx, items); err != nil {
		t.Fatalf("SaveCart failed: %v", err)
	}

	loaded, err := adapter.LoadCart(ctx)
	if err != nil {
		t.Fatalf("LoadCart failed: %v", err)
	}
	if len(loaded) != 2 || !sameItem(items[0], loaded[0]) || !sameItem(items[1], loaded[1]) {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestMemoryCart_EmptyIsArray(t *testing.T) {
	ctx := context.Background()
	adapter := NewMemoryAdapter()

	if err := adapter.SaveCart(ctx, nil); err != nil {
		t.Fatalf("SaveCart failed: %v", err)
	}
	if raw, _ := adapter.Raw(cartKey); raw != "[]" {
		t.Errorf("expected [], got %q", raw)
	}

	items, err := adapter.LoadCart(ctx)
	if err != nil {
		t.Fatalf("LoadCart failed: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("expected empty non-nil cart, got %+v", items)
	}
}

func TestMemoryCart_Corrupt(t *testing.T) {
	adapter := NewMemoryAdapter()
	adapter.SetRaw(cartKey, `{"id":1}`)

	_, err := adapter.LoadCart(context.Background())
	if !errors.Is(err, ErrCorruptData) {
		t.Errorf("expected ErrCorruptData, got: %v", err)
	}
}

func TestMemorySession(t *testing.T) {
	ctx := context.Background()
	adapter := NewMemoryAdapter()

	if _, ok, _ := adapter.LoadPage(ctx, "s-1"); ok {
		t.Error("expected no page before first save")
	}

	adapter.SavePage(ctx, "s-1", "products")

	page, ok, err := adapter.LoadPage(ctx, "s-1")
	if err != nil || !ok || page != "products" {
		t.Errorf("expected products, got %q ok=%v err=%v", page, ok, err)
	}
}

func TestMemorySubmissions(t *testing.T) {
	ctx := context.Background()
	adapter := NewMemoryAdapter()

	subs, err := adapter.ListSubmissions(ctx)
	if err != nil || len(subs) != 0 {
		t.Fatalf("expected empty log, got %+v err=%v", subs, err)
	}

	adapter.AppendSubmission(ctx, testSubmission("a"))
	adapter.AppendSubmission(ctx, testSubmission("b"))

	subs, err = adapter.ListSubmissions(ctx)
	if err != nil {
		t.Fatalf("ListSubmissions failed: %v", err)
	}
	if len(subs) != 2 || subs[0].ID != "a" || subs[1].ID != "b" {
		t.Errorf("unexpected submissions: %+v", subs)
	}
	if !subs[0].Timestamp.Equal(testSubmission("a").Timestamp) {
		t.Errorf("timestamp not preserved: %v", subs[0].Timestamp)
	}
}
