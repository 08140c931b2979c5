package observability

import (
	"context"
	"testing"
	"time"
)

type recordingPipelineHooks struct {
	NoopPipelineHooks
	generates int
	renders   int
}

func (h *recordingPipelineHooks) OnGenerateComplete(ctx context.Context, shape string, cells int, d time.Duration, err error) {
	h.generates++
}

func (h *recordingPipelineHooks) OnRenderComplete(ctx context.Context, formats []string, d time.Duration, err error) {
	h.renders++
}

type recordingCacheHooks struct {
	NoopCacheHooks
	hits, misses int
}

func (h *recordingCacheHooks) OnCacheHit(ctx context.Context, format string)  { h.hits++ }
func (h *recordingCacheHooks) OnCacheMiss(ctx context.Context, format string) { h.misses++ }

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()

	// None of these should panic.
	ctx := context.Background()
	Pipeline().OnGenerateStart(ctx, "circles", 100)
	Pipeline().OnGenerateComplete(ctx, "circles", 100, time.Millisecond, nil)
	Pipeline().OnRenderStart(ctx, []string{"svg"})
	Pipeline().OnRenderComplete(ctx, []string{"svg"}, time.Millisecond, nil)
	Cache().OnCacheHit(ctx, "svg")
	Cache().OnCacheMiss(ctx, "png")
	Cache().OnCacheSet(ctx, "svg", 1024)
}

func TestSetPipelineHooks(t *testing.T) {
	t.Cleanup(Reset)

	h := &recordingPipelineHooks{}
	SetPipelineHooks(h)

	ctx := context.Background()
	Pipeline().OnGenerateComplete(ctx, "stripes", 50, time.Millisecond, nil)
	Pipeline().OnRenderComplete(ctx, []string{"svg", "png"}, time.Millisecond, nil)

	if h.generates != 1 || h.renders != 1 {
		t.Errorf("recorded generates=%d renders=%d, want 1/1", h.generates, h.renders)
	}
}

func TestSetCacheHooks(t *testing.T) {
	t.Cleanup(Reset)

	h := &recordingCacheHooks{}
	SetCacheHooks(h)

	ctx := context.Background()
	Cache().OnCacheHit(ctx, "svg")
	Cache().OnCacheHit(ctx, "svg")
	Cache().OnCacheMiss(ctx, "png")

	if h.hits != 2 || h.misses != 1 {
		t.Errorf("recorded hits=%d misses=%d, want 2/1", h.hits, h.misses)
	}
}

func TestSetNilHooksKeepsCurrent(t *testing.T) {
	t.Cleanup(Reset)

	h := &recordingCacheHooks{}
	SetCacheHooks(h)
	SetCacheHooks(nil)

	Cache().OnCacheHit(context.Background(), "svg")
	if h.hits != 1 {
		t.Errorf("hits = %d, want 1 (nil registration should be ignored)", h.hits)
	}
}
