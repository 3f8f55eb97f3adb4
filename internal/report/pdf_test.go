package report

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestChromiumRendererUnavailable(t *testing.T) {
	r := &ChromiumRenderer{timeout: time.Second}
	if r.Available() {
		t.Fatal("renderer without a browser path reported available")
	}

	_, err := r.Render(context.Background(), Document{})
	if !errors.Is(err, ErrRendererUnavailable) {
		t.Fatalf("err = %v, want ErrRendererUnavailable", err)
	}
}

func TestNewChromiumRendererDefaults(t *testing.T) {
	r := NewChromiumRenderer("/opt/chrome", 0)
	if r.chromePath != "/opt/chrome" {
		t.Errorf("chromePath = %q", r.chromePath)
	}
	if r.timeout != 30*time.Second {
		t.Errorf("timeout = %v", r.timeout)
	}
}

func TestApplyLayoutHooksNoopWhenHeadingMissing(t *testing.T) {
	in := []byte("<h3>Perception vs. Reality</h3>")
	if out := applyLayoutHooks(in); string(out) != string(in) {
		t.Fatalf("unexpected rewrite: %s", out)
	}
}
