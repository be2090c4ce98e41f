package window

import "testing"

func TestNewEngineWindowDefaults(t *testing.T) {
	w := newEngineWindow()
	if w.Width() != 800 || w.Height() != 800 {
		t.Fatalf("expected 800x800 default, got %dx%d", w.Width(), w.Height())
	}
	if w.title != "Globe" {
		t.Fatalf("unexpected default title %q", w.title)
	}
	if w = newEngineWindow(WithTitle("")); w.title != "Globe" {
		t.Fatalf("expected an empty title to keep the default, got %q", w.title)
	}
}

func TestNewEngineWindowClampsInitialSize(t *testing.T) {
	tests := []struct {
		name    string
		options []WindowBuilderOption
		wantW   int
		wantH   int
	}{
		{"too small", []WindowBuilderOption{WithSize(50, 60)}, 200, 200},
		{"too large", []WindowBuilderOption{WithSize(5000, 900), WithSizeLimits(100, 100, 1000, 1000)}, 1000, 900},
		{"unbounded", []WindowBuilderOption{WithSize(5000, 10), WithSizeLimits(0, 0, 0, 0)}, 5000, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newEngineWindow(tc.options...)
			if w.Width() != tc.wantW || w.Height() != tc.wantH {
				t.Fatalf("got %dx%d, want %dx%d", w.Width(), w.Height(), tc.wantW, tc.wantH)
			}
		})
	}
}

func TestPendingRequestsAreTakenOnce(t *testing.T) {
	w := newEngineWindow()
	w.SetCursor(CursorGrab)
	w.SetCursor(CursorGrabbing)
	w.SetTitle("Cairo")

	c, title := w.takePending()
	if c == nil || *c != CursorGrabbing {
		t.Fatalf("expected latest cursor request, got %v", c)
	}
	if title == nil || *title != "Cairo" {
		t.Fatalf("expected title request, got %v", title)
	}

	if c, title = w.takePending(); c != nil || title != nil {
		t.Fatalf("pending requests should be cleared after take")
	}
}

func TestWindowWithoutPlatformIsNotRunning(t *testing.T) {
	w := newEngineWindow()
	if w.IsRunning() {
		t.Fatalf("window without a platform handle must not report running")
	}
	if err := w.Close(); err == nil {
		t.Fatalf("expected error closing an unspawned window")
	}
	if w.SurfaceDescriptor() != nil {
		t.Fatalf("expected nil surface descriptor without a platform window")
	}
}
