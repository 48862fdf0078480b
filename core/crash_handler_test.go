package core

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeScreen struct {
	mu    sync.Mutex
	finis int
}

func (f *fakeScreen) Fini() {
	f.mu.Lock()
	f.finis++
	f.mu.Unlock()
}

func (f *fakeScreen) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.finis
}

// captureCrash swaps the exit and output hooks for the duration of a test
func captureCrash(t *testing.T) (*bytes.Buffer, chan int) {
	t.Helper()

	out := &bytes.Buffer{}
	codes := make(chan int, 1)

	prevOut, prevExit := crashOut, crashExit
	crashOut = out
	crashExit = func(code int) { codes <- code }
	t.Cleanup(func() {
		crashOut, crashExit = prevOut, prevExit
		RegisterScreen(nil)
	})
	return out, codes
}

func TestHandleCrashNilIsNoop(t *testing.T) {
	out, codes := captureCrash(t)
	screen := &fakeScreen{}
	RegisterScreen(screen)

	HandleCrash(nil)

	if screen.count() != 0 || out.Len() != 0 || len(codes) != 0 {
		t.Error("nil recover value should not touch the terminal or exit")
	}
}

func TestHandleCrashRestoresScreen(t *testing.T) {
	out, codes := captureCrash(t)
	screen := &fakeScreen{}
	RegisterScreen(screen)

	HandleCrash("boom")

	if screen.count() != 1 {
		t.Errorf("Fini called %d times, want 1", screen.count())
	}
	if code := <-codes; code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if s := out.String(); !strings.Contains(s, "CRASH DETECTED: boom") || !strings.Contains(s, "Stack Trace:") {
		t.Errorf("crash report missing details:\n%s", s)
	}

	// Screen is released after the first report
	HandleCrash("again")
	<-codes
	if screen.count() != 1 {
		t.Errorf("Fini called %d times after second crash, want 1", screen.count())
	}
}

func TestGoRecoversPanic(t *testing.T) {
	_, codes := captureCrash(t)
	screen := &fakeScreen{}
	RegisterScreen(screen)

	Go(func() { panic("worker failed") })

	select {
	case code := <-codes:
		if code != 1 {
			t.Errorf("exit code = %d, want 1", code)
		}
	case <-time.After(time.Second):
		t.Fatal("panic in goroutine was not handled")
	}
	if screen.count() != 1 {
		t.Errorf("Fini called %d times, want 1", screen.count())
	}
}
