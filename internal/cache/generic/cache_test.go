package generic

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// TestEnsureLoadsOnce verifies that a loaded value is served from memory afterwards
func TestEnsureLoadsOnce(t *testing.T) {
	mock := NewMockLoader[string, int]()
	mock.LoadFunc = func(ctx context.Context, key string) (int, error) {
		return len(key), nil
	}

	cache := NewGenericCache[string, int](mock)

	for i := 0; i < 3; i++ {
		val, err := cache.Ensure(context.Background(), "sensor:dht")
		if err != nil {
			t.Fatalf("Ensure() failed: %v", err)
		}
		if val != 10 {
			t.Errorf("Expected 10, got %d", val)
		}
	}

	if count := mock.GetLoadCallCount(); count != 1 {
		t.Errorf("Expected Load to be called once, got %d", count)
	}
}

// TestGetNotFound verifies that Get never loads
func TestGetNotFound(t *testing.T) {
	mock := NewMockLoader[string, int]()
	cache := NewGenericCache[string, int](mock)

	val, ok := cache.Get("missing")
	if ok {
		t.Errorf("Expected not found, got %v", val)
	}
	if count := mock.GetLoadCallCount(); count != 0 {
		t.Errorf("Expected no Load calls, got %d", count)
	}
}

// TestConcurrentEnsureSingleFlight verifies that concurrent callers share one load
func TestConcurrentEnsureSingleFlight(t *testing.T) {
	release := make(chan struct{})
	mock := NewMockLoader[string, string]()
	mock.LoadFunc = func(ctx context.Context, key string) (string, error) {
		<-release
		return "schema:" + key, nil
	}

	cache := NewGenericCache[string, string](mock)

	const callers = 20
	var wg sync.WaitGroup
	results := make([]string, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = cache.Ensure(context.Background(), "sensor:bme280")
		}(i)
	}

	// Give callers a moment to pile up on the in-flight load
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Errorf("caller %d: unexpected error %v", i, errs[i])
		}
		if results[i] != "schema:sensor:bme280" {
			t.Errorf("caller %d: got %q", i, results[i])
		}
	}
	if count := mock.GetLoadCallCount(); count != 1 {
		t.Errorf("Expected exactly one Load, got %d", count)
	}
}

// TestErrorRetained verifies that a failed load is kept until cleared
func TestErrorRetained(t *testing.T) {
	expectedErr := errors.New("network unreachable")
	fail := true

	mock := NewMockLoader[string, int]()
	mock.LoadFunc = func(ctx context.Context, key string) (int, error) {
		if fail {
			return 0, expectedErr
		}
		return 7, nil
	}

	cache := NewGenericCache[string, int](mock)

	if _, err := cache.Ensure(context.Background(), "k"); !errors.Is(err, expectedErr) {
		t.Fatalf("Expected error %v, got %v", expectedErr, err)
	}
	if err := cache.Err("k"); !errors.Is(err, expectedErr) {
		t.Errorf("Expected retained error, got %v", err)
	}

	// A retained error short-circuits further loads
	fail = false
	if _, err := cache.Ensure(context.Background(), "k"); !errors.Is(err, expectedErr) {
		t.Errorf("Expected retained error on second Ensure, got %v", err)
	}
	if count := mock.GetLoadCallCount(); count != 1 {
		t.Errorf("Expected one Load while error retained, got %d", count)
	}

	cache.ClearErr("k")
	val, err := cache.Ensure(context.Background(), "k")
	if err != nil {
		t.Fatalf("Ensure() after ClearErr failed: %v", err)
	}
	if val != 7 {
		t.Errorf("Expected 7, got %d", val)
	}
	if count := mock.GetLoadCallCount(); count != 2 {
		t.Errorf("Expected two Loads total, got %d", count)
	}
}

// TestEnsureContextCanceled verifies that a caller stops waiting but the load still completes
func TestEnsureContextCanceled(t *testing.T) {
	release := make(chan struct{})
	done := make(chan struct{})

	mock := NewMockLoader[string, int]()
	mock.LoadFunc = func(ctx context.Context, key string) (int, error) {
		<-release
		if ctx.Err() != nil {
			t.Errorf("load context should not be canceled, got %v", ctx.Err())
		}
		return 42, nil
	}

	cache := NewGenericCache[string, int](mock)
	cache.OnLoad = func(key string, err error) { close(done) }

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := cache.Ensure(ctx, "k"); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}

	close(release)
	<-done

	if val, ok := cache.Get("k"); !ok || val != 42 {
		t.Errorf("Expected k=42 after detached load, got %v, %v", val, ok)
	}
}

// TestClear verifies that Clear drops values and errors
func TestClear(t *testing.T) {
	mock := NewMockLoader[string, int]()
	mock.LoadFunc = func(ctx context.Context, key string) (int, error) {
		if key == "bad" {
			return 0, errors.New("boom")
		}
		return 1, nil
	}

	cache := NewGenericCache[string, int](mock)
	_, _ = cache.Ensure(context.Background(), "good")
	_, _ = cache.Ensure(context.Background(), "bad")

	if len(cache.Keys()) != 1 {
		t.Errorf("Expected one cached key, got %v", cache.Keys())
	}

	cache.Clear()

	if _, ok := cache.Get("good"); ok {
		t.Error("Expected value to be cleared")
	}
	if err := cache.Err("bad"); err != nil {
		t.Errorf("Expected error to be cleared, got %v", err)
	}
}

// TestLoaderFunc verifies the function adapter
func TestLoaderFunc(t *testing.T) {
	type key string
	cache := NewGenericCache[key, string](LoaderFunc[key, string](func(ctx context.Context, k key) (string, error) {
		return "v-" + string(k), nil
	}))

	val, err := cache.Ensure(context.Background(), key("a"))
	if err != nil {
		t.Fatalf("Ensure() failed: %v", err)
	}
	if val != "v-a" {
		t.Errorf("Expected v-a, got %q", val)
	}
}
