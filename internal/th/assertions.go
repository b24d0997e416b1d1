// Package th provides basic test helpers.
package th

import (
	"errors"
	"math"
	"testing"
	"time"

	"golang.org/x/exp/constraints"
)

func ExpectValue[A comparable](t *testing.T, actual A, expected A) {
	t.Helper()
	if expected != actual {
		t.Errorf("expected %v, got %v", expected, actual)
	}
}

// ExpectClose checks that actual is within tol of expected.
func ExpectClose[A constraints.Float](t *testing.T, actual A, expected A, tol A) {
	t.Helper()
	if math.IsNaN(float64(actual)) || math.Abs(float64(actual-expected)) > float64(tol) {
		t.Errorf("expected %v ± %v, got %v", expected, tol, actual)
	}
}

// ExpectBetween checks that lo <= actual <= hi.
func ExpectBetween[A constraints.Integer | constraints.Float](t *testing.T, actual A, lo, hi A) {
	t.Helper()
	if actual < lo || actual > hi {
		t.Errorf("expected value in [%v, %v], got %v", lo, hi, actual)
	}
}

func ExpectError(t *testing.T, err error, message string) {
	t.Helper()
	if err == nil {
		t.Errorf("expected error '%s', got nil", message)
		return
	}

	if err.Error() != message {
		t.Errorf("expected error '%s', got '%s'", message, err.Error())
	}
}

// ExpectErrorIs checks that err wraps target.
func ExpectErrorIs(t *testing.T, err error, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Errorf("expected error '%v', got '%v'", target, err)
	}
}

func ExpectNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Errorf("unexpected error '%v'", err)
	}
}

func ExpectNotHang(t *testing.T, waitFor time.Duration, f func()) {
	t.Helper()
	done := make(chan struct{})

	go func() {
		defer close(done)
		f()
	}()

	select {
	case <-done:
	case <-time.After(waitFor):
		t.Errorf("test hanged")
	}
}

func ExpectClosedChan[A any](t *testing.T, ch <-chan A, waitFor time.Duration) {
	t.Helper()
	select {
	case x, ok := <-ch:
		if ok {
			t.Errorf("expected channel to be closed, but got %v", x)
		}
	case <-time.After(waitFor):
		t.Errorf("channel was not closed after %v", waitFor)
	}
}
