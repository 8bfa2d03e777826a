package errors

import (
	"errors"
	"testing"
)

type customError struct {
	Msg string
}

func (e customError) Error() string { return e.Msg }

func TestNew(t *testing.T) {
	err := New("test error")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "test error" {
		t.Errorf("expected 'test error', got '%s'", err.Error())
	}
}

func TestWrap(t *testing.T) {
	baseErr := errors.New("base error")

	t.Run("wrap non-nil error", func(t *testing.T) {
		wrapped := Wrap(baseErr, "wrapped")
		if wrapped == nil {
			t.Fatal("expected wrapped error, got nil")
		}
		expected := "wrapped: base error"
		if wrapped.Error() != expected {
			t.Errorf("expected '%s', got '%s'", expected, wrapped.Error())
		}
		if !errors.Is(wrapped, baseErr) {
			t.Error("expected wrapped error to wrap baseErr")
		}
	})

	t.Run("wrap nil error", func(t *testing.T) {
		if wrapped := Wrap(nil, "wrapped"); wrapped != nil {
			t.Errorf("expected nil, got %v", wrapped)
		}
	})
}

func TestWrapf(t *testing.T) {
	baseErr := errors.New("base error")

	t.Run("wrapf non-nil error", func(t *testing.T) {
		wrapped := Wrapf(baseErr, "wrapped %d", 123)
		expected := "wrapped 123: base error"
		if wrapped.Error() != expected {
			t.Errorf("expected '%s', got '%s'", expected, wrapped.Error())
		}
		if !errors.Is(wrapped, baseErr) {
			t.Error("expected wrapped error to wrap baseErr")
		}
	})

	t.Run("wrapf nil error", func(t *testing.T) {
		if wrapped := Wrapf(nil, "wrapped %d", 1); wrapped != nil {
			t.Errorf("expected nil, got %v", wrapped)
		}
	})
}

func TestJoin(t *testing.T) {
	domainErr := Wrap(ErrUnavailable, "store unavailable")
	cause := customError{Msg: "dial tcp: connection refused"}

	t.Run("matches both chains", func(t *testing.T) {
		joined := Join(domainErr, cause)
		if !Is(joined, ErrUnavailable) {
			t.Error("expected joined error to match ErrUnavailable")
		}
		if !Is(joined, domainErr) {
			t.Error("expected joined error to match the domain error")
		}
		var target customError
		if !As(joined, &target) {
			t.Fatal("expected joined error to expose the cause")
		}
		if target.Msg != cause.Msg {
			t.Errorf("expected '%s', got '%s'", cause.Msg, target.Msg)
		}
	})

	t.Run("nil cause", func(t *testing.T) {
		if joined := Join(domainErr, nil); joined != nil {
			t.Errorf("expected nil, got %v", joined)
		}
	})
}

func TestIs(t *testing.T) {
	wrapped := Wrap(ErrNotFound, "user not found")
	if !Is(wrapped, ErrNotFound) {
		t.Error("expected Is to match ErrNotFound")
	}
	if Is(wrapped, ErrConflict) {
		t.Error("expected Is not to match ErrConflict")
	}
}

func TestAs(t *testing.T) {
	err := Wrap(customError{Msg: "custom"}, "context")

	var target customError
	if !As(err, &target) {
		t.Fatal("expected As to find customError")
	}
	if target.Msg != "custom" {
		t.Errorf("expected 'custom', got '%s'", target.Msg)
	}
}
