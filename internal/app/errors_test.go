package app

import (
	"errors"
	"io/fs"
	"testing"
)

func TestOperationErrorError(t *testing.T) {
	tests := []struct {
		name string
		err  *OperationError
		want string
	}{
		{"nil error", nil, ""},
		{"op only", &OperationError{Op: "watch"}, "watch"},
		{"op and target", &OperationError{Op: "load", Target: "part.json"}, "load part.json"},
		{
			"full chain",
			&OperationError{Op: "load", Target: "part.json", Err: errors.New("io error")},
			"load part.json: io error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOperationErrorUnwrap(t *testing.T) {
	err := NewOperationError("load", "part.json", fs.ErrNotExist)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is should see the wrapped error")
	}

	var opErr *OperationError
	if !errors.As(error(err), &opErr) || opErr.Target != "part.json" {
		t.Errorf("errors.As = %v", opErr)
	}
	if (*OperationError)(nil).Unwrap() != nil {
		t.Error("nil Unwrap should return nil")
	}
}

func TestErrorList(t *testing.T) {
	var list ErrorList
	if list.AsError() != nil {
		t.Fatal("empty list should be nil error")
	}

	list.Add(nil)
	list.Add(ErrNoTerms)
	if list.Len() != 1 || list.Error() != ErrNoTerms.Error() {
		t.Errorf("single error list = %d %q", list.Len(), list.Error())
	}

	list.Add(fs.ErrPermission)
	err := list.AsError()
	if err == nil || err.Error() != "2 errors: first: term set is empty" {
		t.Errorf("AsError() = %v", err)
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Error("errors.Is should search every collected error")
	}
}
