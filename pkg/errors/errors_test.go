// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/dtovl/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "overlay_not_found_error",
			code:    errors.ErrOverlayNotFound,
			message: "no entry for overlay",
			wantStr: "[OVERLAY_NOT_FOUND] no entry for overlay",
		},
		{
			name:    "config_invalid_error",
			code:    errors.ErrConfigInvalid,
			message: "mount point is not a directory",
			wantStr: "[CONFIG_INVALID] mount point is not a directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Message != tt.message {
				t.Errorf("New() message = %q, want %q", err.Message, tt.message)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrMalformedEntry, "entry %q has no sequence number", "foo")
	if err.Message != `entry "foo" has no sequence number` {
		t.Errorf("Newf() message = %q", err.Message)
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("device or resource busy")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrRemovalFailed, "cannot remove 2-b.dtbo")

		if err.Code != errors.ErrRemovalFailed {
			t.Errorf("Wrap() code = %v, want %v", err.Code, errors.ErrRemovalFailed)
		}

		if err.Wrapped != baseErr {
			t.Error("Wrap() should preserve wrapped error")
		}

		wantStr := "[REMOVAL_FAILED] cannot remove 2-b.dtbo: device or resource busy"
		if got := err.Error(); got != wantStr {
			t.Errorf("Error() = %q, want %q", got, wantStr)
		}
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		err := errors.Wrap(nil, errors.ErrInternal, "internal error")
		if err != nil {
			t.Error("Wrap(nil) should return nil")
		}
	})

	t.Run("wrapf_formats_message", func(t *testing.T) {
		err := errors.Wrapf(baseErr, errors.ErrDirCreate, "cannot create %s", "1-a.dtbo")
		if err.Message != "cannot create 1-a.dtbo" {
			t.Errorf("Wrapf() message = %q", err.Message)
		}
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrRejected, "overlay rejected").
		WithDetail("overlay", "b.dtbo").
		WithDetail("status", "unapplied")

	if err.Details["overlay"] != "b.dtbo" {
		t.Errorf("WithDetail() overlay = %v, want %v", err.Details["overlay"], "b.dtbo")
	}

	if err.Details["status"] != "unapplied" {
		t.Errorf("WithDetail() status = %v, want %v", err.Details["status"], "unapplied")
	}
}

func TestWithDetail_ZeroValue(t *testing.T) {
	err := (&errors.DtovlError{Code: errors.ErrNotADirectory}).WithDetail("entry", "3-c.dtbo")

	if err.Details["entry"] != "3-c.dtbo" {
		t.Errorf("WithDetail() entry = %v, want %v", err.Details["entry"], "3-c.dtbo")
	}
}

func TestIsErrorCode_UnknownNeedsDtovlError(t *testing.T) {
	if errors.IsErrorCode(stderrors.New("plain"), errors.ErrUnknown) {
		t.Error("IsErrorCode() should be false for a non-DtovlError")
	}
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrBlobNotFound, "error 1")
	err2 := errors.New(errors.ErrBlobNotFound, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	t.Run("same_code_is_equal", func(t *testing.T) {
		if !err1.Is(err2) {
			t.Error("Is() should return true for same code")
		}
	})

	t.Run("different_code_not_equal", func(t *testing.T) {
		if err1.Is(err3) {
			t.Error("Is() should return false for different codes")
		}
	})

	t.Run("works_with_errors_Is", func(t *testing.T) {
		if !stderrors.Is(err1, err2) {
			t.Error("errors.Is() should work with DtovlError")
		}
	})
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{
			name:     "matching_code",
			err:      errors.New(errors.ErrEntryExists, "exists"),
			code:     errors.ErrEntryExists,
			expected: true,
		},
		{
			name:     "different_code",
			err:      errors.New(errors.ErrEntryExists, "exists"),
			code:     errors.ErrInternal,
			expected: false,
		},
		{
			name:     "wrapped_error",
			err:      errors.Wrap(stderrors.New("base"), errors.ErrFileAccess, "denied"),
			code:     errors.ErrFileAccess,
			expected: true,
		},
		{
			name:     "non_dtovl_error",
			err:      stderrors.New("standard error"),
			code:     errors.ErrEntryExists,
			expected: false,
		},
		{
			name:     "nil_error",
			err:      nil,
			code:     errors.ErrEntryExists,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsErrorCode(tt.err, tt.code); got != tt.expected {
				t.Errorf("IsErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected errors.ErrorCode
	}{
		{
			name:     "dtovl_error",
			err:      errors.New(errors.ErrControlFilesMissing, "missing dtbo"),
			expected: errors.ErrControlFilesMissing,
		},
		{
			name:     "standard_error",
			err:      stderrors.New("standard error"),
			expected: errors.ErrUnknown,
		},
		{
			name:     "nil_error",
			err:      nil,
			expected: errors.ErrUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.GetErrorCode(tt.err); got != tt.expected {
				t.Errorf("GetErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetErrorDetails(t *testing.T) {
	err := errors.New(errors.ErrRejected, "rejected").WithDetail("status", "unapplied")
	details := errors.GetErrorDetails(err)
	if details["status"] != "unapplied" {
		t.Errorf("GetErrorDetails() status = %v", details["status"])
	}
	if errors.GetErrorDetails(stderrors.New("plain")) != nil {
		t.Error("GetErrorDetails() should be nil for non-DtovlError")
	}
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	fileErr := errors.Wrap(rootCause, errors.ErrFileAccess, "cannot read file")
	configErr := errors.Wrap(fileErr, errors.ErrConfigLoad, "failed to load config")

	t.Run("top_level_has_correct_code", func(t *testing.T) {
		if !errors.IsErrorCode(configErr, errors.ErrConfigLoad) {
			t.Error("Top level should have ErrConfigLoad code")
		}
	})

	t.Run("can_find_middle_error", func(t *testing.T) {
		var dtovlErr *errors.DtovlError
		if stderrors.As(configErr.Unwrap(), &dtovlErr) {
			if !errors.IsErrorCode(dtovlErr, errors.ErrFileAccess) {
				t.Error("Middle error should have ErrFileAccess code")
			}
		}
	})

	t.Run("can_find_root_cause", func(t *testing.T) {
		if !stderrors.Is(configErr, rootCause) {
			t.Error("Should find root cause with errors.Is")
		}
	})
}
