package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseCall,
				Kind:   KindRequest,
				Symbol: "createRows",
				Detail: "bind value count mismatch",
			},
			contains: []string{"[call]", "request", "createRows", "bind value count mismatch"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseLoad,
				Kind:  KindAlreadyLoaded,
			},
			contains: []string{"[load]", "already_loaded"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseLink,
				Kind:   KindSymbolMissing,
				Symbol: "fetchRow",
				Cause:  errors.New("undefined symbol"),
			},
			contains: []string{"[link]", "symbol_missing", "fetchRow", "caused by", "undefined symbol"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := LibraryOpen("/opt/teradata/lib/teradatasql.so", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestError_Is(t *testing.T) {
	err := Request("createRows", "malformed request")

	if !errors.Is(err, &Error{Phase: PhaseCall, Kind: KindRequest}) {
		t.Error("expected match on same phase and kind")
	}
	if errors.Is(err, &Error{Phase: PhaseCall, Kind: KindFetch}) {
		t.Error("expected no match on different kind")
	}
	if errors.Is(err, &Error{Phase: PhaseRows, Kind: KindRequest}) {
		t.Error("expected no match on different phase")
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		err   *Error
		phase Phase
		kind  Kind
	}{
		{AlreadyLoaded(), PhaseLoad, KindAlreadyLoaded},
		{LibraryOpen("x", nil), PhaseLoad, KindLibraryOpen},
		{Link("parseParams", nil), PhaseLink, KindSymbolMissing},
		{Param("parseParams", "bad json"), PhaseCall, KindParam},
		{Connection("createConnection", "refused"), PhaseCall, KindConnection},
		{Request("createRows", "syntax"), PhaseCall, KindRequest},
		{Fetch("fetchRow", "invalid handle"), PhaseCall, KindFetch},
		{Cancel("cancelRequest", "nothing in flight"), PhaseCall, KindCancel},
		{Connect("parse params", errors.New("x")), PhaseConnect, KindConnection},
		{Closed("rows"), PhaseRows, KindClosed},
		{InvalidState("fetch before metadata"), PhaseRows, KindInvalidState},
	}

	for _, tt := range tests {
		if tt.err.Phase != tt.phase || tt.err.Kind != tt.kind {
			t.Errorf("%v: got phase=%s kind=%s, want phase=%s kind=%s",
				tt.err, tt.err.Phase, tt.err.Kind, tt.phase, tt.kind)
		}
	}
}
