package session

import (
	"encoding/json"
	"errors"
	"testing"

	bridge "github.com/Teradata/gosqlbridge"
	"github.com/Teradata/gosqlbridge/drivermock"
	liberrors "github.com/Teradata/gosqlbridge/errors"
)

func connect(t *testing.T, m *drivermock.Mock) *Session {
	t.Helper()
	s, err := Connect(m, `{"host":"whomooz","user":"guest"}`)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	return s
}

func TestConnect_PipelineOrder(t *testing.T) {
	m := drivermock.New()
	s := connect(t, m)
	defer s.Close()

	var ops []string
	for _, c := range m.Calls() {
		ops = append(ops, c.Op)
	}
	want := []string{bridge.OpCombineJSON, bridge.OpParseParams, bridge.OpCreateConnection}
	if len(ops) != len(want) {
		t.Fatalf("ops = %v, want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Fatalf("ops = %v, want %v", ops, want)
		}
	}
}

func TestConnect_ClientMetadata(t *testing.T) {
	m := drivermock.New()
	s := connect(t, m)
	defer s.Close()

	var combine *drivermock.Call
	for _, c := range m.Calls() {
		if c.Op == bridge.OpCombineJSON {
			combine = &c
			break
		}
	}
	if combine == nil {
		t.Fatal("no combine call recorded")
	}

	// The caller's parameters travel as the first argument, the derived
	// metadata as the second.
	if combine.JSON1 != `{"host":"whomooz","user":"guest"}` {
		t.Errorf("first merge argument = %q, want the caller's parameters", combine.JSON1)
	}
	var meta map[string]any
	if err := json.Unmarshal([]byte(combine.JSON2), &meta); err != nil {
		t.Fatalf("second merge argument is not JSON: %v", err)
	}
	if meta["client_kind"] != "U" {
		t.Errorf("client_kind = %v, want U", meta["client_kind"])
	}
	if stack, _ := meta["client_stack"].(string); stack == "" {
		t.Error("client_stack missing from metadata")
	}
}

func TestConnect_StepFailures(t *testing.T) {
	tests := []struct {
		failOp string
	}{
		{bridge.OpCombineJSON},
		{bridge.OpParseParams},
		{bridge.OpCreateConnection},
	}
	for _, tt := range tests {
		t.Run(tt.failOp, func(t *testing.T) {
			m := drivermock.New()
			m.FailWith(tt.failOp, "nope")

			_, err := Connect(m, `{}`)
			if err == nil {
				t.Fatal("expected connect failure")
			}
			if !errors.Is(err, &liberrors.Error{Phase: liberrors.PhaseConnect, Kind: liberrors.KindConnection}) {
				t.Errorf("error = %v, want connect phase", err)
			}
			if m.OpenConnections() != 0 {
				t.Errorf("failed connect leaked %d connections", m.OpenConnections())
			}
		})
	}
}

func TestSessionClose_Idempotent(t *testing.T) {
	m := drivermock.New()
	s := connect(t, m)

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close must be a no-op, got %v", err)
	}
	if m.OpenConnections() != 0 {
		t.Errorf("open connections = %d", m.OpenConnections())
	}

	if _, err := s.Execute("select 1", ""); !errors.Is(err, &liberrors.Error{Phase: liberrors.PhaseRows, Kind: liberrors.KindClosed}) {
		t.Errorf("Execute after Close: %v", err)
	}
	if err := s.Cancel(); !errors.Is(err, &liberrors.Error{Phase: liberrors.PhaseRows, Kind: liberrors.KindClosed}) {
		t.Errorf("Cancel after Close: %v", err)
	}
}

func TestExecute_EmptyBindValues(t *testing.T) {
	m := drivermock.New()
	s := connect(t, m)
	defer s.Close()

	rows, err := s.Execute("select 1", "")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	defer rows.Close()

	calls := m.Calls()
	last := calls[len(calls)-1]
	if last.Op != bridge.OpCreateRows || last.BindValues != bridge.NoBindValues {
		t.Errorf("recorded call = %+v, want the no-bind marker", last)
	}
}

func TestExecute_BindValuePassthrough(t *testing.T) {
	m := drivermock.New()
	s := connect(t, m)
	defer s.Close()

	bind := `[[456,"world"],[789,"foobar"]]`
	rows, err := s.Execute("insert into t values (?, ?)", bind)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	defer rows.Close()

	calls := m.Calls()
	last := calls[len(calls)-1]
	if last.BindValues != bind {
		t.Errorf("bind values arrived as %q, want %q unmodified", last.BindValues, bind)
	}
}

func TestTransactionControl(t *testing.T) {
	tests := []struct {
		name    string
		run     func(s *Session) error
		request string
	}{
		{"commit", (*Session).Commit, "{fn teradata_commit}"},
		{"rollback", (*Session).Rollback, "{fn teradata_rollback}"},
		{"autocommit on", func(s *Session) error { return s.SetAutocommit(true) },
			"{fn teradata_nativesql}{fn teradata_autocommit_on}"},
		{"autocommit off", func(s *Session) error { return s.SetAutocommit(false) },
			"{fn teradata_nativesql}{fn teradata_autocommit_off}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := drivermock.New()
			s := connect(t, m)
			defer s.Close()

			if err := tt.run(s); err != nil {
				t.Fatalf("%s: %v", tt.name, err)
			}

			var created, closed bool
			for _, c := range m.Calls() {
				if c.Op == bridge.OpCreateRows && c.RequestText == tt.request {
					created = true
				}
				if created && c.Op == bridge.OpCloseRows {
					closed = true
				}
			}
			if !created {
				t.Errorf("request %q never submitted", tt.request)
			}
			if !closed {
				t.Error("transaction cursor never released")
			}
			if m.OpenRows() != 0 {
				t.Errorf("open rows = %d", m.OpenRows())
			}
		})
	}
}

func TestCancel(t *testing.T) {
	m := drivermock.New()
	s := connect(t, m)
	defer s.Close()

	if err := s.Cancel(); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	calls := m.Calls()
	if calls[len(calls)-1].Op != bridge.OpCancelRequest {
		t.Errorf("last op = %q", calls[len(calls)-1].Op)
	}
}
