package drivermock

import (
	"encoding/json"
	"errors"
	"testing"

	bridge "github.com/Teradata/gosqlbridge"
	liberrors "github.com/Teradata/gosqlbridge/errors"
)

func TestCombineJSON(t *testing.T) {
	m := New()

	combined, err := m.CombineJSON(`{"a":1,"shared":"old"}`, `{"b":2,"shared":"new"}`)
	if err != nil {
		t.Fatalf("CombineJSON: %v", err)
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(combined), &obj); err != nil {
		t.Fatalf("combined output is not JSON: %v", err)
	}
	if obj["a"] != float64(1) || obj["b"] != float64(2) {
		t.Errorf("combined = %v", obj)
	}
	if obj["shared"] != "new" {
		t.Errorf("second object must win on key conflict, got %v", obj["shared"])
	}

	if _, err := m.CombineJSON("[]", "{}"); !errors.Is(err, &liberrors.Error{Phase: liberrors.PhaseCall, Kind: liberrors.KindParam}) {
		t.Errorf("non-object input: got %v", err)
	}
}

func TestConnectionLifecycle(t *testing.T) {
	m := New()

	log, err := m.ParseParams(`{"host":"whomooz"}`)
	if err != nil {
		t.Fatalf("ParseParams: %v", err)
	}
	conn, err := m.CreateConnection(log, "", `{"host":"whomooz"}`)
	if err != nil {
		t.Fatalf("CreateConnection: %v", err)
	}
	if m.OpenConnections() != 1 {
		t.Errorf("open connections = %d", m.OpenConnections())
	}

	if err := m.CancelRequest(log, conn); err != nil {
		t.Errorf("CancelRequest on live connection: %v", err)
	}
	if err := m.CloseConnection(log, conn); err != nil {
		t.Fatalf("CloseConnection: %v", err)
	}
	if m.OpenConnections() != 0 {
		t.Errorf("open connections after close = %d", m.OpenConnections())
	}
	if err := m.CloseConnection(log, conn); err == nil {
		t.Error("closing an unknown handle must fail")
	}
}

func TestScriptedResults(t *testing.T) {
	m := New()
	m.Script("select * from t",
		Result{
			Meta: bridge.ResultMeta{ActivityName: "Select", ActivityCount: 2},
			Rows: []string{`[1,"a"]`, `[2,"b"]`},
		},
		Result{
			Meta: bridge.ResultMeta{ActivityName: "Select", ActivityCount: 1},
			Rows: []string{`[3,"c"]`},
		},
	)

	log, _ := m.ParseParams(`{}`)
	conn, _ := m.CreateConnection(log, "", `{}`)
	rows, err := m.CreateRows(log, conn, "select * from t", bridge.NoBindValues)
	if err != nil {
		t.Fatalf("CreateRows: %v", err)
	}

	meta, err := m.ResultMetadata(log, rows)
	if err != nil || meta.ActivityCount != 2 {
		t.Fatalf("first metadata = %+v, err %v", meta, err)
	}
	var fetched []string
	for {
		row, ok, err := m.FetchRow(log, rows)
		if err != nil {
			t.Fatalf("FetchRow: %v", err)
		}
		if !ok {
			break
		}
		fetched = append(fetched, row)
	}
	if len(fetched) != 2 || fetched[0] != `[1,"a"]` || fetched[1] != `[2,"b"]` {
		t.Errorf("first result rows = %v", fetched)
	}

	more, err := m.NextResult(log, rows)
	if err != nil || !more {
		t.Fatalf("expected a second result set, more=%v err=%v", more, err)
	}
	meta, _ = m.ResultMetadata(log, rows)
	if meta.ActivityCount != 1 {
		t.Errorf("second metadata = %+v", meta)
	}
	row, ok, _ := m.FetchRow(log, rows)
	if !ok || row != `[3,"c"]` {
		t.Errorf("second result row = %q ok=%v", row, ok)
	}

	if more, _ := m.NextResult(log, rows); more {
		t.Error("no third result set should exist")
	}
	if err := m.CloseRows(log, rows); err != nil {
		t.Fatalf("CloseRows: %v", err)
	}
	if m.CloseRowsCount(rows) != 1 || m.OpenRows() != 0 {
		t.Errorf("close count = %d, open rows = %d", m.CloseRowsCount(rows), m.OpenRows())
	}
}

func TestUnscriptedRequestYieldsEmptyResult(t *testing.T) {
	m := New()
	log, _ := m.ParseParams(`{}`)
	conn, _ := m.CreateConnection(log, "", `{}`)

	rows, err := m.CreateRows(log, conn, "delete from t", bridge.NoBindValues)
	if err != nil {
		t.Fatalf("CreateRows: %v", err)
	}
	if _, ok, err := m.FetchRow(log, rows); ok || err != nil {
		t.Errorf("empty result: ok=%v err=%v", ok, err)
	}
	if more, _ := m.NextResult(log, rows); more {
		t.Error("empty script must have a single result set")
	}
}

func TestEmptyScriptBehavesLikeUnscripted(t *testing.T) {
	m := New()
	m.Script("select 1")

	log, _ := m.ParseParams(`{}`)
	conn, _ := m.CreateConnection(log, "", `{}`)
	rows, err := m.CreateRows(log, conn, "select 1", bridge.NoBindValues)
	if err != nil {
		t.Fatalf("CreateRows: %v", err)
	}

	meta, err := m.ResultMetadata(log, rows)
	if err != nil {
		t.Fatalf("ResultMetadata: %v", err)
	}
	if meta != (bridge.ResultMeta{}) {
		t.Errorf("meta = %+v, want empty", meta)
	}
	if _, ok, err := m.FetchRow(log, rows); ok || err != nil {
		t.Errorf("empty result: ok=%v err=%v", ok, err)
	}
	if more, _ := m.NextResult(log, rows); more {
		t.Error("empty script must have a single result set")
	}
	if err := m.CloseRows(log, rows); err != nil {
		t.Fatalf("CloseRows: %v", err)
	}
}

func TestFailureInjection(t *testing.T) {
	m := New()
	m.FailWith(bridge.OpCreateRows, "request aborted")

	log, _ := m.ParseParams(`{}`)
	conn, _ := m.CreateConnection(log, "", `{}`)
	_, err := m.CreateRows(log, conn, "select 1", bridge.NoBindValues)
	if err == nil {
		t.Fatal("expected injected failure")
	}
	if !errors.Is(err, &liberrors.Error{Phase: liberrors.PhaseCall, Kind: liberrors.KindRequest}) {
		t.Errorf("injected failure kind: %v", err)
	}

	m.FailWith(bridge.OpCreateRows, "")
	if _, err := m.CreateRows(log, conn, "select 1", bridge.NoBindValues); err != nil {
		t.Errorf("cleared injection still failing: %v", err)
	}
}

func TestCallRecording(t *testing.T) {
	m := New()
	log, _ := m.ParseParams(`{}`)
	conn, _ := m.CreateConnection(log, "", `{}`)
	if _, err := m.CreateRows(log, conn, "select ?", `[[123,"hello"]]`); err != nil {
		t.Fatalf("CreateRows: %v", err)
	}

	calls := m.Calls()
	last := calls[len(calls)-1]
	if last.Op != bridge.OpCreateRows {
		t.Errorf("last op = %q", last.Op)
	}
	if last.RequestText != "select ?" || last.BindValues != `[[123,"hello"]]` {
		t.Errorf("recorded call = %+v, bind values must pass through unmodified", last)
	}
}
