package store

import (
	"context"
	"testing"
)

func TestRecord_AssignsIncreasingSeq(t *testing.T) {
	s := createTestStore(t)

	first := recordTest(t, s, Extraction{Raw: "a"})
	second := recordTest(t, s, Extraction{Raw: "b"})
	if first < 1 || second <= first {
		t.Errorf("seq = %d then %d, want increasing from 1", first, second)
	}
}

func TestRecord_IgnoresSeqField(t *testing.T) {
	s := createTestStore(t)

	seq := recordTest(t, s, Extraction{Seq: 99, Raw: "a"})
	if seq == 99 {
		t.Error("Record() used the caller's Seq")
	}
}

func TestRecord_RoundTripsFields(t *testing.T) {
	s := createTestStore(t)
	want := Extraction{
		ID:      "abc123",
		Prompt:  "people older than 30",
		Raw:     "```edn\n[:find ?e]\n```",
		Query:   "[:find ?e]",
		Columns: []string{"?e", "count(?x)", `quote"d`},
		OK:      true,
	}
	want.Seq = recordTest(t, s, want)

	got, err := s.Lookup(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Lookup() failed: %v", err)
	}
	if got.Seq != want.Seq || got.ID != want.ID || got.Prompt != want.Prompt ||
		got.Raw != want.Raw || got.Query != want.Query || got.OK != want.OK || got.Error != want.Error {
		t.Errorf("Lookup() = %+v, want %+v", got, want)
	}
	if len(got.Columns) != len(want.Columns) {
		t.Fatalf("Columns = %q, want %q", got.Columns, want.Columns)
	}
	for i := range want.Columns {
		if got.Columns[i] != want.Columns[i] {
			t.Errorf("Columns[%d] = %q, want %q", i, got.Columns[i], want.Columns[i])
		}
	}
}

func TestRecord_ColumnsStoredAsVector(t *testing.T) {
	s := createTestStore(t)
	recordTest(t, s, Extraction{Raw: "x", Columns: []string{"?a", "?b"}})

	var stored string
	if err := s.db.QueryRow("SELECT columns FROM extractions").Scan(&stored); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if stored != `["?a" "?b"]` {
		t.Errorf("columns = %q, want %q", stored, `["?a" "?b"]`)
	}
}

func TestRecord_CanceledContext(t *testing.T) {
	s := createTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Record(ctx, Extraction{Raw: "x"}); err == nil {
		t.Error("expected error for canceled context, got nil")
	}
}
