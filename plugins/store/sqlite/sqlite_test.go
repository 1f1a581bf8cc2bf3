package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"surfaces/pkg/contract"
	"surfaces/plugins/surface/analytic"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(&Options{Path: filepath.Join(t.TempDir(), "records.db")})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func record(t *testing.T, f contract.Formula) contract.Record {
	t.Helper()
	s, err := analytic.New(f, contract.DefaultDomain(), 2)
	if err != nil {
		t.Fatalf("surface: %v", err)
	}
	return contract.RecordOf(s)
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(&Options{}); !errors.Is(err, contract.ErrInvalidInput) {
		t.Fatalf("expected empty path error, got %v", err)
	}
	if _, err := Open(nil); err == nil {
		t.Fatal("expected nil options error")
	}
}

func TestRoundTripAndOrder(t *testing.T) {
	s := openTempStore(t)
	ctx := context.Background()
	d := contract.DefaultDomain()
	recs := []contract.Record{
		record(t, analytic.Sinusoid{Dom: d, Frecuencia: 0}),
		record(t, analytic.Sphere{Dom: d, Radio: 0.5}),
		record(t, analytic.Sphere{Dom: d, Radio: 0.5}),
	}
	for i, rec := range recs {
		if err := s.Append(ctx, "a", rec); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		got, err := s.LoadAll(ctx, "a")
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if !reflect.DeepEqual(got[len(got)-1], rec) {
			t.Fatalf("last = %#v, want %#v", got[len(got)-1], rec)
		}
	}
	got, _ := s.LoadAll(ctx, "a")
	if !reflect.DeepEqual(got, recs) {
		t.Fatalf("records = %v", got)
	}
	if !got[0].Area.IsInfinite() || !got[0].Volume.IsInfinite() {
		t.Fatalf("infinite sentinel lost")
	}
	other, err := s.LoadAll(ctx, "b")
	if err != nil || other == nil || len(other) != 0 {
		t.Fatalf("other store = %v, %v", other, err)
	}
}

func TestReopenKeepsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.db")
	s, err := Open(&Options{Path: path})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	rec := record(t, analytic.Plane{Dom: contract.DefaultDomain(), Pendiente: -3})
	if err := s.Append(context.Background(), "x", rec); err != nil {
		t.Fatalf("append: %v", err)
	}
	_ = s.Close()

	s2, err := Open(&Options{Path: path})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	got, err := s2.LoadAll(context.Background(), "x")
	if err != nil || len(got) != 1 || !reflect.DeepEqual(got[0], rec) {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestCorruptRow(t *testing.T) {
	s := openTempStore(t)
	if _, err := s.sqlDB.Exec(`INSERT INTO records (store_id, seq, dimensiones, area, volume, created_at) VALUES ('c', 1, '{}', 'abc', '0', 0)`); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := s.LoadAll(context.Background(), "c"); !errors.Is(err, contract.ErrStoreIO) {
		t.Fatalf("expected ErrStoreIO, got %v", err)
	}
}

func TestStoreIDRequired(t *testing.T) {
	s := openTempStore(t)
	if err := s.Append(context.Background(), " ", contract.Record{}); !errors.Is(err, contract.ErrInvalidInput) {
		t.Fatalf("append: %v", err)
	}
	if _, err := s.LoadAll(context.Background(), ""); !errors.Is(err, contract.ErrInvalidInput) {
		t.Fatalf("load: %v", err)
	}
}

func TestExtractUp(t *testing.T) {
	in := "-- +migrate Up\nCREATE X;\n-- +migrate Down\nDROP X;\n"
	if got := extractUp(in); got != "\nCREATE X;\n" {
		t.Fatalf("up = %q", got)
	}
	if got := extractUp("SELECT 1;"); got != "SELECT 1;" {
		t.Fatalf("no markers = %q", got)
	}
}
