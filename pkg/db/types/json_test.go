package dbtypes

import "testing"

func TestStringListScanValue(t *testing.T) {
	var l StringList
	if err := l.Scan(`["a.jpg","b.jpg"]`); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(l) != 2 || l[1] != "b.jpg" {
		t.Fatalf("unexpected list %v", l)
	}
	if err := l.Scan(nil); err != nil || len(l) != 0 {
		t.Fatalf("nil should scan to empty list, got %v err=%v", l, err)
	}
	v, err := StringList(nil).Value()
	if err != nil || v != "[]" {
		t.Fatalf("nil list should encode as [], got %v err=%v", v, err)
	}
	if err := l.Scan(42); err == nil {
		t.Fatalf("expected unsupported type error")
	}
}

func TestJSONMapScanValue(t *testing.T) {
	var m JSONMap
	if err := m.Scan([]byte(`{"theme":"dark"}`)); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if m["theme"] != "dark" {
		t.Fatalf("unexpected map %v", m)
	}
	v, err := JSONMap{"lang": "en"}.Value()
	if err != nil || v != `{"lang":"en"}` {
		t.Fatalf("unexpected value %v err=%v", v, err)
	}
}
