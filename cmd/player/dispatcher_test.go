package player

import "testing"

func TestDispatcher_KeyBindings(t *testing.T) {
	e := newTestEngine(t, 10, 10, 10)
	d := NewDispatcher(e)

	if !d.HandleKey('k') {
		t.Fatal("k should not quit")
	}
	if idx := e.Status().Index; idx != 1 {
		t.Errorf("index = %d after k, want 1", idx)
	}

	if !d.HandleKey('j') {
		t.Fatal("j should not quit")
	}
	if idx := e.Status().Index; idx != 0 {
		t.Errorf("index = %d after j, want 0", idx)
	}

	if !d.HandleKey('p') {
		t.Fatal("p should not quit")
	}
	if e.Status().Playing {
		t.Error("p should pause a playing engine")
	}
}

func TestDispatcher_QuitKeys(t *testing.T) {
	e := newTestEngine(t, 10)
	d := NewDispatcher(e)

	for _, key := range []byte{'q', 27, 3} {
		if d.HandleKey(key) {
			t.Errorf("key %d should request quit", key)
		}
	}
}

func TestDispatcher_IgnoresUnknownKeys(t *testing.T) {
	e := newTestEngine(t, 10, 10)
	d := NewDispatcher(e)
	before := e.Status()

	for _, key := range []byte{'a', 'z', ' ', '\n', '1', 0} {
		if !d.HandleKey(key) {
			t.Errorf("key %d should not quit", key)
		}
	}

	after := e.Status()
	if after.Index != before.Index || after.Playing != before.Playing {
		t.Errorf("unknown keys changed state: %+v -> %+v", before, after)
	}
}
