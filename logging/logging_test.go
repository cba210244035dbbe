package logging

import "testing"

func TestGetReturnsUsableLogger(t *testing.T) {
	l := Get()
	if l == nil {
		t.Fatal("Get() returned nil")
	}
	l.Info("logging smoke test")
	if err := Sync(); err != nil {
		t.Errorf("Sync() = %v, want nil", err)
	}
}
