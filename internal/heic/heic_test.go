package heic

import "testing"

func TestToJPEG_InvalidData(t *testing.T) {
	if _, err := ToJPEG([]byte("not heic data")); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestToJPEG_EmptyData(t *testing.T) {
	if _, err := ToJPEG(nil); err == nil {
		t.Fatal("expected error, got nil")
	}
}
