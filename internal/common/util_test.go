package common

import (
	"bytes"
	"testing"
)

// ---------- GenerateRandByteArray ----------

func TestGenerateRandByteArray_Basic(t *testing.T) {
	const n = 32
	buf := GenerateRandByteArray(n)
	if len(buf) != n {
		t.Fatalf("expected %d bytes, got %d", n, len(buf))
	}
}

func TestGenerateRandByteArray_ZeroSize(t *testing.T) {
	buf := GenerateRandByteArray(0)
	if len(buf) != 0 {
		t.Fatalf("expected empty slice for size=0, got %d bytes", len(buf))
	}
}

func TestGenerateRandByteArray_EntropyHint(t *testing.T) {
	a := GenerateRandByteArray(32)
	b := GenerateRandByteArray(32)
	if bytes.Equal(a, b) {
		t.Fatalf("two random arrays are identical; extremely unlikely")
	}
}

// ---------- WipeByteArray ----------

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilIsNoop(t *testing.T) {
	WipeByteArray(nil)
}
