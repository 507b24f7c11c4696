package bytechunk

import "testing"

func TestEqualAndLess(t *testing.T) {
	a := FromBytes([]byte("AB"))
	b := FromBytes([]byte("AB"))
	c := FromBytes([]byte("ABA"))
	d := FromBytes([]byte("AC"))

	if !a.Equal(b) {
		t.Error("equal chunks reported unequal")
	}
	if !a.Less(c) {
		t.Error("AB should be less than ABA")
	}
	if !a.Less(d) {
		t.Error("AB should be less than AC")
	}
	if d.Less(a) == true && a.Less(d) == true {
		t.Error("Less must be antisymmetric")
	}
}

func TestHashEqualForEqualContent(t *testing.T) {
	a := FromBytes([]byte("repeated"))
	b := FromBytes([]byte("repeated"))
	if a.Hash() != b.Hash() {
		t.Error("equal chunks must hash equal")
	}
	if a.Key() != b.Key() {
		t.Error("equal chunks must have equal map keys")
	}
}

func TestPushAndAppend(t *testing.T) {
	c := New(0)
	c.PushByte('A')
	c.PushByte('B')
	if c.Len() != 2 || c.Front() != 'A' || c.Back() != 'B' {
		t.Fatalf("unexpected chunk after PushByte: %v", c.Bytes())
	}
	c.Append(FromBytes([]byte("CD")))
	if string(c.Bytes()) != "ABCD" {
		t.Fatalf("Append: got %q, want ABCD", c.Bytes())
	}
}

func TestResize(t *testing.T) {
	c := FromBytes([]byte("ABCDE"))
	c.Resize(2)
	if c.Len() != 2 || string(c.Bytes()) != "AB" {
		t.Fatalf("Resize down: got %q", c.Bytes())
	}
	c.Resize(0)
	if c.Len() != 0 {
		t.Fatalf("Resize to 0: got len %d", c.Len())
	}
}
