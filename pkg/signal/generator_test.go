package signal

import "testing"

func TestPulse(t *testing.T) {
	out := Pulse(1024, 8192, 64, 128)

	if len(out) != 1024 {
		t.Fatalf("len = %d; want 1024", len(out))
	}
	for i, v := range out {
		want := int16(0)
		if i >= 64 && i < 192 {
			want = 8192
		}
		if v != want {
			t.Fatalf("out[%d] = %d; want %d", i, v, want)
		}
	}
}

func TestPulse_ClampsToBuffer(t *testing.T) {
	out := Pulse(16, 100, 8, 64)
	for i := 8; i < 16; i++ {
		if out[i] != 100 {
			t.Errorf("out[%d] = %d; want 100", i, out[i])
		}
	}
}

func TestSine_KnownPrefix(t *testing.T) {
	out := Sine(1024, 30274, 3135)

	want := []int16{0, 3135, 5792, 7567, 8190, 7566, 5790, 3132}
	for i, w := range want {
		if out[i] != w {
			t.Errorf("out[%d] = %d; want %d", i, out[i], w)
		}
	}

	// Resonator amplitude must stay well inside the 16-bit range over the
	// whole block, otherwise the workload scale factors stop being valid.
	for i, v := range out {
		if v > 9000 || v < -9000 {
			t.Fatalf("out[%d] = %d exceeds expected amplitude envelope", i, v)
		}
	}
}

func TestNoise_KnownPrefix(t *testing.T) {
	out := Noise(1024, 0x1234)

	want := []int16{344, -344, -3604, 1344, 957, -374, -195, -715}
	for i, w := range want {
		if out[i] != w {
			t.Errorf("out[%d] = %d; want %d", i, out[i], w)
		}
	}

	for i, v := range out {
		if v > 4096 || v < -4097 {
			t.Fatalf("out[%d] = %d outside quarter range", i, v)
		}
	}
}

func TestGenerators_Deterministic(t *testing.T) {
	a := Noise(256, 42)
	b := Noise(256, 42)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise diverges at %d: %d vs %d", i, a[i], b[i])
		}
	}

	c := Sine(256, 30274, 3135)
	d := Sine(256, 30274, 3135)
	for i := range c {
		if c[i] != d[i] {
			t.Fatalf("sine diverges at %d: %d vs %d", i, c[i], d[i])
		}
	}
}
