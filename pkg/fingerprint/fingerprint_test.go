package fingerprint

import "testing"

func TestDigest_Deterministic(t *testing.T) {
	a := New()
	a.Add("pmem.index", []byte(`{"0":["p1"]}`))
	a.Add("nvme.index", []byte(`{"0":["n1"]}`))

	b := New()
	b.Add("pmem.index", []byte(`{"0":["p1"]}`))
	b.Add("nvme.index", []byte(`{"0":["n1"]}`))

	if a.Sum() != b.Sum() {
		t.Errorf("same input gave %s and %s", a.Sum(), b.Sum())
	}
	if len(a.Sum()) != 32 {
		t.Errorf("Sum() length = %d, want 32 hex chars", len(a.Sum()))
	}
}

func TestDigest_Sensitive(t *testing.T) {
	base := func() *Digest {
		d := New()
		d.Add("states.index", []byte(`{"S1":["p1_n1"]}`))
		return d
	}

	tests := []struct {
		name string
		d    *Digest
	}{
		{"different content", func() *Digest {
			d := New()
			d.Add("states.index", []byte(`{"S1":["p2_n1"]}`))
			return d
		}()},
		{"different name", func() *Digest {
			d := New()
			d.Add("state.index", []byte(`{"S1":["p1_n1"]}`))
			return d
		}()},
		{"shifted boundary", func() *Digest {
			d := New()
			d.Add("states.index{", []byte(`"S1":["p1_n1"]}`))
			return d
		}()},
	}

	want := base().Sum()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.d.Sum() == want {
				t.Errorf("fingerprint did not change")
			}
		})
	}
}

func TestShort(t *testing.T) {
	if got := Short("0123456789abcdef"); got != "0123456789ab" {
		t.Errorf("Short() = %q", got)
	}
	if got := Short("abc"); got != "abc" {
		t.Errorf("Short() = %q", got)
	}
}
