package personalcode

import (
	"testing"
	"time"
)

func FuzzParse(f *testing.F) {
	for _, seed := range []string{
		"37605030299", "50307172740", "38411266610", "35006069515",
		"12345678901", "", "00000000000", "99999999999", "3760503029x",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, in string) {
		c, err := Parse(in)
		if err != nil {
			if IsValid(in) {
				t.Fatalf("IsValid(%q) true but Parse failed: %v", in, err)
			}
			return
		}
		if len(c.String()) != Length {
			t.Fatalf("valid code %q has length %d", in, len(c.String()))
		}
		if seg := c.Segment(); seg < 0 || seg > 9999 {
			t.Fatalf("segment out of range: %d", seg)
		}
		if y := c.BirthDate().Year(); y < 1800 || y > 2199 {
			t.Fatalf("birth year out of range: %d", y)
		}
		if c.BirthDate().Location() != time.UTC {
			t.Fatalf("birth date not in UTC")
		}
	})
}
