package hashtable

import "testing"

func TestEncodeDecodePositionRoundTrips(t *testing.T) {
	cases := []location{
		{table: 0, bucket: 0, slot: 0},
		{table: 1, bucket: 0, slot: 0},
		{table: 0, bucket: 12345, slot: elementsPerBucket - 1},
		{table: 1, bucket: 1, slot: 3},
	}
	for _, loc := range cases {
		pos := encodePosition(loc)
		if pos == 0 {
			t.Errorf("encodePosition(%+v) produced the zero Position, which must be reserved as invalid", loc)
		}
		got := decodePosition(pos)
		if got != loc {
			t.Errorf("decodePosition(encodePosition(%+v)) = %+v", loc, got)
		}
	}
}
