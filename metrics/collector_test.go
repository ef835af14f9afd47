package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/kvcore/hashtable"
)

func newTestTable() *hashtable.Table[string, string] {
	typ := hashtable.NewIdentityType[string](func(s string) uint64 {
		var h uint64 = 14695981039346656037
		for i := 0; i < len(s); i++ {
			h ^= uint64(s[i])
			h *= 1099511628211
		}
		return h
	})
	return hashtable.NewTable[string, string](typ, nil)
}

func TestCollectorDescribe(t *testing.T) {
	c := NewCollector("sessions", newTestTable())
	ch := make(chan *prometheus.Desc, 16)
	c.Describe(ch)
	close(ch)
	n := 0
	for range ch {
		n++
	}
	if n != 7 {
		t.Fatalf("expected 7 descriptors, got %d", n)
	}
}

func TestCollectorCollect(t *testing.T) {
	tbl := newTestTable()
	tbl.Add("a")
	tbl.Add("b")
	tbl.Add("c")

	c := NewCollector("sessions", tbl)
	ch := make(chan prometheus.Metric, 16)
	c.Collect(ch)
	close(ch)

	var sawSize bool
	for m := range ch {
		var pb dto.Metric
		if err := m.Write(&pb); err != nil {
			t.Fatalf("Write: %v", err)
		}
		if pb.GetLabel()[0].GetValue() != "sessions" {
			t.Errorf("unexpected label value %q", pb.GetLabel()[0].GetValue())
		}
		if pb.GetGauge() == nil {
			t.Errorf("expected a gauge metric")
		}
		if pb.GetGauge().GetValue() == 3 {
			sawSize = true
		}
	}
	if !sawSize {
		t.Error("expected to observe a size gauge of 3")
	}
}
