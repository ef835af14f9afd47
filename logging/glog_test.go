package logging

import (
	"bytes"
	"strings"
	"testing"

	aglog "github.com/aristanetworks/glog"
)

func TestGlogImplementsLogger(t *testing.T) {
	var _ Logger = (*Glog)(nil)
}

func TestGlogInfoRespectsLevel(t *testing.T) {
	b := &bytes.Buffer{}
	aglog.SetOutput(b)

	g := &Glog{InfoLevel: 2}
	g.Infof("quiet %d", 1)
	if strings.Contains(b.String(), "quiet 1") {
		t.Fatalf("expected Infof at a higher level than the default glog.V() threshold to be suppressed")
	}
}

func TestGlogErrorAlwaysLogs(t *testing.T) {
	b := &bytes.Buffer{}
	aglog.SetOutput(b)

	g := &Glog{}
	g.Errorf("boom %d", 1)
	if !strings.Contains(b.String(), "boom 1") {
		t.Fatalf("expected Errorf to always log regardless of InfoLevel")
	}
}
