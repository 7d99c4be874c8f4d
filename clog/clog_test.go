package clog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	prev := logger
	defer SetLogger(prev)

	rec := &Recorder{}
	SetLogger(rec)
	Infof("registered %d", 3)
	Warningf("collapsed %q", "x")
	Errorf("broken")
	require.Equal(t, []string{"INFO: registered 3", `WARN: collapsed "x"`, "ERROR: broken"}, rec.Lines)
}

func TestVerbosity(t *testing.T) {
	prev := logger
	defer SetLogger(prev)
	defer SetV(0)

	SetLogger(stdlog{})
	SetV(2)
	require.True(t, V(2))
	require.False(t, V(3))
}
