package blockalloc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

type point struct {
	X, Y int32
}

func resetGlobal() {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalEng = nil
}

func TestInit_InstallsGlobalEngine(t *testing.T) {
	defer resetGlobal()
	Init(make([]byte, 4096), "BestFit")
	require.NotNil(t, Global())
	require.Equal(t, BestFit, Global().Policy())
}

func TestInit_PanicsOnUnknownPolicy(t *testing.T) {
	defer resetGlobal()
	require.Panics(t, func() { Init(make([]byte, 4096), "NoSuchFit") })
}

func TestGlobalWrappers_PanicBeforeInit(t *testing.T) {
	defer resetGlobal()
	require.Panics(t, func() { Allocate(1) })
	require.Panics(t, func() { Deallocate(nil) })
	require.Panics(t, func() { Validate() })
}

func TestAllocateDeallocate_GlobalRoundTrip(t *testing.T) {
	defer resetGlobal()
	Init(make([]byte, 4096), "")

	p, err := Allocate(128)
	require.NoError(t, err)
	require.NoError(t, Deallocate(p))

	report := Validate()
	require.Equal(t, 1, report.BlockCount)
}

func TestAllocateOrNil_ReturnsNilOnExhaustion(t *testing.T) {
	defer resetGlobal()
	Init(make([]byte, 1024), "")

	for AllocateOrNil(1) != nil {
	}
	require.Nil(t, AllocateOrNil(1))
}

func TestNew_IndependentOfGlobal(t *testing.T) {
	eng := New(make([]byte, 4096), FirstFit)
	require.Nil(t, Global())
	p, err := eng.Allocate(64)
	require.NoError(t, err)
	require.NoError(t, eng.Deallocate(p))
}

func TestPrintAllNodesAndStats_GlobalWrappers(t *testing.T) {
	defer resetGlobal()
	Init(make([]byte, 4096), "")

	var buf bytes.Buffer
	require.NoError(t, PrintAllNodes(&buf))
	require.NotEmpty(t, buf.Bytes())

	stats := Stats()
	require.Equal(t, FirstFit, stats.Policy)
}

func TestAllocateValueAndFreeValue_RoundTrip(t *testing.T) {
	eng := New(make([]byte, 4096), FirstFit)

	p, err := AllocateValue[point](eng)
	require.NoError(t, err)
	p.X, p.Y = 3, 4

	require.NoError(t, FreeValue(eng, p))
}
