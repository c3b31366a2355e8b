package sink

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmitWritesLine(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)
	require.NoError(t, s.Emit("hello"))
	require.Equal(t, "hello\n", buf.String())
}

func TestEmitDoesNotInterleave(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	block := strings.Repeat("x", 4096)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, s.Emit(block))
		}()
	}
	wg.Wait()

	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		require.Equal(t, block, line)
	}
}
