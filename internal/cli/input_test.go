package cli

import (
	"bufio"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan string) (string, bool) {
	t.Helper()
	select {
	case line, ok := <-ch:
		return line, ok
	case <-time.After(2 * time.Second):
		t.Fatal("no line received")
		return "", false
	}
}

func TestLineReaderPromptTakesOneLine(t *testing.T) {
	l := newLineReader(strings.NewReader("y\nf\n"))
	defer l.Close()

	answer, err := bufio.NewReader(l).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "y\n", answer)

	line, ok := receive(t, l.Next())
	assert.True(t, ok)
	assert.Equal(t, "f\n", line)

	_, ok = receive(t, l.Next())
	assert.False(t, ok)
}

func TestLineReaderKeepsLineForNextCaller(t *testing.T) {
	r, w := io.Pipe()
	l := newLineReader(r)

	// the first caller stops waiting before the line arrives
	l.Next()
	go w.Write([]byte("q\n"))

	line, ok := receive(t, l.Next())
	assert.True(t, ok)
	assert.Equal(t, "q\n", line)

	l.Close()
	w.Close()
	_, ok = receive(t, l.lines)
	assert.False(t, ok)
}

func TestLineReaderCloseStopsIdleReader(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	l := newLineReader(r)

	l.Next()
	go w.Write([]byte("b\n"))
	line, ok := receive(t, l.lines)
	require.True(t, ok)
	assert.Equal(t, "b\n", line)

	l.Close()
	_, ok = receive(t, l.lines)
	assert.False(t, ok)
}
