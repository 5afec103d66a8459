package cli

import (
	"bufio"
	"io"
	"sync"
)

// lineReader is the single reader of a command's input. Lines are read only
// when asked for, and a line read for a caller that stopped waiting stays
// buffered for the next one.
type lineReader struct {
	in    *bufio.Reader
	start sync.Once
	stop  sync.Once
	want  chan struct{}
	lines chan string
	done  chan struct{}
	buf   []byte
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{
		in:    bufio.NewReader(r),
		want:  make(chan struct{}, 1),
		lines: make(chan string, 1),
		done:  make(chan struct{}),
	}
}

// Next asks for a line and returns the channel it arrives on. The channel is
// closed at end of input.
func (l *lineReader) Next() <-chan string {
	l.start.Do(func() { go l.loop() })
	select {
	case l.want <- struct{}{}:
	default:
	}
	return l.lines
}

// Read serves whole lines, so a bufio.Reader wrapped around it by a prompt
// never takes more than the line it needs.
func (l *lineReader) Read(p []byte) (int, error) {
	if len(l.buf) == 0 {
		line, ok := <-l.Next()
		if !ok {
			return 0, io.EOF
		}
		l.buf = []byte(line)
	}
	n := copy(p, l.buf)
	l.buf = l.buf[n:]
	return n, nil
}

// Close stops the reader. A read already blocked on input ends with it.
func (l *lineReader) Close() {
	l.stop.Do(func() { close(l.done) })
}

func (l *lineReader) loop() {
	defer close(l.lines)
	for {
		select {
		case <-l.want:
		case <-l.done:
			return
		}

		line, err := l.in.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		select {
		case l.lines <- line:
		case <-l.done:
			return
		}
	}
}
