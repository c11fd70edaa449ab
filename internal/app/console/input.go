package console

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// LineInput reads operator lines from r on a background goroutine so that a
// pending read can be abandoned when ctx is done. It satisfies the tracker's LineReader.
//
// The goroutine lives until r is exhausted; for stdin that is the process lifetime.
type LineInput struct {
	lines chan string
	err   error
}

// NewLineInput starts reading r.
func NewLineInput(r io.Reader) *LineInput {
	in := &LineInput{lines: make(chan string)}
	go in.pump(r)
	return in
}

func (in *LineInput) pump(r io.Reader) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		in.lines <- strings.TrimRight(sc.Text(), "\r")
	}
	in.err = sc.Err()
	if in.err == nil {
		in.err = io.EOF
	}
	close(in.lines)
}

// ReadLine returns the next line without its newline. It returns io.EOF once the
// input is closed and ctx.Err() when ctx is done first.
func (in *LineInput) ReadLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-in.lines:
		if !ok {
			return "", in.err
		}
		return line, nil
	}
}
