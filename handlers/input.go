package handlers

import (
	"bufio"
	"context"
	"io"
)

// lineReader scans input on its own goroutine so a pending read never
// delays cancellation.
type lineReader struct {
	lines chan string
	err   error // valid once lines is closed
}

// newLineReader starts scanning in. The goroutine exits at end of input or
// when ctx is done, whichever comes first; a read already blocked in in
// only returns once in yields or is closed.
func newLineReader(ctx context.Context, in io.Reader) *lineReader {
	r := &lineReader{lines: make(chan string)}
	go func() {
		defer close(r.lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case r.lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		r.err = scanner.Err()
	}()
	return r
}

// next returns the next line. The bool is false at end of input, with any
// read error, or once ctx is done, with ctx.Err().
func (r *lineReader) next(ctx context.Context) (string, bool, error) {
	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case line, ok := <-r.lines:
		if !ok {
			return "", false, r.err
		}
		return line, true, nil
	}
}
