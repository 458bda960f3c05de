package fileinput

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Location names a line in an Input file.
type Location struct {
	Name string
	Line int
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }

// Line is one line of input text, without its line ending, and where it
// came from.
type Line struct {
	Location
	Text string
}

func (il Line) String() string { return fmt.Sprintf("%v %q", il.Location, il.Text) }

// Input reads lines sequentially through a Queue of one or more input
// streams, closing each one that implements io.Closer once exhausted.
type Input struct {
	Queue []io.Reader

	sc   *bufio.Scanner
	cur  io.Reader
	Last Line
}

// ReadLine returns the next line from the current input stream, moving on
// through the Queue as streams run dry. Returns io.EOF once every stream is
// exhausted.
func (in *Input) ReadLine() (Line, error) {
	for {
		if in.sc == nil && !in.nextIn() {
			return Line{}, io.EOF
		}
		if in.sc.Scan() {
			in.Last.Line++
			in.Last.Text = strings.TrimSuffix(in.sc.Text(), "\r")
			return in.Last, nil
		}
		if err := in.sc.Err(); err != nil {
			return Line{}, fmt.Errorf("%v: %w", in.Last.Location, err)
		}
		in.closeCur()
	}
}

// Close closes the current stream and any left in the Queue.
func (in *Input) Close() (err error) {
	in.closeCur()
	for _, r := range in.Queue {
		if cl, ok := r.(io.Closer); ok {
			if cerr := cl.Close(); err == nil {
				err = cerr
			}
		}
	}
	in.Queue = nil
	return err
}

func (in *Input) closeCur() {
	if cl, ok := in.cur.(io.Closer); ok {
		cl.Close()
	}
	in.cur, in.sc = nil, nil
}

func (in *Input) nextIn() bool {
	if len(in.Queue) == 0 {
		return false
	}
	in.cur = in.Queue[0]
	in.Queue = in.Queue[1:]
	in.sc = bufio.NewScanner(in.cur)
	in.Last = Line{Location: Location{Name: nameOf(in.cur)}}
	return true
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
