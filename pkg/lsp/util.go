package lsp

import (
	"io"

	"go.uber.org/multierr"
)

// StdioConn joins a reader and a writer, typically stdin and stdout, into
// the single io.ReadWriteCloser the transport needs.
type StdioConn struct {
	io.Reader
	io.Writer
	closers []io.Closer
}

func NewStdioConn(r io.ReadCloser, w io.WriteCloser) *StdioConn {
	return &StdioConn{
		Reader:  r,
		Writer:  w,
		closers: []io.Closer{r, w},
	}
}

// Close closes both ends and reports every failure.
func (c *StdioConn) Close() error {
	var err error
	for _, cl := range c.closers {
		err = multierr.Append(err, cl.Close())
	}
	return err
}
