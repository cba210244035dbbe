//go:build cgo

package render

import (
	"io"

	"github.com/DataDog/czlib"
)

func init() {
	newIconReader = func(r io.Reader) (io.ReadCloser, error) { return czlib.NewReader(r) }
}
