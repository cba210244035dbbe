//go:build !cgo

package render

import (
	"io"

	gozlib "github.com/4kills/go-zlib"
)

func init() {
	newIconReader = func(r io.Reader) (io.ReadCloser, error) { return gozlib.NewReader(r) }
}
