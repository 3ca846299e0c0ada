package elfimage

import (
	"github.com/ZenLiuCN/fn"
	"github.com/spf13/afero"
	"io"
)

// ReadFile reads the whole file at name from fsys. size is the length reported by Stat,
// it may be larger than len(data) when the file ended early.
func ReadFile(fsys afero.Fs, name string) (data []byte, size int64, err error) {
	var f afero.File
	if f, err = fsys.Open(name); err != nil {
		return
	}
	defer fn.IgnoreClose(f)
	fi, err := f.Stat()
	if err != nil {
		return
	}
	size = fi.Size()
	data, err = ReadFull(f, size)
	return
}

// ReadFull reads from r until size bytes arrived, a read returns nothing or r reports io.EOF.
// Reads may come back short, they are accumulated. Any other error aborts.
//
// A source that ends before size is not an error: the returned slice only holds the bytes
// actually read.
func ReadFull(r io.Reader, size int64) ([]byte, error) {
	if size < 0 {
		size = 0
	}
	buf := make([]byte, size)
	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		if n > 0 {
			total += n
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if n == 0 {
			break
		}
	}
	return buf[:total], nil
}
