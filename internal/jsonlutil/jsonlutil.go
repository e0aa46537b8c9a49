// internal/jsonlutil/jsonlutil.go
package jsonlutil

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"
)

// Pooled 64 KiB buffers shared by JSONL writers.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

// Write encodes each value of list as one JSON line. Errors recognized by
// isBroken (a closed downstream pipe) are dropped.
func Write[T any](out io.Writer, list []T, isBroken func(error) bool) error {
	bw := bwPool.Get().(*bufio.Writer)
	bw.Reset(out)
	defer func() {
		bw.Reset(io.Discard)
		bwPool.Put(bw)
	}()

	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	for _, v := range list {
		if err := enc.Encode(v); err != nil {
			if isBroken(err) {
				return nil
			}
			return err
		}
	}
	if err := bw.Flush(); err != nil && !isBroken(err) {
		return err
	}
	return nil
}
