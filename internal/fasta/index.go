package fasta

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/biogo/hts/bgzf"
	"github.com/biogo/hts/fai"
	"go.uber.org/zap"
)

// IndexPath returns the companion .fai path for a FASTA file.
func IndexPath(path string) string { return path + ".fai" }

// loadIndex reads the companion .fai, or builds one by scanning the data
// when it is absent. A .fai older than the data is used with a warning;
// its offsets may be wrong.
func loadIndex(path string, data *os.File, enc encoding, modTime time.Time, size int64, opts Options, log *zap.Logger) (fai.Index, bool, error) {
	faiPath := IndexPath(path)
	info, err := os.Stat(faiPath)
	switch {
	case err == nil:
		if modTime.After(info.ModTime()) {
			log.Warn("stale index",
				zap.String("index", faiPath),
				zap.Time("index_modified", info.ModTime()),
				zap.Time("data_modified", modTime))
		}
		f, err := os.Open(faiPath)
		if err != nil {
			return nil, false, err
		}
		defer f.Close()
		idx, err := fai.ReadFrom(f)
		if err != nil {
			return nil, false, fmt.Errorf("%s: %w", faiPath, err)
		}
		return idx, false, nil
	case !errors.Is(err, fs.ErrNotExist):
		return nil, false, err
	}

	log.Info("building index", zap.String("path", path), zap.Stringer("encoding", enc))
	start := time.Now()
	idx, err := buildIndex(data, enc, size)
	if err != nil {
		return nil, false, fmt.Errorf("%s: index: %w", path, err)
	}
	log.Info("built index",
		zap.String("path", path),
		zap.Int("sequences", len(idx)),
		zap.Duration("elapsed", time.Since(start)))

	if opts.WriteIndex {
		if err := writeIndex(faiPath, idx); err != nil {
			log.Warn("index not written; using in-memory copy",
				zap.String("index", faiPath), zap.Error(err))
			return idx, false, nil
		}
		return idx, true, nil
	}
	return idx, false, nil
}

func buildIndex(data *os.File, enc encoding, size int64) (fai.Index, error) {
	var r io.Reader = io.NewSectionReader(data, 0, size)
	if enc == blocked {
		bg, err := bgzf.NewReader(r, 1)
		if err != nil {
			return nil, err
		}
		defer bg.Close()
		r = bg
	}
	return fai.NewIndex(r)
}

// writeIndex writes idx next to the data through a temporary file so a
// concurrent reader never sees a partial index.
func writeIndex(faiPath string, idx fai.Index) error {
	tmp, err := os.CreateTemp(filepath.Dir(faiPath), "."+filepath.Base(faiPath)+"-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := fai.WriteTo(tmp, idx); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), faiPath)
}
