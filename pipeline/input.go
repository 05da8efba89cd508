package pipeline

import (
	"errors"
	"io"
	"strings"

	"github.com/shenwei356/xopen"
)

// OpenInput opens path for reading. "-" is stdin and compressed files
// are decompressed transparently. An empty file yields an empty reader.
func OpenInput(path string) (io.ReadCloser, error) {
	r, err := xopen.Ropen(path)
	if errors.Is(err, xopen.ErrNoContent) {
		return io.NopCloser(strings.NewReader("")), nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ReadFile parses every record in the file at path.
func ReadFile(path string) ([]Record, error) {
	r, err := OpenInput(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return ReadAll(r)
}
