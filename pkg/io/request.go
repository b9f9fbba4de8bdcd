package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/palletizer/pkg/errors"
	"github.com/matzehuels/palletizer/pkg/pipeline"
)

// ReadRequest decodes a packing request from r. Trailing data after the
// request object is rejected. ReadRequest does not close r.
func ReadRequest(r io.Reader) (pipeline.Request, error) {
	var req pipeline.Request
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		return pipeline.Request{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}
	if dec.More() {
		return pipeline.Request{}, errors.New(errors.ErrCodeInvalidInput, "decode request: trailing data after request object")
	}
	return req, nil
}

// ReadRequestFile reads the request stored at path. A path of "-" reads
// standard input.
func ReadRequestFile(path string) (pipeline.Request, error) {
	if path == "-" {
		return ReadRequest(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return pipeline.Request{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadRequest(f)
}
