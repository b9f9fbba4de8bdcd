package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/palletizer/pkg/pipeline"
)

// WritePlan encodes plan as indented JSON and writes it to w.
func WritePlan(w io.Writer, plan *pipeline.Plan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(plan); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WritePlanFile writes plan to a JSON file at path. A path of "-" writes
// standard output.
func WritePlanFile(plan *pipeline.Plan, path string) error {
	if path == "-" {
		return WritePlan(os.Stdout, plan)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WritePlan(f, plan); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadPlan decodes a plan previously written by [WritePlan].
func ReadPlan(r io.Reader) (*pipeline.Plan, error) {
	var plan pipeline.Plan
	if err := json.NewDecoder(r).Decode(&plan); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &plan, nil
}
