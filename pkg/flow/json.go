package flow

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// MarshalData serializes a flow graph to pretty-printed JSON bytes.
// Node and edge order is preserved: edge order is semantically meaningful
// (the first yes/no branch of a decision is special), so no sorting is done.
func MarshalData(d Data) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeDataTo(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalData deserializes JSON bytes into a flow graph and validates it.
func UnmarshalData(data []byte) (Data, error) {
	return readDataFrom(bytes.NewReader(data))
}

// WriteData writes a flow graph as JSON to an io.Writer.
func WriteData(d Data, w io.Writer) error {
	return writeDataTo(d, w)
}

// ReadData decodes a JSON flow graph from an io.Reader and validates it.
func ReadData(r io.Reader) (Data, error) {
	return readDataFrom(r)
}

// WriteDataFile writes a flow graph to a JSON file created with 0644
// permissions.
func WriteDataFile(d Data, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeDataTo(d, f)
}

// ReadDataFile reads a JSON file and returns the decoded, validated flow graph.
func ReadDataFile(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readDataFrom(f)
}

func writeDataTo(d Data, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readDataFrom(r io.Reader) (Data, error) {
	var d Data
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Data{}, fmt.Errorf("decode: %w", err)
	}
	if err := Validate(d); err != nil {
		return Data{}, err
	}
	return d, nil
}
