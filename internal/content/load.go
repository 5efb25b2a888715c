package content

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/lookerci/contentcheck/internal/faults"
)

// DecodeResult decodes a content validation response.
func DecodeResult(r io.Reader) (*ValidationResult, error) {
	var res ValidationResult
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return nil, faults.MalformedInput("decoding content validation result", err)
	}
	return &res, nil
}

// LoadResultFile reads a saved content validation response from disk.
func LoadResultFile(path string) (*ValidationResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening results file: %w", err)
	}
	defer f.Close()
	return DecodeResult(f)
}
