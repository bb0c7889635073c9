package feed

import (
	"errors"
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
)

// Response is the envelope returned by LiveFeed/Get1x2_VZip.
type Response struct {
	Error     string     `json:"Error"`
	ErrorCode int        `json:"ErrorCode"`
	Success   bool       `json:"Success"`
	Value     []RawMatch `json:"Value"`
}

var (
	// ErrUpstream marks a feed response that the bookmaker flagged as failed.
	ErrUpstream = errors.New("feed upstream error")
	// ErrMatchNotFound is returned when no record carries the requested "I".
	ErrMatchNotFound = errors.New("match not found")
)

// numberJSON keeps numbers as json.Number so integer-typed fields stay distinguishable
// from floats ("TS": 120 versus "TS": 120.5).
var numberJSON = jsoniter.Config{
	UseNumber:              true,
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// Decode parses a feed body. Both the envelope form and a bare array are accepted.
func Decode(body []byte) (*Response, error) {
	var resp Response
	if len(body) > 0 && firstNonSpace(body) == '[' {
		if err := numberJSON.Unmarshal(body, &resp.Value); err != nil {
			return nil, fmt.Errorf("unmarshal feed array: %w", err)
		}
		resp.Success = true
		return &resp, nil
	}
	if err := numberJSON.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal feed response: %w", err)
	}
	if !resp.Success && resp.Error != "" {
		return &resp, fmt.Errorf("%w: %s (code: %d)", ErrUpstream, resp.Error, resp.ErrorCode)
	}
	return &resp, nil
}

// Encode serializes records so that Decode reads them back unchanged.
func Encode(records []RawMatch) ([]byte, error) {
	b, err := numberJSON.Marshal(Response{Success: true, Value: records})
	if err != nil {
		return nil, fmt.Errorf("marshal feed records: %w", err)
	}
	return b, nil
}

// LoadFile reads a saved feed response (envelope or bare array) from disk.
func LoadFile(path string) ([]RawMatch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed file: %w", err)
	}
	resp, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return resp.Value, nil
}

func firstNonSpace(b []byte) byte {
	for _, c := range b {
		switch c {
		case ' ', '\n', '\r', '\t':
			continue
		default:
			return c
		}
	}
	return 0
}
