package client

import (
	"encoding/json"
	"fmt"
	"io"
)

// maxResponseSize bounds response body reads. API responses are a few
// kilobytes; the limit only guards against a misbehaving server.
const maxResponseSize int64 = 8 << 20

func decodeResponse(body io.Reader, v any) error {
	data, err := io.ReadAll(io.LimitReader(body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}
	return nil
}

// errorBody reads an error response body for diagnostics. Read errors are
// ignored; a partial body is still useful.
func errorBody(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, maxResponseSize))
	return string(data)
}
