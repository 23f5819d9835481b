package content

import (
	"encoding/json"
	"fmt"
)

// Decode unmarshals a fetched document into v, naming the resource on
// failure.
func Decode(path string, raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return fmt.Errorf("decoding %s: empty document", path)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}
