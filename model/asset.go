// model/asset.go
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SizePreset is one named render size for a site, with optional crop anchors.
type SizePreset struct {
	Name   string   `json:"-"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Crop   []string `json:"crop,omitempty"`
}

// SizeTable holds a site's presets in their stored order. Duplicate
// dimensions are legal; lookups take the earliest defined preset, so the
// decode below must preserve JSON object key order.
type SizeTable []SizePreset

// UnmarshalJSON decodes {"name": {"width":...,"height":...,"crop":[...]}, ...}
// keeping insertion order, which encoding/json's map decoding would lose.
func (t *SizeTable) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("size table: expected JSON object, got %v", tok)
	}

	var table SizeTable
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("size table: expected preset name, got %v", keyTok)
		}

		var preset SizePreset
		if err := dec.Decode(&preset); err != nil {
			return fmt.Errorf("size table: preset %q: %w", name, err)
		}
		preset.Name = name
		table = append(table, preset)
	}

	*t = table
	return nil
}

// StoredObject is one object fetched from the blob store.
type StoredObject struct {
	Body        []byte
	ContentType string
	Metadata    map[string]string
}
