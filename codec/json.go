package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// Element types persisted through snapshots must round-trip through this
// codec; typical structs, maps, slices and scalars do. Implement Codec and
// pass it via WithCodec for anything JSON cannot express.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the default codec used by the library.
//
// Snapshots are self-describing (they store the codec name in their header),
// so changing the default never breaks loading of existing files.
var Default Codec = JSON{}
