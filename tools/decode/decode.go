package decode

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Map decodes a generic map into a struct T using `json` tags, with
// weakly typed input ("1" -> 1 etc.) so sloppy clients still parse.
func Map[T any](m map[string]any) (*T, error) {
	if m == nil {
		return nil, fmt.Errorf("map is nil")
	}
	var out T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           &out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(m); err != nil {
		return nil, err
	}
	return &out, nil
}
