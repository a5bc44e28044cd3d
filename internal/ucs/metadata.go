package ucs

import (
	"google.golang.org/protobuf/types/known/structpb"
)

// FlattenMetadata converts arbitrary JSON-shaped metadata into the wire's
// string map. Non-string leaves (numbers, bools, nested objects, arrays,
// nulls) are dropped silently. This is a documented lossy step, not a bug:
// the wire contract only carries string values, and changing the drop
// behavior is a wire-compatibility break.
func FlattenMetadata(meta map[string]interface{}) map[string]string {
	if len(meta) == 0 {
		return nil
	}
	out := make(map[string]string, len(meta))
	for k, v := range meta {
		val, err := structpb.NewValue(v)
		if err != nil {
			// Unrepresentable value (e.g. a channel). Dropped like any
			// other non-string leaf.
			continue
		}
		if sv, ok := val.GetKind().(*structpb.Value_StringValue); ok {
			out[k] = sv.StringValue
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
