package prettier

import "maps"

// mergeOptions returns a new map holding base overlaid with overrides.
// Overrides win key by key, including zero values such as indentWidth: 0.
// Neither input is modified.
func mergeOptions(base, overrides map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(overrides))
	maps.Copy(out, base)
	maps.Copy(out, overrides)
	return out
}
