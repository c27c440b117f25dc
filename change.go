package animator

// HasChanged reports whether clips no longer matches the snapshot a registry
// was built from. options is the last-known key order (normally
// reg.Names()). The check is O(n) with no side effects, cheap enough to run
// every idle frame:
//
//   - a different key count, or a key differing at any index, is a change;
//   - a bound action whose clip is not the current clip under its key is a
//     change;
//   - a placeholder whose key now holds a clip is a change.
func HasChanged(options []string, clips ClipSource, reg *ActionRegistry) bool {
	keys := clips.Names()
	if len(options) != len(keys) {
		return true
	}
	for i, key := range keys {
		if options[i] != key {
			return true
		}
		current := clips.Clip(key)
		if a := reg.Get(key); a != nil {
			if a.Clip() != current {
				return true
			}
		} else if current != nil {
			return true
		}
	}
	return false
}
