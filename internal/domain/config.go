// Package domain contains the core data structures shared by the config store
// and the pull request summary.
package domain

// Config is one flat layer of user preferences. Values are primitives:
// string, float64, bool or nil, as decoded from JSON.
type Config map[string]any

// Clone returns a shallow copy of the layer. A nil receiver yields an empty map.
func (c Config) Clone() Config {
	out := make(Config, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Merge returns a new layer holding every key of c overlaid by every key of over.
func (c Config) Merge(over Config) Config {
	out := c.Clone()
	for k, v := range over {
		out[k] = v
	}
	return out
}

// GetString returns the value of key as a string, and whether it was present
// and held a string.
func (c Config) GetString(key string) (string, bool) {
	v, ok := c[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
