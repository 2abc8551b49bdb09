package schematic

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidBlockState is returned when a block-state string cannot be parsed.
var ErrInvalidBlockState = errors.New("invalid block state")

// Air fills every cell of the schematic that has no block set.
const Air = "minecraft:air"

// Pos is a block position in schematic space.
type Pos struct {
	X, Y, Z int
}

// BlockState is a parsed block identifier such as
// "minecraft:barrel[facing=up]{Items:[]}".
type BlockState struct {
	Name       string            // namespaced id, e.g. "minecraft:barrel"
	Properties map[string]string // may be nil
	Data       string            // SNBT compound including braces, or ""
}

// Key returns the palette key: name plus sorted properties, without data.
func (s BlockState) Key() string {
	props := MakePropsKey(s.Properties)
	if props == "" {
		return s.Name
	}
	return s.Name + "[" + props + "]"
}

func (s BlockState) String() string {
	return s.Key() + s.Data
}

// MakePropsKey deterministically encodes properties as "k1=v1,k2=v2".
func MakePropsKey(props map[string]string) string {
	if len(props) == 0 {
		return ""
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+props[k])
	}
	return strings.Join(parts, ",")
}

// ParseBlockState splits a block-state-with-data string into its name,
// properties and SNBT data. A missing namespace defaults to "minecraft".
func ParseBlockState(s string) (BlockState, error) {
	s = strings.TrimSpace(s)
	end := strings.IndexAny(s, "[{")
	if end < 0 {
		end = len(s)
	}

	var st BlockState
	ns, path := splitBlockID(s[:end])
	if ns == "" || path == "" || strings.ContainsAny(path, " ]}") {
		return st, fmt.Errorf("%w: %q: bad block id", ErrInvalidBlockState, s)
	}
	st.Name = ns + ":" + path
	rest := s[end:]

	if strings.HasPrefix(rest, "[") {
		closing := strings.IndexByte(rest, ']')
		if closing < 0 {
			return st, fmt.Errorf("%w: %q: unterminated properties", ErrInvalidBlockState, s)
		}
		props, err := parseProps(rest[1:closing])
		if err != nil {
			return st, fmt.Errorf("%w: %q: %v", ErrInvalidBlockState, s, err)
		}
		st.Properties = props
		rest = rest[closing+1:]
	}

	if rest != "" {
		if !strings.HasPrefix(rest, "{") || !strings.HasSuffix(rest, "}") {
			return st, fmt.Errorf("%w: %q: trailing %q", ErrInvalidBlockState, s, rest)
		}
		st.Data = rest
	}
	return st, nil
}

func parseProps(raw string) (map[string]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	props := make(map[string]string)
	for _, kv := range strings.Split(raw, ",") {
		k, v, ok := strings.Cut(kv, "=")
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if !ok || k == "" || v == "" {
			return nil, fmt.Errorf("bad property %q", kv)
		}
		props[k] = v
	}
	return props, nil
}

func splitBlockID(blockID string) (namespace, path string) {
	// blockID like "minecraft:oak_fence"
	parts := strings.SplitN(blockID, ":", 2)
	if len(parts) == 1 {
		return "minecraft", parts[0]
	}
	return parts[0], parts[1]
}
