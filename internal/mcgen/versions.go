package mcgen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/reallyoldfogie/mc-schem-gen/schematic"
)

// DefaultGameVersion is the release the ROM schematic targets unless configured.
const DefaultGameVersion = "1.20.1"

// dataVersions maps Java Edition releases to the DataVersion stored in saves.
var dataVersions = map[minecraftVersion]int32{
	{1, 18, 2}: 2975,
	{1, 19, 2}: 3120,
	{1, 19, 4}: 3337,
	{1, 20, 0}: 3463,
	{1, 20, 1}: 3465,
	{1, 20, 2}: 3578,
	{1, 20, 4}: 3700,
	{1, 20, 6}: 3839,
	{1, 21, 0}: 3953,
	{1, 21, 1}: 3955,
	{1, 21, 4}: 4189,
}

// minecraftVersion represents a parsed Minecraft version for comparison.
type minecraftVersion struct {
	major int
	minor int
	patch int
}

func (v minecraftVersion) String() string {
	if v.patch == 0 {
		return fmt.Sprintf("%d.%d", v.major, v.minor)
	}
	return fmt.Sprintf("%d.%d.%d", v.major, v.minor, v.patch)
}

func (v minecraftVersion) less(o minecraftVersion) bool {
	if v.major != o.major {
		return v.major < o.major
	}
	if v.minor != o.minor {
		return v.minor < o.minor
	}
	return v.patch < o.patch
}

// parseMinecraftVersion parses a version string like "1.20.1" or "1.21-pre1".
func parseMinecraftVersion(version string) (minecraftVersion, error) {
	// Remove pre-release suffix if present
	version = strings.Split(version, "-")[0]

	parts := strings.Split(version, ".")
	if len(parts) < 2 {
		return minecraftVersion{}, fmt.Errorf("invalid version format: %s", version)
	}

	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return minecraftVersion{}, fmt.Errorf("invalid major version: %s", parts[0])
	}

	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return minecraftVersion{}, fmt.Errorf("invalid minor version: %s", parts[1])
	}

	patch := 0
	if len(parts) >= 3 {
		patch, err = strconv.Atoi(parts[2])
		if err != nil {
			return minecraftVersion{}, fmt.Errorf("invalid patch version: %s", parts[2])
		}
	}

	return minecraftVersion{major: major, minor: minor, patch: patch}, nil
}

// SupportedVersions lists the releases ResolveVersion knows, oldest first.
func SupportedVersions() []string {
	vs := make([]minecraftVersion, 0, len(dataVersions))
	for v := range dataVersions {
		vs = append(vs, v)
	}
	sort.Slice(vs, func(i, j int) bool { return vs[i].less(vs[j]) })

	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}
	return out
}

// ResolveVersion returns the schematic version for a game release.
func ResolveVersion(gameVersion string) (schematic.Version, error) {
	v, err := parseMinecraftVersion(gameVersion)
	if err != nil {
		return schematic.Version{}, err
	}
	dv, ok := dataVersions[v]
	if !ok {
		return schematic.Version{}, fmt.Errorf("unsupported game version %s (known: %s)",
			gameVersion, strings.Join(SupportedVersions(), ", "))
	}
	return schematic.Version{Name: v.String(), DataVersion: dv}, nil
}
