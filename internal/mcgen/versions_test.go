package mcgen

import (
	"testing"
)

func TestParseMinecraftVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    minecraftVersion
		wantErr bool
	}{
		{
			name:    "simple version",
			version: "1.20.1",
			want:    minecraftVersion{major: 1, minor: 20, patch: 1},
			wantErr: false,
		},
		{
			name:    "pre-release version",
			version: "1.21-pre1",
			want:    minecraftVersion{major: 1, minor: 21, patch: 0},
			wantErr: false,
		},
		{
			name:    "two part version",
			version: "1.21",
			want:    minecraftVersion{major: 1, minor: 21, patch: 0},
			wantErr: false,
		},
		{
			name:    "invalid version",
			version: "invalid",
			want:    minecraftVersion{},
			wantErr: true,
		},
		{
			name:    "invalid patch",
			version: "1.20.x",
			want:    minecraftVersion{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMinecraftVersion(tt.version)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseMinecraftVersion() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseMinecraftVersion() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantDV  int32
		wantErr bool
	}{
		{name: "default release", version: DefaultGameVersion, wantDV: 3465},
		{name: "1.21 written short", version: "1.21", wantDV: 3953},
		{name: "1.21.0 equals 1.21", version: "1.21.0", wantDV: 3953},
		{name: "unknown release", version: "1.7.10", wantErr: true},
		{name: "garbage", version: "latest", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveVersion(tt.version)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveVersion(%q) error = %v, wantErr %v", tt.version, err, tt.wantErr)
			}
			if !tt.wantErr && got.DataVersion != tt.wantDV {
				t.Errorf("ResolveVersion(%q).DataVersion = %d, want %d", tt.version, got.DataVersion, tt.wantDV)
			}
		})
	}
}

func TestSupportedVersionsSorted(t *testing.T) {
	vs := SupportedVersions()
	if len(vs) != len(dataVersions) {
		t.Fatalf("got %d versions, want %d", len(vs), len(dataVersions))
	}
	if vs[0] != "1.18.2" {
		t.Errorf("first = %s, want 1.18.2", vs[0])
	}
	if vs[len(vs)-1] != "1.21.4" {
		t.Errorf("last = %s, want 1.21.4", vs[len(vs)-1])
	}
}
