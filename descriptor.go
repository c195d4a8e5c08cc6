package libcnb

import (
	"path/filepath"

	"github.com/buildpacks/lifecycle/api"

	"github.com/buildpacks/libcnb/internal/tomlfile"
)

// BuildpackDescriptorFile is the name of the descriptor inside the buildpack directory.
const BuildpackDescriptorFile = "buildpack.toml"

// SupportedBuildpackAPI is the only buildpack API version binaries built with this library accept.
var SupportedBuildpackAPI = api.MustParse("0.6")

// GenericMetadata holds buildpack metadata without a schema.
type GenericMetadata = map[string]interface{}

type BuildpackInfo struct {
	ID       string `toml:"id"`
	Name     string `toml:"name,omitempty"`
	Version  string `toml:"version"`
	Homepage string `toml:"homepage,omitempty"`
	ClearEnv bool   `toml:"clear-env,omitempty"`
}

// FullName returns the ID and, when present, the version joined with '@'.
func (b BuildpackInfo) FullName() string {
	if b.Version != "" {
		return b.ID + "@" + b.Version
	}
	return b.ID
}

type BuildpackStack struct {
	ID     string   `toml:"id"`
	Mixins []string `toml:"mixins,omitempty"`
}

// BuildpackDescriptor is the contents of buildpack.toml with metadata decoded into BM.
type BuildpackDescriptor[BM any] struct {
	API      *api.Version     `toml:"api"`
	Info     BuildpackInfo    `toml:"buildpack"`
	Stacks   []BuildpackStack `toml:"stacks,omitempty"`
	Metadata BM               `toml:"metadata"`
}

// DisplayName is the name used for the buildpack in diagnostics.
func (d BuildpackDescriptor[BM]) DisplayName() string {
	if d.Info.Name != "" {
		return d.Info.Name
	}
	return d.Info.FullName()
}

// SupportsAPI reports whether the declared API has the same major and minor version as SupportedBuildpackAPI.
func (d BuildpackDescriptor[BM]) SupportsAPI() bool {
	return d.API != nil && d.API.Equal(SupportedBuildpackAPI)
}

func (d BuildpackDescriptor[BM]) apiString() string {
	if d.API == nil {
		return "<unknown>"
	}
	return d.API.String()
}

// ReadBuildpackDescriptor reads buildpack.toml from buildpackDir.
func ReadBuildpackDescriptor[BM any](buildpackDir string) (BuildpackDescriptor[BM], error) {
	var descriptor BuildpackDescriptor[BM]
	if err := tomlfile.Read(filepath.Join(buildpackDir, BuildpackDescriptorFile), &descriptor); err != nil {
		return BuildpackDescriptor[BM]{}, err
	}
	return descriptor, nil
}
