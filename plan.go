package libcnb

// BuildpackPlanEntry is one dependency the lifecycle resolved for this buildpack.
type BuildpackPlanEntry struct {
	Name     string                 `toml:"name"`
	Metadata map[string]interface{} `toml:"metadata,omitempty"`
}

// BuildpackPlan is the document passed to the build phase.
type BuildpackPlan struct {
	Entries []BuildpackPlanEntry `toml:"entries"`
}

// Entry returns the first entry named name.
func (p BuildpackPlan) Entry(name string) (BuildpackPlanEntry, bool) {
	for _, e := range p.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return BuildpackPlanEntry{}, false
}

type BuildPlanProvide struct {
	Name string `toml:"name"`
}

type BuildPlanRequire struct {
	Name     string                 `toml:"name"`
	Metadata map[string]interface{} `toml:"metadata,omitempty"`
}

// BuildPlanOption is an alternative set of provides and requires.
type BuildPlanOption struct {
	Provides []BuildPlanProvide `toml:"provides,omitempty"`
	Requires []BuildPlanRequire `toml:"requires,omitempty"`
}

// BuildPlan is a build plan document a detect function can return with DetectPass. Any value the
// TOML encoder accepts may be used instead.
type BuildPlan struct {
	Provides []BuildPlanProvide `toml:"provides,omitempty"`
	Requires []BuildPlanRequire `toml:"requires,omitempty"`
	Or       []BuildPlanOption  `toml:"or,omitempty"`
}
