package libcnb

import (
	"path/filepath"
	"strings"
)

// Phase is the lifecycle step a buildpack binary was invoked for.
type Phase string

const (
	PhaseDetect  Phase = "detect"
	PhaseBuild   Phase = "build"
	PhaseTest    Phase = "test"
	PhasePublish Phase = "publish"
)

const specURL = "https://github.com/buildpacks/spec/blob/main/buildpack.md"

type phaseArgs struct {
	count int
	usage string
	docs  string
}

var argsByPhase = map[Phase]phaseArgs{
	PhaseDetect:  {count: 2, usage: "detect <platform_dir> <buildplan>", docs: specURL + "#detection"},
	PhaseBuild:   {count: 3, usage: "build <layers> <platform> <plan>", docs: specURL + "#build"},
	PhaseTest:    {count: 2, usage: "test <layers> <platform>", docs: specURL + "#testing"},
	PhasePublish: {count: 1, usage: "publish <platform>", docs: specURL + "#publishing"},
}

// PhaseFromExecutable returns the phase named by the file name of argv0. Symlinks are not followed: every
// phase is usually a link to the same binary.
func PhaseFromExecutable(argv0 string) (Phase, bool) {
	if argv0 == "" {
		return "", false
	}
	phase := Phase(filepath.Base(argv0))
	_, ok := argsByPhase[phase]
	return phase, ok
}

func quotePhases(phases []Phase, conjunction string) string {
	quoted := make([]string, len(phases))
	for i, p := range phases {
		quoted[i] = "'" + string(p) + "'"
	}

	switch len(quoted) {
	case 0:
		return ""
	case 1:
		return quoted[0]
	case 2:
		return quoted[0] + " " + conjunction + " " + quoted[1]
	default:
		return strings.Join(quoted[:len(quoted)-1], ", ") + ", " + conjunction + " " + quoted[len(quoted)-1]
	}
}
