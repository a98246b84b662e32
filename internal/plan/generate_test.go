package plan

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/crateplan/internal/classify"
	"github.com/specialistvlad/crateplan/internal/config"
	"github.com/specialistvlad/crateplan/internal/reconcile"
	"github.com/specialistvlad/crateplan/internal/semver"
)

func testCatalog() *config.Catalog {
	return &config.Catalog{
		Default: config.OSDefault{Distribution: "ubuntu", Version: "22.04"},
		Images: map[string]*config.Image{
			"ubuntu": {
				Distribution:   "ubuntu",
				DefaultVersion: "22.04",
				Refs: map[string]string{
					"20.04": "docker.io/library/ubuntu:20.04",
					"22.04": "docker.io/library/ubuntu:22.04",
				},
				Versions: []string{"20.04", "22.04"},
			},
		},
	}
}

func mustRange(t *testing.T, raw string) semver.Range {
	t.Helper()
	r, err := semver.ParseRange(raw)
	require.NoError(t, err)
	return r
}

func resolvedSet(t *testing.T, osVersion string, names map[string]string, prereqs ...classify.Edge) *reconcile.Resolved {
	t.Helper()
	out := &reconcile.Resolved{
		OS:       reconcile.OS{Distribution: "ubuntu", Version: osVersion},
		Software: make(map[string]reconcile.Software, len(names)),
		Prereqs:  prereqs,
	}
	for name, constraint := range names {
		out.Software[name] = reconcile.Software{Name: name, Constraint: mustRange(t, constraint)}
	}
	return out
}

func TestGenerate_BaseImageComesFirst(t *testing.T) {
	resolved := resolvedSet(t, "20.04", map[string]string{"numpy": ">=1.20"})

	p, err := Generate(context.Background(), resolved, testCatalog())
	require.NoError(t, err)

	require.NotEmpty(t, p.Steps)
	assert.Equal(t, Step{Step: StepBaseImage, Image: "docker.io/library/ubuntu:20.04"}, p.Steps[0])
	assert.Equal(t, "docker.io/library/ubuntu:20.04", p.BaseImage)
}

func TestGenerate_IndependentInstallsAreLexicographic(t *testing.T) {
	resolved := resolvedSet(t, "22.04", map[string]string{
		"zlib":  "",
		"numpy": ">=1.20",
		"curl":  "",
	})

	p, err := Generate(context.Background(), resolved, testCatalog())
	require.NoError(t, err)

	require.Len(t, p.Steps, 4)
	assert.Equal(t, "curl", p.Steps[1].Name)
	assert.Equal(t, "numpy", p.Steps[2].Name)
	assert.Equal(t, "zlib", p.Steps[3].Name)

	assert.Equal(t, "*", p.Steps[1].Constraint)
	assert.Equal(t, ">=1.20.0", p.Steps[2].Constraint)
}

func TestGenerate_PrerequisitesPrecedeDependents(t *testing.T) {
	// "apputil" sorts before "libfoo" lexicographically, so only the edge
	// can explain libfoo coming first.
	resolved := resolvedSet(t, "22.04",
		map[string]string{"apputil": "", "libfoo": ""},
		classify.Edge{Before: "libfoo", After: "apputil"},
	)

	p, err := Generate(context.Background(), resolved, testCatalog())
	require.NoError(t, err)

	require.Len(t, p.Steps, 3)
	assert.Equal(t, "libfoo", p.Steps[1].Name)
	assert.Equal(t, "apputil", p.Steps[2].Name)
}

func TestGenerate_CycleFailsNamingMembers(t *testing.T) {
	resolved := resolvedSet(t, "22.04",
		map[string]string{"a": "", "b": "", "c": ""},
		classify.Edge{Before: "a", After: "b"},
		classify.Edge{Before: "b", After: "c"},
		classify.Edge{Before: "c", After: "a"},
	)

	_, err := Generate(context.Background(), resolved, testCatalog())
	require.Error(t, err)

	var cyclic *CyclicDependencyError
	require.ErrorAs(t, err, &cyclic)
	assert.Equal(t, "CyclicDependency", cyclic.Kind())
	assert.ElementsMatch(t, []string{"a", "b", "c"}, cyclic.Members)
}

func TestGenerate_UnsupportedBaseOS(t *testing.T) {
	resolved := resolvedSet(t, "", nil)
	resolved.OS = reconcile.OS{Distribution: "arch", Version: ""}

	_, err := Generate(context.Background(), resolved, testCatalog())
	require.Error(t, err)

	var unsupported *UnsupportedBaseOSError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "UnsupportedBaseOS", unsupported.Kind())
	assert.Equal(t, "arch", unsupported.Distribution)
}

func TestGenerate_DefaultVersionWhenUnspecified(t *testing.T) {
	resolved := resolvedSet(t, "", map[string]string{"curl": ""})

	p, err := Generate(context.Background(), resolved, testCatalog())
	require.NoError(t, err)
	assert.Equal(t, "docker.io/library/ubuntu:22.04", p.BaseImage)
}

func TestEncode_IsByteIdenticalAcrossRuns(t *testing.T) {
	build := func() []byte {
		resolved := resolvedSet(t, "20.04", map[string]string{
			"numpy": ">=1.20, <2.0", "scipy": "", "curl": "=8.5.0",
		})
		p, err := Generate(context.Background(), resolved, testCatalog())
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, p.Encode(&buf))
		return buf.Bytes()
	}

	first := build()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, build())
	}
}

func TestEncode_RecordShape(t *testing.T) {
	resolved := resolvedSet(t, "20.04", map[string]string{"numpy": "=1.21.0"})
	p, err := Generate(context.Background(), resolved, testCatalog())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, p.Encode(&buf))

	want := `[
  {
    "step": "base-image",
    "image": "docker.io/library/ubuntu:20.04"
  },
  {
    "step": "install",
    "name": "numpy",
    "constraint": "=1.21.0"
  }
]
`
	assert.Equal(t, want, buf.String())
}
