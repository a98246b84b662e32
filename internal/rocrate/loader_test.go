package rocrate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalCrate = `{
	"@context": "https://w3id.org/ro/crate/1.1/context",
	"@graph": [
		{
			"@id": "ro-crate-metadata.json",
			"@type": "CreativeWork",
			"about": {"@id": "./"},
			"conformsTo": {"@id": "https://w3id.org/ro/crate/1.1"}
		},
		{
			"@id": "./",
			"@type": "Dataset",
			"name": "Minimal crate",
			"hasPart": [{"@id": "data.csv"}]
		},
		{
			"@id": "data.csv",
			"@type": "File",
			"contentSize": 1024
		}
	]
}`

func load(t *testing.T, doc string) (*Graph, []Warning, error) {
	t.Helper()
	return NewLoader().Load(context.Background(), []byte(doc))
}

func TestLoad_MinimalCrate(t *testing.T) {
	g, warnings, err := load(t, minimalCrate)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, "./", g.RootID)
	assert.Equal(t, 3, g.Len())

	root := g.Root()
	require.NotNil(t, root)
	assert.True(t, root.HasType("Dataset"))
	assert.Equal(t, "Minimal crate", root.FirstString("name"))
	assert.Equal(t, []string{"data.csv"}, root.Refs("hasPart"))

	file, ok := g.Entity("data.csv")
	require.True(t, ok)
	assert.Equal(t, "1024", file.FirstString("contentSize"), "numbers render as strings")
}

func TestLoad_ReferencesStaySymbolic(t *testing.T) {
	g, _, err := load(t, minimalCrate)
	require.NoError(t, err)

	descriptor, ok := g.Entity("ro-crate-metadata.json")
	require.True(t, ok)

	about, ok := descriptor.First("about")
	require.True(t, ok)
	assert.True(t, about.IsRef())
	assert.Equal(t, "./", about.Ref)
}

func TestLoad_MalformedDocument(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"invalid json", `{not json`},
		{"root is a list", `[1, 2, 3]`},
		{"missing context", `{"@graph": []}`},
		{"missing graph", `{"@context": "https://w3id.org/ro/crate/1.1/context"}`},
		{"graph is not a list", `{"@context": "c", "@graph": {"@id": "./"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := load(t, tc.doc)
			require.Error(t, err)
			var malformed *MalformedDocumentError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, "MalformedDocument", malformed.Kind())
		})
	}
}

func TestLoad_MissingRootEntity(t *testing.T) {
	t.Run("no descriptor and no conventional root", func(t *testing.T) {
		_, _, err := load(t, `{
			"@context": "c",
			"@graph": [{"@id": "data.csv", "@type": "File"}]
		}`)
		var missing *MissingRootEntityError
		require.ErrorAs(t, err, &missing)
		assert.Empty(t, missing.About)
	})

	t.Run("descriptor points at an absent entity", func(t *testing.T) {
		_, _, err := load(t, `{
			"@context": "c",
			"@graph": [
				{"@id": "ro-crate-metadata.json", "about": {"@id": "./"}}
			]
		}`)
		var missing *MissingRootEntityError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "./", missing.About)
	})

	t.Run("conventional root without descriptor is accepted", func(t *testing.T) {
		g, _, err := load(t, `{
			"@context": "c",
			"@graph": [{"@id": "./", "@type": "Dataset"}]
		}`)
		require.NoError(t, err)
		assert.Equal(t, "./", g.RootID)
	})
}

func TestLoad_DuplicateNodesMerge(t *testing.T) {
	g, _, err := load(t, `{
		"@context": "c",
		"@graph": [
			{"@id": "./", "@type": "Dataset", "name": "first", "license": "MIT"},
			{"@id": "#tool", "@type": "SoftwareApplication"},
			{"@id": "./", "name": "second"}
		]
	}`)
	require.NoError(t, err)

	root := g.Root()
	assert.Equal(t, "second", root.FirstString("name"), "last declared property wins")
	assert.Equal(t, "MIT", root.FirstString("license"), "untouched properties survive the merge")

	// First declaration fixes the order.
	entities := g.Entities()
	require.Len(t, entities, 2)
	assert.Equal(t, "./", entities[0].ID)
	assert.Equal(t, "#tool", entities[1].ID)
}

func TestLoad_NodeWithoutIDIsSkippedWithWarning(t *testing.T) {
	g, warnings, err := load(t, `{
		"@context": "c",
		"@graph": [
			{"@id": "./", "@type": "Dataset"},
			{"@type": "File", "name": "orphan"}
		]
	}`)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Len())
	require.Len(t, warnings, 1)
	assert.Equal(t, "skipped-node", warnings[0].Code)
}

func TestLoad_CyclicReferencesAreRepresentable(t *testing.T) {
	g, _, err := load(t, `{
		"@context": "c",
		"@graph": [
			{"@id": "./", "@type": "Dataset"},
			{"@id": "#a", "@type": "SoftwareApplication", "softwareRequirements": {"@id": "#b"}},
			{"@id": "#b", "@type": "SoftwareApplication", "softwareRequirements": {"@id": "#a"}}
		]
	}`)
	require.NoError(t, err)

	a, _ := g.Entity("#a")
	b, _ := g.Entity("#b")
	assert.Equal(t, []string{"#b"}, a.Refs("softwareRequirements"))
	assert.Equal(t, []string{"#a"}, b.Refs("softwareRequirements"))
}

func TestLoad_TypeListAndNestedValueLists(t *testing.T) {
	g, _, err := load(t, `{
		"@context": "c",
		"@graph": [
			{"@id": "./", "@type": "Dataset"},
			{
				"@id": "#wf",
				"@type": ["File", "SoftwareSourceCode", "ComputationalWorkflow"],
				"input": [["a", "b"], "c"]
			}
		]
	}`)
	require.NoError(t, err)

	wf, ok := g.Entity("#wf")
	require.True(t, ok)
	assert.Equal(t, []string{"File", "SoftwareSourceCode", "ComputationalWorkflow"}, wf.Types)
	assert.Equal(t, []string{"a", "b", "c"}, wf.Strings("input"))
}
