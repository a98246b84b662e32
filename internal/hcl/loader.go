package hcl

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/crateplan/internal/config"
	"github.com/specialistvlad/crateplan/internal/ctxlog"
	"github.com/specialistvlad/crateplan/internal/schema"
)

//go:embed catalog/default.hcl
var defaultCatalog []byte

// Loader loads base-image catalogs from HCL documents.
type Loader struct{}

// NewLoader returns a Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load implements config.Loader. An empty path loads the embedded default
// catalog.
func (l *Loader) Load(ctx context.Context, path string) (*config.Catalog, error) {
	logger := ctxlog.FromContext(ctx)

	src := defaultCatalog
	filename := "catalog/default.hcl (embedded)"
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file: %w", err)
		}
		src = data
		filename = path
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", filename, diags)
	}

	var cfg schema.CatalogConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode catalog %s: %w", filename, diags)
	}

	catalog, err := translate(&cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", filename, err)
	}

	logger.Debug("Base-image catalog loaded.",
		"source", filename,
		"distribution_count", len(catalog.Images),
		"default_os", catalog.Default.Distribution+" "+catalog.Default.Version,
	)
	return catalog, nil
}

// translate converts the HCL-specific schema into the agnostic model,
// evaluating every ref template along the way.
func translate(cfg *schema.CatalogConfig) (*config.Catalog, error) {
	if cfg.DefaultOS == nil {
		return nil, fmt.Errorf("missing required default_os block")
	}
	if len(cfg.Images) == 0 {
		return nil, fmt.Errorf("catalog declares no image blocks")
	}

	out := &config.Catalog{
		Default: config.OSDefault{
			Distribution: strings.ToLower(cfg.DefaultOS.Distribution),
			Version:      cfg.DefaultOS.Version,
		},
		Images: make(map[string]*config.Image, len(cfg.Images)),
	}

	for _, img := range cfg.Images {
		dist := strings.ToLower(img.Distribution)
		if _, exists := out.Images[dist]; exists {
			return nil, fmt.Errorf("duplicate image block for distribution %q", dist)
		}
		if len(img.Versions) == 0 {
			return nil, fmt.Errorf("image %q declares no versions", dist)
		}

		entry := &config.Image{
			Distribution:   dist,
			DefaultVersion: img.DefaultVersion,
			Refs:           make(map[string]string, len(img.Versions)),
			Versions:       img.Versions,
		}
		if entry.DefaultVersion == "" {
			entry.DefaultVersion = img.Versions[len(img.Versions)-1]
		}

		for _, version := range img.Versions {
			ref, err := evalRef(img.Ref, dist, version)
			if err != nil {
				return nil, fmt.Errorf("image %q version %q: %w", dist, version, err)
			}
			entry.Refs[version] = ref
		}
		out.Images[dist] = entry
	}

	if _, ok := out.Images[out.Default.Distribution]; !ok {
		return nil, fmt.Errorf("default_os distribution %q has no image block", out.Default.Distribution)
	}
	if _, ok := out.Images[out.Default.Distribution].Refs[out.Default.Version]; !ok {
		return nil, fmt.Errorf("default_os version %q is not among the versions of %q", out.Default.Version, out.Default.Distribution)
	}
	return out, nil
}

// evalRef evaluates a ref template with the distribution and version in
// scope.
func evalRef(expr hcl.Expression, distribution, version string) (string, error) {
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"distribution": cty.StringVal(distribution),
			"version":      cty.StringVal(version),
		},
	}
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return "", fmt.Errorf("failed to evaluate ref: %w", diags)
	}
	if val.Type() != cty.String {
		return "", fmt.Errorf("ref must evaluate to a string, got %s", val.Type().FriendlyName())
	}
	return val.AsString(), nil
}
