package app

import (
	"context"
	"fmt"
	"os"

	"github.com/specialistvlad/crateplan/internal/classify"
	"github.com/specialistvlad/crateplan/internal/ctxlog"
	"github.com/specialistvlad/crateplan/internal/fsutil"
	"github.com/specialistvlad/crateplan/internal/plan"
	"github.com/specialistvlad/crateplan/internal/reconcile"
	"github.com/specialistvlad/crateplan/internal/rocrate"
)

// Run executes the pipeline for one crate: load, classify, reconcile,
// generate, write. Any stage error aborts the run; no partial plan is ever
// written.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	metaPath, err := fsutil.FindCrateMetadata(a.config.CratePath)
	if err != nil {
		return fmt.Errorf("failed to locate crate metadata: %w", err)
	}
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return fmt.Errorf("failed to read crate metadata: %w", err)
	}
	a.logger.Debug("Crate metadata read.", "path", metaPath, "bytes", len(data))

	graph, loadWarnings, err := rocrate.NewLoader().Load(ctx, data)
	if err != nil {
		return err
	}

	cls := classify.Classify(ctx, graph)

	resolved, err := reconcile.Reconcile(ctx, cls, reconcile.Options{
		DefaultDistribution: a.catalog.Default.Distribution,
		DefaultVersion:      a.catalog.Default.Version,
	})
	if err != nil {
		return err
	}

	buildPlan, err := plan.Generate(ctx, resolved, a.catalog)
	if err != nil {
		return err
	}

	var warnings []rocrate.Warning
	warnings = append(warnings, loadWarnings...)
	warnings = append(warnings, cls.Warnings...)
	warnings = append(warnings, resolved.Warnings...)
	for _, w := range warnings {
		a.logger.Warn(w.Message, "code", w.Code, "entity_id", w.EntityID)
	}

	if err := a.writePlan(buildPlan); err != nil {
		return err
	}

	a.logger.Info("Build plan ready.",
		"base_image", buildPlan.BaseImage,
		"step_count", len(buildPlan.Steps),
		"warning_count", len(warnings),
	)
	return nil
}

// writePlan writes the encoded plan to the configured output, standard
// output by default.
func (a *App) writePlan(p *plan.Plan) error {
	if a.config.OutputPath == "" {
		return p.Encode(a.outW)
	}

	f, err := os.Create(a.config.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := p.Encode(f); err != nil {
		return fmt.Errorf("failed to write build plan: %w", err)
	}
	return nil
}
