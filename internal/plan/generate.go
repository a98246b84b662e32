// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package plan

import (
	"context"
	"fmt"

	"github.com/specialistvlad/crateplan/internal/config"
	"github.com/specialistvlad/crateplan/internal/ctxlog"
	"github.com/specialistvlad/crateplan/internal/dag"
	"github.com/specialistvlad/crateplan/internal/reconcile"
)

// Generate converts a reconciled requirement set into an ordered build
// plan. The base-image selection always comes first; install steps follow
// in prerequisite order, with lexicographic order by normalized name as the
// tiebreak among independent requirements. The same input always yields a
// byte-identical plan. Either a complete plan is returned or an error; no
// partial plan is ever produced.
func Generate(ctx context.Context, resolved *reconcile.Resolved, catalog *config.Catalog) (*Plan, error) {
	logger := ctxlog.FromContext(ctx)

	image, ok := catalog.Resolve(resolved.OS.Distribution, resolved.OS.Version)
	if !ok {
		return nil, &UnsupportedBaseOSError{
			Distribution: resolved.OS.Distribution,
			Version:      resolved.OS.Version,
		}
	}

	order, err := installOrder(resolved)
	if err != nil {
		return nil, err
	}

	steps := make([]Step, 0, len(order)+1)
	steps = append(steps, Step{Step: StepBaseImage, Image: image})
	for _, name := range order {
		steps = append(steps, Step{
			Step:       StepInstall,
			Name:       name,
			Constraint: resolved.Software[name].Constraint.String(),
		})
	}

	logger.Debug("Build plan generated.", "base_image", image, "step_count", len(steps))
	return &Plan{BaseImage: image, Steps: steps}, nil
}

// installOrder topologically orders the software requirements along their
// prerequisite edges.
func installOrder(resolved *reconcile.Resolved) ([]string, error) {
	g := dag.New()
	for name := range resolved.Software {
		g.AddNode(name)
	}
	for _, edge := range resolved.Prereqs {
		if err := g.AddEdge(edge.Before, edge.After); err != nil {
			return nil, fmt.Errorf("invalid prerequisite edge %s -> %s: %w", edge.Before, edge.After, err)
		}
	}

	order, err := g.TopoSort()
	if err != nil {
		return nil, &CyclicDependencyError{Members: g.FindCycle()}
	}
	return order, nil
}
