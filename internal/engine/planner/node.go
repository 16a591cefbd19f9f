package planner

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/adapters/fs"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kiln/internal/adapters/state" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kiln/internal/core/ports"
)

// NodeID is the unique identifier for the planner Graft node.
const NodeID graft.ID = "engine.planner"

func init() {
	graft.Register(graft.Node[*Planner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.CollectorNodeID,
			fs.FingerprinterNodeID,
			fs.StalenessNodeID,
			state.NodeID,
		},
		Run: func(ctx context.Context) (*Planner, error) {
			collector, err := graft.Dep[ports.FileCollector](ctx)
			if err != nil {
				return nil, err
			}

			fingerprinter, err := graft.Dep[ports.Fingerprinter](ctx)
			if err != nil {
				return nil, err
			}

			staleness, err := graft.Dep[ports.StalenessChecker](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.ConfigStore](ctx)
			if err != nil {
				return nil, err
			}

			return New(collector, fingerprinter, staleness, store), nil
		},
	})
}
