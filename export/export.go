/*
Package export implements the export layer (C5): DOT, JSON, CSV and
N-Triples serializers over graph.Store, all deterministic (ascending id
order) and guarded by a configurable size threshold per §4.5. JSONFiltered
is the one exporter that runs no size check.
*/
package export

import (
	"context"

	cgerrors "github.com/anvanster/codegraph/errors"
	"github.com/anvanster/codegraph/graph"
)

/*
Guardrails bounds how large a graph export may grow before it is warned
about (non-fatal) or refused outright, per §4.5 and config.Options'
ExportSizeWarn/ExportSizeFail.
*/
type Guardrails struct {
	WarnAt int
	FailAt int
}

/*
Result carries a completed export's payload plus whether the warn
threshold was crossed, so callers can surface the warning without
treating it as failure.
*/
type Result struct {
	Data    []byte
	Warning bool
	Size    int
}

func checkSize(size int, g Guardrails) (warn bool, err error) {
	if g.FailAt > 0 && size > g.FailAt {
		return false, cgerrors.New(cgerrors.ErrExportTooLarge, "export has %d entities, exceeds ceiling %d", size, g.FailAt)
	}
	if g.WarnAt > 0 && size > g.WarnAt {
		return true, nil
	}
	return false, nil
}

/*
countEntities returns the node count, used to evaluate guardrails before
any format-specific serialization work runs. Grounded on the original
CodeGraph::check_export_size, which sizes the guardrail off node_count
alone (edge count grows with node count in practice, so one measurement
is enough to catch the graphs export is actually slow on).
*/
func countEntities(ctx context.Context, s *graph.Store) (int, error) {
	n := 0
	if err := s.ScanNodes(ctx, func(*graph.Node) error { n++; return nil }); err != nil {
		return 0, err
	}
	return n, nil
}
