package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/anvanster/codegraph/graph"
)

/*
listDelimiter separates entries of a list-valued property within a
single CSV field, documented in the header comment line every CSV
export begins with.
*/
const listDelimiter = "|"

/*
CSVResult holds the two independent CSV outputs nodes and edges,
each a full document with its own header. The guardrail is checked once
for both, against the node count.
*/
type CSVResult struct {
	Nodes   []byte
	Edges   []byte
	Warning bool
	Size    int
}

/*
CSV renders s as two CSV documents (nodes, edges), each with a fixed
header followed by one record per entity. A node/edge's properties are
flattened into "key=value" cells under a single "properties" column,
joined by ";"; list-valued properties join their own entries with "|"
(§4.5).
*/
func CSV(ctx context.Context, s *graph.Store, g Guardrails) (*CSVResult, error) {
	total, err := countEntities(ctx, s)
	if err != nil {
		return nil, err
	}
	warn, err := checkSize(total, g)
	if err != nil {
		return nil, err
	}

	var nodeBuf, edgeBuf bytes.Buffer
	fmt.Fprintf(&nodeBuf, "# list-valued properties join entries with %q\n", listDelimiter)
	fmt.Fprintf(&edgeBuf, "# list-valued properties join entries with %q\n", listDelimiter)

	nw := csv.NewWriter(&nodeBuf)
	ew := csv.NewWriter(&edgeBuf)

	if err := nw.Write([]string{"id", "kind", "properties"}); err != nil {
		return nil, err
	}
	if err := ew.Write([]string{"id", "source", "target", "kind", "properties"}); err != nil {
		return nil, err
	}

	if err := s.ScanNodes(ctx, func(n *graph.Node) error {
		return nw.Write([]string{
			strconv.FormatUint(n.ID, 10),
			string(n.Kind),
			flattenProperties(n.Props),
		})
	}); err != nil {
		return nil, err
	}

	if err := s.ScanEdges(ctx, func(e *graph.Edge) error {
		return ew.Write([]string{
			strconv.FormatUint(e.ID, 10),
			strconv.FormatUint(e.Source, 10),
			strconv.FormatUint(e.Target, 10),
			string(e.Kind),
			flattenProperties(e.Props),
		})
	}); err != nil {
		return nil, err
	}

	nw.Flush()
	ew.Flush()
	if err := nw.Error(); err != nil {
		return nil, err
	}
	if err := ew.Error(); err != nil {
		return nil, err
	}

	return &CSVResult{Nodes: nodeBuf.Bytes(), Edges: edgeBuf.Bytes(), Warning: warn, Size: total}, nil
}

func flattenProperties(p *graph.PropertyMap) string {
	var cells []string
	for _, k := range p.Keys() {
		v, _ := p.Get(k)
		cells = append(cells, k+"="+scalarToCSV(v))
	}
	return strings.Join(cells, ";")
}

func scalarToCSV(v graph.Value) string {
	switch v.Kind {
	case graph.KindString:
		return v.Str
	case graph.KindInt64:
		return strconv.FormatInt(v.Int, 10)
	case graph.KindFloat64:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case graph.KindBool:
		return strconv.FormatBool(v.Bool)
	case graph.KindStringList:
		return strings.Join(v.StrList, listDelimiter)
	case graph.KindInt64List:
		parts := make([]string, len(v.IntList))
		for i, n := range v.IntList {
			parts[i] = strconv.FormatInt(n, 10)
		}
		return strings.Join(parts, listDelimiter)
	default:
		return ""
	}
}
