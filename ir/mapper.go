package ir

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/anvanster/codegraph/errors"
	"github.com/anvanster/codegraph/graph"
	"github.com/anvanster/codegraph/internal/glog"
	"github.com/anvanster/codegraph/query"
)

/*
Summary is what the mapper returns on success: a run id unique to this
call (for correlating log lines with a caller's own report), the file
node id, the ids created for every entity kind (in IR order), and the
parse duration the caller supplied, for upper-layer reporting (§4.6).
*/
type Summary struct {
	RunID        uuid.UUID
	FileNodeID   uint64
	FunctionIDs  []uint64
	ClassIDs     []uint64
	TraitIDs     []uint64
	ModuleIDs    []uint64
	ParseElapsed time.Duration
}

/*
Mapper translates a FileIR into graph mutations (§4.6). It holds no
per-call state; a single Mapper may be reused across files.
*/
type Mapper struct {
	s *graph.Store
}

/*
New creates a Mapper writing into s.
*/
func New(s *graph.Store) *Mapper {
	return &Mapper{s: s}
}

/*
building accumulates one file's worth of node and edge inputs before a
single BatchAddGraph call commits them all atomically.
*/
type building struct {
	nodes []graph.NodeInput
	edges []graph.GraphEdgeInput
}

func newBuilding() *building {
	return &building{}
}

func (b *building) addNode(kind graph.NodeKind, props *graph.PropertyMap) graph.NodeRef {
	idx := len(b.nodes)
	b.nodes = append(b.nodes, graph.NodeInput{Kind: kind, Props: props})
	return graph.NewNodeRef(idx)
}

func (b *building) addEdge(source, target graph.NodeRef, kind graph.EdgeKind, props *graph.PropertyMap) {
	b.edges = append(b.edges, graph.GraphEdgeInput{Source: source, Target: target, Kind: kind, Props: props})
}

/*
Map applies ir to the store in one atomic batch (§4.6's ordering rule:
node creation before edge creation, all within a single commit). A
failure part-way through leaves the store exactly as it was before the
call - the mapper treats any error as batch-failed (§7).
*/
func (m *Mapper) Map(ctx context.Context, file FileIR, parseElapsed time.Duration) (*Summary, error) {
	runID := uuid.New()
	log := glog.Get("ir")
	b := newBuilding()

	fileRef, err := m.upsertFile(ctx, b, file)
	if err != nil {
		return nil, errors.Wrap(errors.ErrBatchFailed, err, "mapping %s", file.Path)
	}

	funcRefs := make(map[string]graph.NodeRef, len(file.Functions))
	for _, fn := range file.Functions {
		ref := m.addFunctionNode(b, fn)
		b.addEdge(fileRef, ref, graph.EdgeContains, nil)
		funcRefs[fn.Name] = ref
	}

	classRefs := make(map[string]graph.NodeRef, len(file.Classes))
	for _, cls := range file.Classes {
		ref := m.addClassNode(b, cls)
		b.addEdge(fileRef, ref, graph.EdgeContains, nil)
		classRefs[cls.Name] = ref

		for _, method := range cls.Methods {
			mref := m.addFunctionNode(b, method)
			b.addEdge(ref, mref, graph.EdgeContains, nil)
			funcRefs[cls.Name+"."+method.Name] = mref
			if method.Name != "" {
				funcRefs[method.Name] = mref
			}
		}
	}

	traitRefs := make(map[string]graph.NodeRef, len(file.Traits))
	for _, tr := range file.Traits {
		ref := m.addTraitNode(b, tr)
		b.addEdge(fileRef, ref, graph.EdgeContains, nil)
		traitRefs[tr.Name] = ref
	}

	moduleRefs := map[string]graph.NodeRef{}
	for _, mod := range file.Modules {
		ref, err := m.upsertModule(ctx, b, moduleRefs, mod)
		if err != nil {
			return nil, errors.Wrap(errors.ErrBatchFailed, err, "mapping %s", file.Path)
		}
		b.addEdge(fileRef, ref, graph.EdgeContains, nil)
	}

	resolveModule := func(ctx context.Context, name string, external bool) (graph.NodeRef, error) {
		return m.resolveOrCreateModule(ctx, b, moduleRefs, name, external)
	}

	for _, imp := range file.Imports {
		target, err := resolveModule(ctx, imp.Imported, imp.IsExternal)
		if err != nil {
			return nil, errors.Wrap(errors.ErrBatchFailed, err, "mapping %s", file.Path)
		}
		props := graph.NewPropertyMap()
		props.Set("symbols", graph.StringListValue(imp.Symbols))
		props.Set("wildcard", graph.BoolValue(imp.Wildcard))
		if imp.Alias != "" {
			props.Set("alias", graph.StringValue(imp.Alias))
		}
		b.addEdge(fileRef, target, graph.EdgeImports, props)
	}

	resolveFunc := func(name string) graph.NodeRef {
		if ref, ok := funcRefs[name]; ok {
			return ref
		}
		ref := m.addExternalFunctionNode(b, name)
		funcRefs[name] = ref
		return ref
	}

	for _, call := range file.Calls {
		caller := resolveFunc(call.Caller)
		callee := resolveFunc(call.Callee)
		props := graph.NewPropertyMap()
		props.Set("line", graph.Int64Value(int64(call.Line)))
		props.Set("indirect", graph.BoolValue(call.Indirect))
		b.addEdge(caller, callee, graph.EdgeCalls, props)
	}

	resolveTypeNode := func(name string) graph.NodeRef {
		if ref, ok := classRefs[name]; ok {
			return ref
		}
		if ref, ok := traitRefs[name]; ok {
			return ref
		}
		ref := m.addExternalClassNode(b, name)
		classRefs[name] = ref
		return ref
	}

	for _, inh := range file.Inheritances {
		child := resolveTypeNode(inh.Child)
		parent := resolveTypeNode(inh.Parent)
		props := graph.NewPropertyMap()
		props.Set("order", graph.Int64Value(int64(inh.Order)))
		b.addEdge(child, parent, graph.EdgeExtends, props)
	}

	for _, impl := range file.Implementations {
		implementor := resolveTypeNode(impl.Implementor)
		trait := resolveTypeNode(impl.Trait)
		b.addEdge(implementor, trait, graph.EdgeImplements, nil)
	}

	nodeIDs, _, err := m.s.BatchAddGraph(ctx, b.nodes, b.edges)
	if err != nil {
		return nil, errors.Wrap(errors.ErrBatchFailed, err, "mapping %s", file.Path)
	}

	fileNodeID := fileRef.ID
	if fileRef.IsNew {
		fileNodeID = nodeIDs[fileRef.Index]
	}
	summary := &Summary{RunID: runID, FileNodeID: fileNodeID, ParseElapsed: parseElapsed}
	// funcRefs deliberately stores a method under both "Class.method" and
	// "method" so bare-name call resolution works; dedupe by node index
	// before reporting so a method isn't double-counted.
	summary.FunctionIDs = newIDsByIndex(funcRefs, nodeIDs)
	summary.ClassIDs = newIDsByIndex(classRefs, nodeIDs)
	summary.TraitIDs = newIDsByIndex(traitRefs, nodeIDs)
	summary.ModuleIDs = newIDsByIndex(moduleRefs, nodeIDs)

	log.Debug().Str("file", file.Path).Str("run_id", runID.String()).
		Int("functions", len(summary.FunctionIDs)).
		Int("classes", len(summary.ClassIDs)).
		Dur("parse_elapsed", parseElapsed).
		Msg("mapped file IR")

	return summary, nil
}

/*
newIDsByIndex collects the persisted ids of every newly-created ref in
refs, deduplicated by node index (a name map may alias the same node
under multiple keys), in creation order. BatchAddGraph allocates ids in
node-index order, so ascending ids are creation order.
*/
func newIDsByIndex(refs map[string]graph.NodeRef, nodeIDs []uint64) []uint64 {
	seen := map[int]bool{}
	var out []uint64
	for _, ref := range refs {
		if !ref.IsNew || seen[ref.Index] {
			continue
		}
		seen[ref.Index] = true
		out = append(out, nodeIDs[ref.Index])
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

/*
upsertFile finds an existing File node at file.Path, or schedules one
for creation in this batch (§4.6 step 1).
*/
func (m *Mapper) upsertFile(ctx context.Context, b *building, file FileIR) (graph.NodeRef, error) {
	ids, err := query.New(m.s).WhereKind(graph.NodeFile).WhereProperty("path", graph.StringValue(file.Path)).Execute(ctx)
	if err != nil {
		return graph.NodeRef{}, err
	}
	if len(ids) > 0 {
		return graph.ExistingNode(ids[0]), nil
	}

	props := graph.NewPropertyMap()
	props.Set("path", graph.StringValue(file.Path))
	props.Set("language", graph.StringValue(file.Language))
	if file.Module != nil {
		props.Set("name", graph.StringValue(file.Module.Name))
		props.Set("line_count", graph.Int64Value(int64(file.Module.LineCount)))
		props.Set("documentation", graph.StringValue(file.Module.Documentation))
		props.Set("attributes", graph.StringListValue(file.Module.Attributes))
	}
	return b.addNode(graph.NodeFile, props), nil
}

func (m *Mapper) addFunctionNode(b *building, fn FunctionDescriptor) graph.NodeRef {
	props := graph.NewPropertyMap()
	props.Set("name", graph.StringValue(fn.Name))
	props.Set("start_line", graph.Int64Value(int64(fn.StartLine)))
	props.Set("end_line", graph.Int64Value(int64(fn.EndLine)))
	if fn.Signature != "" {
		props.Set("signature", graph.StringValue(fn.Signature))
	}
	if fn.Visibility != "" {
		props.Set("visibility", graph.StringValue(string(fn.Visibility)))
	}
	props.Set("is_async", graph.BoolValue(fn.IsAsync))
	props.Set("is_static", graph.BoolValue(fn.IsStatic))
	props.Set("is_abstract", graph.BoolValue(fn.IsAbstract))
	props.Set("is_test", graph.BoolValue(fn.IsTest))
	if fn.ReturnType != "" {
		props.Set("return_type", graph.StringValue(fn.ReturnType))
	}
	if fn.Documentation != "" {
		props.Set("documentation", graph.StringValue(fn.Documentation))
	}
	if len(fn.Attributes) > 0 {
		props.Set("attributes", graph.StringListValue(fn.Attributes))
	}
	if fn.ParentClass != "" {
		props.Set("parent_class", graph.StringValue(fn.ParentClass))
	}
	if len(fn.Parameters) > 0 {
		encoded := make([]string, len(fn.Parameters))
		for i, p := range fn.Parameters {
			encoded[i] = encodeParameter(p)
		}
		props.Set("parameters", graph.StringListValue(encoded))
	}
	if fn.Complexity != nil {
		props.Set("complexity_grade", graph.StringValue(fn.Complexity.Grade))
		props.Set("complexity_cyclomatic", graph.Int64Value(int64(fn.Complexity.Cyclomatic)))
		props.Set("complexity_cognitive", graph.Int64Value(int64(fn.Complexity.Cognitive)))
	}
	return b.addNode(graph.NodeFunction, props)
}

/*
encodeParameter packs one Parameter's name/type/default into a single
string so it fits a PropertyMap's flat string-list value: "name:Type"
when a type is given, "=default" appended when a default is given.
Decoding is the inverse split on the first ':' and '='.
*/
func encodeParameter(p Parameter) string {
	s := p.Name
	if p.Type != "" {
		s += ":" + p.Type
	}
	if p.Default != "" {
		s += "=" + p.Default
	}
	return s
}

func (m *Mapper) addExternalFunctionNode(b *building, name string) graph.NodeRef {
	props := graph.NewPropertyMap()
	props.Set("name", graph.StringValue(name))
	props.Set("is_external", graph.BoolValue(true))
	return b.addNode(graph.NodeFunction, props)
}

func (m *Mapper) addClassNode(b *building, cls ClassDescriptor) graph.NodeRef {
	kind := graph.NodeClass
	if cls.IsInterface {
		kind = graph.NodeInterface
	}
	props := graph.NewPropertyMap()
	props.Set("name", graph.StringValue(cls.Name))
	props.Set("start_line", graph.Int64Value(int64(cls.StartLine)))
	props.Set("end_line", graph.Int64Value(int64(cls.EndLine)))
	if cls.Visibility != "" {
		props.Set("visibility", graph.StringValue(string(cls.Visibility)))
	}
	props.Set("is_abstract", graph.BoolValue(cls.IsAbstract))
	if len(cls.BaseClasses) > 0 {
		props.Set("base_classes", graph.StringListValue(cls.BaseClasses))
	}
	if len(cls.ImplementedTraits) > 0 {
		props.Set("implemented_traits", graph.StringListValue(cls.ImplementedTraits))
	}
	if len(cls.Fields) > 0 {
		props.Set("fields", graph.StringListValue(cls.Fields))
	}
	if cls.Documentation != "" {
		props.Set("documentation", graph.StringValue(cls.Documentation))
	}
	if len(cls.Attributes) > 0 {
		props.Set("attributes", graph.StringListValue(cls.Attributes))
	}
	if len(cls.TypeParameters) > 0 {
		props.Set("type_parameters", graph.StringListValue(cls.TypeParameters))
	}
	return b.addNode(kind, props)
}

func (m *Mapper) addExternalClassNode(b *building, name string) graph.NodeRef {
	props := graph.NewPropertyMap()
	props.Set("name", graph.StringValue(name))
	props.Set("is_external", graph.BoolValue(true))
	return b.addNode(graph.NodeClass, props)
}

func (m *Mapper) addTraitNode(b *building, tr TraitDescriptor) graph.NodeRef {
	props := graph.NewPropertyMap()
	props.Set("name", graph.StringValue(tr.Name))
	props.Set("start_line", graph.Int64Value(int64(tr.StartLine)))
	props.Set("end_line", graph.Int64Value(int64(tr.EndLine)))
	if tr.Visibility != "" {
		props.Set("visibility", graph.StringValue(string(tr.Visibility)))
	}
	if len(tr.RequiredMethods) > 0 {
		props.Set("required_methods", graph.StringListValue(tr.RequiredMethods))
	}
	if len(tr.ParentTraits) > 0 {
		props.Set("parent_traits", graph.StringListValue(tr.ParentTraits))
	}
	if tr.Documentation != "" {
		props.Set("documentation", graph.StringValue(tr.Documentation))
	}
	return b.addNode(graph.NodeInterface, props)
}

/*
upsertModule finds an existing Module node named mod.Name, or schedules
one for creation carrying the full descriptor (§3's "lists of ...
module descriptors"). Distinct from resolveOrCreateModule, which only
ever has a bare name to go on (an import target) and so can only build
an external placeholder; this is used for module descriptors the
front-end actually parsed out of the file.
*/
func (m *Mapper) upsertModule(ctx context.Context, b *building, cache map[string]graph.NodeRef, mod ModuleDescriptor) (graph.NodeRef, error) {
	if ref, ok := cache[mod.Name]; ok {
		return ref, nil
	}

	ids, err := query.New(m.s).WhereKind(graph.NodeModule).WhereProperty("name", graph.StringValue(mod.Name)).Execute(ctx)
	if err != nil {
		return graph.NodeRef{}, err
	}
	if len(ids) > 0 {
		ref := graph.ExistingNode(ids[0])
		cache[mod.Name] = ref
		return ref, nil
	}

	props := graph.NewPropertyMap()
	props.Set("name", graph.StringValue(mod.Name))
	if mod.Path != "" {
		props.Set("path", graph.StringValue(mod.Path))
	}
	if mod.Language != "" {
		props.Set("language", graph.StringValue(mod.Language))
	}
	props.Set("line_count", graph.Int64Value(int64(mod.LineCount)))
	if mod.Documentation != "" {
		props.Set("documentation", graph.StringValue(mod.Documentation))
	}
	if len(mod.Attributes) > 0 {
		props.Set("attributes", graph.StringListValue(mod.Attributes))
	}
	props.Set("is_external", graph.BoolValue(false))
	ref := b.addNode(graph.NodeModule, props)
	cache[mod.Name] = ref
	return ref, nil
}

/*
resolveOrCreateModule finds an existing Module node named name, or
schedules an external placeholder for creation, flagged is-external
(§4.6 step 4, glossary "External node").
*/
func (m *Mapper) resolveOrCreateModule(ctx context.Context, b *building, cache map[string]graph.NodeRef, name string, external bool) (graph.NodeRef, error) {
	if ref, ok := cache[name]; ok {
		return ref, nil
	}

	ids, err := query.New(m.s).WhereKind(graph.NodeModule).WhereProperty("name", graph.StringValue(name)).Execute(ctx)
	if err != nil {
		return graph.NodeRef{}, err
	}
	if len(ids) > 0 {
		ref := graph.ExistingNode(ids[0])
		cache[name] = ref
		return ref, nil
	}

	props := graph.NewPropertyMap()
	props.Set("name", graph.StringValue(name))
	props.Set("is_external", graph.BoolValue(external))
	ref := b.addNode(graph.NodeModule, props)
	cache[name] = ref
	return ref, nil
}
