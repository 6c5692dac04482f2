/*
Package ir implements the universal intermediate representation (C6):
the per-file structure a front-end populates, and the Mapper that
translates one IR into a single atomic batch of graph mutations.
*/
package ir

/*
Visibility is drawn from the closed set a front-end may report (§3).
*/
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityPrivate   Visibility = "private"
	VisibilityProtected Visibility = "protected"
	VisibilityInternal  Visibility = "internal"
	VisibilityCrate     Visibility = "crate-scoped"
)

/*
Parameter describes one function parameter (§3).
*/
type Parameter struct {
	Name    string
	Type    string
	Default string
}

/*
ComplexityMetrics carries a front-end's cyclomatic/cognitive complexity
assessment for one function; stored verbatim as properties by the
mapper (§4.6 step 7).
*/
type ComplexityMetrics struct {
	Grade      string
	Cyclomatic int
	Cognitive  int
}

/*
FunctionDescriptor describes one function or method (§3, §4.6).
*/
type FunctionDescriptor struct {
	Name        string
	StartLine   int
	EndLine     int
	Signature   string
	Visibility  Visibility
	Parameters  []Parameter
	ReturnType  string
	IsAsync     bool
	IsStatic    bool
	IsAbstract  bool
	IsTest      bool
	Documentation string
	Attributes  []string
	ParentClass string // empty if not a method
	Complexity  *ComplexityMetrics
}

/*
ClassDescriptor describes one class (§3, §4.6).
*/
type ClassDescriptor struct {
	Name               string
	StartLine          int
	EndLine            int
	Visibility         Visibility
	IsAbstract         bool
	IsInterface         bool
	BaseClasses        []string
	ImplementedTraits  []string
	Fields             []string
	Methods            []FunctionDescriptor
	Documentation      string
	Attributes         []string
	TypeParameters     []string
}

/*
TraitDescriptor describes one trait/interface (§3, §4.6).
*/
type TraitDescriptor struct {
	Name            string
	StartLine       int
	EndLine         int
	Visibility      Visibility
	RequiredMethods []string
	ParentTraits    []string
	Documentation   string
}

/*
ModuleDescriptor describes a module reference encountered within the
file (distinct from the file's own module/file descriptor, which is
carried by FileIR.Module when the file itself is the module unit).
*/
type ModuleDescriptor struct {
	Path          string
	Language      string
	Name          string
	LineCount     int
	Documentation string
	Attributes    []string
}

/*
CallRelationship describes one call site (§3, §4.6).
*/
type CallRelationship struct {
	Caller   string
	Callee   string
	Line     int
	Indirect bool
}

/*
ImportRelationship describes one import statement (§3, §4.6).
*/
type ImportRelationship struct {
	Importer   string
	Imported   string
	Symbols    []string
	Wildcard   bool
	Alias      string
	IsExternal bool
}

/*
InheritanceRelationship describes one base-class link (§3, §4.6).
*/
type InheritanceRelationship struct {
	Child string
	Parent string
	Order int
}

/*
ImplementationRelationship describes one trait/interface implementation
(§3, §4.6).
*/
type ImplementationRelationship struct {
	Implementor string
	Trait       string
}

/*
FileIR is the per-file structure a front-end populates and hands to the
Mapper. The IR is moved into the mapper; front-ends must not mutate it
afterwards (§6.1).
*/
type FileIR struct {
	Path     string
	Language string

	Module *ModuleDescriptor

	Functions []FunctionDescriptor
	Classes   []ClassDescriptor
	Traits    []TraitDescriptor
	Modules   []ModuleDescriptor

	Calls           []CallRelationship
	Imports         []ImportRelationship
	Inheritances    []InheritanceRelationship
	Implementations []ImplementationRelationship
}
