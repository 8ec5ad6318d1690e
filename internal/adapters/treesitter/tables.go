package treesitter

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// Category classifies a raw grammar node kind for the walker and builder.
type Category uint8

const (
	CatNone     Category = iota // unmapped: recurse without emitting
	CatFunction                 // emit as function (method when inside a class)
	CatClass                    // emit as class, then look one level down for methods
	CatMethod                   // emit as method regardless of context
	CatName                     // identifier kinds usable as a symbol name
	CatBody                     // body/block kinds; a signature ends where the body starts
	CatComment                  // comment kinds eligible for leading-docstring association
	CatString                   // string kinds eligible for body-docstring association
	CatWrapper                  // transparent wrapper whose span covers the real definition
	CatSkip                     // never descend
)

// DocStyle selects the docstring convention for a language.
type DocStyle uint8

const (
	DocLeadingComment DocStyle = iota // contiguous comment block directly above the node
	DocBodyString                     // first statement of the body is a bare string
	DocNone
)

// ClassTable is the per-language node classification consumed by the shared
// walker and builder. Language behavior lives in data: a new language is a
// new table, not new traversal code.
type ClassTable struct {
	kinds map[string]Category
	doc   DocStyle

	// heuristic enables substring fallback for kinds missing from the map.
	// Only the default table sets it.
	heuristic bool

	// wrapperField names the child field holding the real definition inside
	// a CatWrapper node ("definition" for python decorated_definition).
	wrapperField string

	// classGuard vetoes a CatClass candidate after table lookup, for kinds
	// that are only sometimes type declarations (go type_spec, c struct
	// references without a body).
	classGuard func(n *tree_sitter.Node) bool
}

// Classify maps a node kind to its category.
func (t *ClassTable) Classify(kind string) Category {
	if c, ok := t.kinds[kind]; ok {
		return c
	}
	if !t.heuristic {
		return CatNone
	}
	// Cross-language fallback: kind names that look like declarations.
	declish := strings.Contains(kind, "definition") || strings.Contains(kind, "declaration") ||
		strings.Contains(kind, "specifier") || strings.Contains(kind, "item")
	switch {
	case declish && (strings.Contains(kind, "class") || strings.Contains(kind, "struct") ||
		strings.Contains(kind, "interface") || strings.Contains(kind, "impl")):
		return CatClass
	case declish && (strings.Contains(kind, "function") || strings.Contains(kind, "method")):
		return CatFunction
	}
	return CatNone
}

// DocStyle returns the docstring convention for this table.
func (t *ClassTable) DocStyle() DocStyle { return t.doc }

// allows reports whether a CatClass candidate survives the table's guard.
func (t *ClassTable) allows(n *tree_sitter.Node) bool {
	return t.classGuard == nil || t.classGuard(n)
}

// Kinds shared by every table: names, bodies, comments, strings. Individual
// tables overlay their function/class kinds on top.
var commonKinds = map[string]Category{
	// name children
	"identifier":          CatName,
	"name":                CatName,
	"property_identifier": CatName,
	"type_identifier":     CatName,
	"field_identifier":    CatName,
	"constant":            CatName,
	"word":                CatName,

	// body blocks
	"block":                  CatBody,
	"body":                   CatBody,
	"statement_block":        CatBody,
	"compound_statement":     CatBody,
	"class_body":             CatBody,
	"declaration_list":       CatBody,
	"field_declaration_list": CatBody,
	"function_body":          CatBody,
	"body_statement":         CatBody,
	"enum_body":              CatBody,
	"interface_body":         CatBody,

	// comments
	"comment":               CatComment,
	"line_comment":          CatComment,
	"block_comment":         CatComment,
	"doc_comment":           CatComment,
	"documentation_comment": CatComment,

	// strings (also stops descent into string interiors)
	"string":                    CatString,
	"string_literal":            CatString,
	"raw_string_literal":        CatString,
	"interpreted_string_literal": CatString,
}

func newTable(doc DocStyle, kinds map[string]Category) *ClassTable {
	merged := make(map[string]Category, len(commonKinds)+len(kinds))
	for k, v := range commonKinds {
		merged[k] = v
	}
	for k, v := range kinds {
		merged[k] = v
	}
	return &ClassTable{kinds: merged, doc: doc}
}

// defaultClassTable is the fallback for languages without an explicit table:
// the cross-language declaration kinds plus the substring heuristic.
func defaultClassTable() *ClassTable {
	t := newTable(DocLeadingComment, map[string]Category{
		"function_definition":            CatFunction,
		"function_declaration":           CatFunction,
		"method_definition":              CatFunction,
		"method_declaration":             CatFunction,
		"generator_function_declaration": CatFunction,
		"impl_item":                      CatFunction,
	})
	t.heuristic = true
	return t
}

// hasBodyChild is the class guard for C-family struct/class specifiers:
// a specifier without a body is a reference, not a declaration.
func hasBodyChild(n *tree_sitter.Node) bool {
	return n.ChildByFieldName("body") != nil
}

// goTypeSpecGuard admits only struct and interface type declarations;
// aliases and named basic types are not classes.
func goTypeSpecGuard(n *tree_sitter.Node) bool {
	tn := n.ChildByFieldName("type")
	if tn == nil {
		return false
	}
	k := tn.Kind()
	return k == "struct_type" || k == "interface_type"
}

// classTables maps language identifiers to their classification tables.
// Kind sets follow each grammar's node naming; languages absent here fall
// back to defaultClassTable.
var classTables = map[string]*ClassTable{
	"python": func() *ClassTable {
		t := newTable(DocBodyString, map[string]Category{
			"function_definition":       CatFunction,
			"async_function_definition": CatFunction,
			"class_definition":          CatClass,
			"decorated_definition":      CatWrapper,
		})
		t.wrapperField = "definition"
		return t
	}(),

	"javascript": newTable(DocLeadingComment, map[string]Category{
		"function_declaration":           CatFunction,
		"generator_function_declaration": CatFunction,
		"arrow_function":                 CatFunction,
		"method_definition":              CatMethod,
		"class_declaration":              CatClass,
	}),

	"typescript": newTable(DocLeadingComment, map[string]Category{
		"function_declaration":           CatFunction,
		"generator_function_declaration": CatFunction,
		"method_definition":              CatMethod,
		"class_declaration":              CatClass,
		"abstract_class_declaration":     CatClass,
		"interface_declaration":          CatClass,
	}),

	"go": func() *ClassTable {
		t := newTable(DocLeadingComment, map[string]Category{
			"function_declaration": CatFunction,
			"method_declaration":   CatMethod,
			"type_spec":            CatClass,
		})
		t.classGuard = goTypeSpecGuard
		return t
	}(),

	"rust": newTable(DocLeadingComment, map[string]Category{
		"function_item": CatFunction,
		"struct_item":   CatClass,
		"trait_item":    CatClass,
		"impl_item":     CatClass,
	}),

	"java": newTable(DocLeadingComment, map[string]Category{
		"method_declaration":      CatMethod,
		"constructor_declaration": CatMethod,
		"class_declaration":       CatClass,
		"interface_declaration":   CatClass,
	}),

	"kotlin": newTable(DocLeadingComment, map[string]Category{
		"function_declaration": CatFunction,
		"class_declaration":    CatClass,
		"object_declaration":   CatClass,
	}),

	"php": newTable(DocLeadingComment, map[string]Category{
		"function_definition": CatFunction,
		"method_declaration":  CatMethod,
		"class_declaration":   CatClass,
	}),

	"c": func() *ClassTable {
		t := newTable(DocLeadingComment, map[string]Category{
			"function_definition": CatFunction,
			"struct_specifier":    CatClass,
		})
		t.classGuard = hasBodyChild
		return t
	}(),

	"cpp": func() *ClassTable {
		t := newTable(DocLeadingComment, map[string]Category{
			"function_definition": CatFunction,
			"function_declarator": CatFunction,
			"class_specifier":     CatClass,
			"struct_specifier":    CatClass,
		})
		t.classGuard = hasBodyChild
		return t
	}(),

	"csharp": newTable(DocLeadingComment, map[string]Category{
		"method_declaration":    CatMethod,
		"class_declaration":     CatClass,
		"interface_declaration": CatClass,
	}),

	"ruby": newTable(DocLeadingComment, map[string]Category{
		"method":           CatFunction,
		"singleton_method": CatMethod,
		"class":            CatClass,
		"module":           CatClass,
	}),

	"scala": newTable(DocLeadingComment, map[string]Category{
		"function_definition": CatFunction,
		"method_declaration":  CatMethod,
		"class_definition":    CatClass,
		"object_definition":   CatClass,
		"trait_definition":    CatClass,
	}),

	"swift": newTable(DocLeadingComment, map[string]Category{
		"function_declaration": CatFunction,
		"class_declaration":    CatClass,
		"protocol_declaration": CatClass,
	}),

	"bash": newTable(DocLeadingComment, map[string]Category{
		"function_definition": CatFunction,
	}),

	"lua": newTable(DocLeadingComment, map[string]Category{
		"function_declaration":          CatFunction,
		"function_definition_statement": CatFunction,
	}),

	"haskell": newTable(DocLeadingComment, map[string]Category{
		"function_declaration": CatFunction,
		"function":             CatFunction,
		"data_type":            CatClass,
		"newtype":              CatClass,
	}),

	"objc": newTable(DocLeadingComment, map[string]Category{
		"function_definition": CatFunction,
		"method_definition":   CatMethod,
		"class_declaration":   CatClass,
	}),

	"dart": newTable(DocLeadingComment, map[string]Category{
		"function_signature": CatFunction,
		"class_definition":   CatClass,
	}),

	"verilog": newTable(DocLeadingComment, map[string]Category{
		"function_declaration": CatFunction,
		"task_declaration":     CatFunction,
		"module_declaration":   CatClass,
	}),

	"zig": newTable(DocLeadingComment, map[string]Category{
		"function_declaration": CatFunction,
	}),

	"cuda": func() *ClassTable {
		t := newTable(DocLeadingComment, map[string]Category{
			"function_definition": CatFunction,
			"class_specifier":     CatClass,
			"struct_specifier":    CatClass,
		})
		t.classGuard = hasBodyChild
		return t
	}(),
}

func init() {
	// tsx shares the typescript grammar family and table.
	classTables["tsx"] = classTables["typescript"]
}

// tableFor returns the classification table for a language, falling back to
// the heuristic default.
func tableFor(language string) *ClassTable {
	if t, ok := classTables[language]; ok {
		return t
	}
	return defaultClassTable()
}
