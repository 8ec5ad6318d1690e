package treesitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_ExplicitTables(t *testing.T) {
	py := tableFor("python")
	assert.Equal(t, CatFunction, py.Classify("function_definition"))
	assert.Equal(t, CatClass, py.Classify("class_definition"))
	assert.Equal(t, CatWrapper, py.Classify("decorated_definition"))
	assert.Equal(t, CatComment, py.Classify("comment"))
	assert.Equal(t, CatString, py.Classify("string"))
	assert.Equal(t, CatNone, py.Classify("import_statement"))
	assert.Equal(t, DocBodyString, py.DocStyle())

	goTable := tableFor("go")
	assert.Equal(t, CatFunction, goTable.Classify("function_declaration"))
	assert.Equal(t, CatMethod, goTable.Classify("method_declaration"))
	assert.Equal(t, CatClass, goTable.Classify("type_spec"))
	assert.Equal(t, DocLeadingComment, goTable.DocStyle())
}

func TestClassify_DefaultHeuristic(t *testing.T) {
	table := tableFor("some_new_language")
	require.True(t, table.heuristic)

	// Exact entries carried by the default table.
	assert.Equal(t, CatFunction, table.Classify("function_definition"))
	assert.Equal(t, CatFunction, table.Classify("method_declaration"))

	// Substring heuristics for kinds the table never saw.
	assert.Equal(t, CatClass, table.Classify("class_specifier"))
	assert.Equal(t, CatClass, table.Classify("struct_declaration"))
	assert.Equal(t, CatClass, table.Classify("interface_definition"))
	assert.Equal(t, CatFunction, table.Classify("function_signature_item"))
	assert.Equal(t, CatNone, table.Classify("call_expression"))
	assert.Equal(t, CatBody, table.Classify("class_body"))
}

func TestClassify_SharedKinds(t *testing.T) {
	for _, lang := range []string{"go", "rust", "java", "ruby"} {
		table := tableFor(lang)
		assert.Equal(t, CatName, table.Classify("identifier"), lang)
		assert.Equal(t, CatBody, table.Classify("block"), lang)
		assert.Equal(t, CatComment, table.Classify("line_comment"), lang)
	}
}

func TestTableFor_TSXSharesTypescript(t *testing.T) {
	assert.Same(t, tableFor("typescript"), tableFor("tsx"))
}
