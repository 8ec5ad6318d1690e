//go:build !lean

package treesitter

import (
	"unsafe"

	ts_cuda "github.com/tree-sitter-grammars/tree-sitter-cuda/bindings/go"
	ts_hcl "github.com/tree-sitter-grammars/tree-sitter-hcl/bindings/go"
	ts_kotlin "github.com/tree-sitter-grammars/tree-sitter-kotlin/bindings/go"
	ts_lua "github.com/tree-sitter-grammars/tree-sitter-lua/bindings/go"
	ts_svelte "github.com/tree-sitter-grammars/tree-sitter-svelte/bindings/go"
	ts_toml "github.com/tree-sitter-grammars/tree-sitter-toml/bindings/go"
	ts_yaml "github.com/tree-sitter-grammars/tree-sitter-yaml/bindings/go"
	ts_zig "github.com/tree-sitter-grammars/tree-sitter-zig/bindings/go"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	ts_bash "github.com/tree-sitter/tree-sitter-bash/bindings/go"
	ts_csharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
	ts_c "github.com/tree-sitter/tree-sitter-c/bindings/go"
	ts_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	ts_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
	ts_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	ts_haskell "github.com/tree-sitter/tree-sitter-haskell/bindings/go"
	ts_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
	ts_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_json "github.com/tree-sitter/tree-sitter-json/bindings/go"
	ts_ocaml "github.com/tree-sitter/tree-sitter-ocaml/bindings/go"
	ts_php "github.com/tree-sitter/tree-sitter-php/bindings/go"
	ts_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	ts_ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"
	ts_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	ts_scala "github.com/tree-sitter/tree-sitter-scala/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
	ts_verilog "github.com/tree-sitter/tree-sitter-verilog/bindings/go"
)

func langPtr(p unsafe.Pointer) *tree_sitter.Language {
	return tree_sitter.NewLanguage(p)
}

// registerBuiltins wires every compiled-in grammar into the registry as a
// lazy factory, so grammars a run never touches cost nothing.
func registerBuiltins(r *Registry) {
	r.register("bash", func() *tree_sitter.Language { return langPtr(ts_bash.Language()) })
	r.register("c", func() *tree_sitter.Language { return langPtr(ts_c.Language()) })
	r.register("cpp", func() *tree_sitter.Language { return langPtr(ts_cpp.Language()) })
	r.register("csharp", func() *tree_sitter.Language { return langPtr(ts_csharp.Language()) })
	r.register("css", func() *tree_sitter.Language { return langPtr(ts_css.Language()) })
	r.register("cuda", func() *tree_sitter.Language { return langPtr(ts_cuda.Language()) })
	r.register("go", func() *tree_sitter.Language { return langPtr(ts_go.Language()) })
	r.register("haskell", func() *tree_sitter.Language { return langPtr(ts_haskell.Language()) })
	r.register("hcl", func() *tree_sitter.Language { return langPtr(ts_hcl.Language()) })
	r.register("html", func() *tree_sitter.Language { return langPtr(ts_html.Language()) })
	r.register("java", func() *tree_sitter.Language { return langPtr(ts_java.Language()) })
	r.register("javascript", func() *tree_sitter.Language { return langPtr(ts_javascript.Language()) })
	r.register("json", func() *tree_sitter.Language { return langPtr(ts_json.Language()) })
	r.register("kotlin", func() *tree_sitter.Language { return langPtr(ts_kotlin.Language()) })
	r.register("lua", func() *tree_sitter.Language { return langPtr(ts_lua.Language()) })
	r.register("ocaml", func() *tree_sitter.Language { return langPtr(ts_ocaml.LanguageOCaml()) })
	r.register("ocaml_interface", func() *tree_sitter.Language { return langPtr(ts_ocaml.LanguageOCamlInterface()) })
	r.register("php", func() *tree_sitter.Language { return langPtr(ts_php.LanguagePHP()) })
	r.register("python", func() *tree_sitter.Language { return langPtr(ts_python.Language()) })
	r.register("ruby", func() *tree_sitter.Language { return langPtr(ts_ruby.Language()) })
	r.register("rust", func() *tree_sitter.Language { return langPtr(ts_rust.Language()) })
	r.register("scala", func() *tree_sitter.Language { return langPtr(ts_scala.Language()) })
	r.register("svelte", func() *tree_sitter.Language { return langPtr(ts_svelte.Language()) })
	r.register("toml", func() *tree_sitter.Language { return langPtr(ts_toml.Language()) })
	r.register("tsx", func() *tree_sitter.Language { return langPtr(ts_typescript.LanguageTSX()) })
	r.register("typescript", func() *tree_sitter.Language { return langPtr(ts_typescript.LanguageTypescript()) })
	r.register("verilog", func() *tree_sitter.Language { return langPtr(ts_verilog.Language()) })
	r.register("yaml", func() *tree_sitter.Language { return langPtr(ts_yaml.Language()) })
	r.register("zig", func() *tree_sitter.Language { return langPtr(ts_zig.Language()) })
}
