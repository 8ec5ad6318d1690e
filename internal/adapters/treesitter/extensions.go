package treesitter

// extToLang maps lowercased file extensions (with dot) to language
// identifiers. Detection succeeds for every entry here; whether the grammar
// is actually available is the registry's problem, so files in languages
// without an installed grammar surface a grammar error rather than an
// unknown-extension error.
var extToLang = map[string]string{
	".py":  "python",
	".pyi": "python",

	".js":  "javascript",
	".jsx": "javascript",
	".mjs": "javascript",
	".cjs": "javascript",

	".ts":  "typescript",
	".tsx": "tsx",

	".go": "go",

	".rs": "rust",

	".c": "c",
	".h": "c",

	".cpp": "cpp",
	".cxx": "cpp",
	".cc":  "cpp",
	".hpp": "cpp",
	".hh":  "cpp",

	".cu":  "cuda",
	".cuh": "cuda",

	".m":  "objc",
	".mm": "objc",

	".cs": "csharp",

	".java": "java",

	".kt":  "kotlin",
	".kts": "kotlin",

	".scala": "scala",
	".sc":    "scala",

	".rb": "ruby",

	".php":   "php",
	".phtml": "php",

	".swift": "swift",

	".ml":  "ocaml",
	".mli": "ocaml_interface",

	".hs": "haskell",

	".ex":  "elixir",
	".exs": "elixir",

	".erl": "erlang",
	".hrl": "erlang",

	".clj":  "clojure",
	".cljs": "clojure",

	".jl": "julia",

	".r": "r",

	".pl": "perl",
	".pm": "perl",

	".ps1": "powershell",
	".psm1": "powershell",

	".sh":   "bash",
	".bash": "bash",
	".zsh":  "bash",

	".lua": "lua",

	".zig": "zig",

	".nim": "nim",

	".dart": "dart",

	".elm": "elm",

	".fs":  "fsharp",
	".f90": "fortran",

	".v":   "verilog",
	".sv":  "verilog",
	".svh": "verilog",

	".vhd": "vhdl",

	".html": "html",
	".htm":  "html",

	".css":  "css",
	".scss": "scss",

	".svelte": "svelte",
	".vue":    "vue",

	".json": "json",

	".yml":  "yaml",
	".yaml": "yaml",

	".toml": "toml",

	".ini": "ini",

	".hcl": "hcl",
	".tf":  "hcl",

	".xml": "xml",

	".md":       "markdown",
	".markdown": "markdown",

	".sql": "sql",

	".tex": "latex",

	".asm": "asm",
	".s":   "asm",

	".ada": "ada",
	".adb": "ada",

	".ino": "arduino",
}

// fileToLang maps exact base names to languages. Checked before the
// extension table so CMakeLists.txt does not detect as plain text.
var fileToLang = map[string]string{
	"Dockerfile":     "dockerfile",
	"Makefile":       "make",
	"makefile":       "make",
	"GNUmakefile":    "make",
	"CMakeLists.txt": "cmake",
	"Gemfile":        "ruby",
	"Rakefile":       "ruby",
	"Vagrantfile":    "ruby",
	".bashrc":        "bash",
	".bash_profile":  "bash",
	".zshrc":         "bash",
	".profile":       "bash",
}

// shebangToLang maps interpreter base names (env-resolved) to languages.
// Consulted only for extensionless files.
var shebangToLang = map[string]string{
	"python":  "python",
	"python2": "python",
	"python3": "python",
	"node":    "javascript",
	"nodejs":  "javascript",
	"sh":      "bash",
	"bash":    "bash",
	"zsh":     "bash",
	"dash":    "bash",
	"ruby":    "ruby",
	"lua":     "lua",
	"perl":    "perl",
	"php":     "php",
}
