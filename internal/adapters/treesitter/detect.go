package treesitter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/marek/symq/internal/ports"
)

// detectLanguage resolves the language for a path. Precedence: explicit
// override, exact filename, extension, then shebang for extensionless files.
// known validates overrides against every language the adapter has heard of,
// not just the ones with an installed grammar.
func detectLanguage(path, override string, known func(string) bool) (string, error) {
	if override != "" {
		if known(override) {
			return override, nil
		}
		return "", &ports.DetectionError{Path: path, Reason: fmt.Sprintf("unknown language %q", override)}
	}

	base := filepath.Base(path)
	if lang, ok := fileToLang[base]; ok {
		return lang, nil
	}

	ext := strings.ToLower(filepath.Ext(base))
	if lang, ok := extToLang[ext]; ok {
		return lang, nil
	}

	if ext == "" {
		if lang := sniffShebang(path); lang != "" {
			return lang, nil
		}
		return "", &ports.DetectionError{Path: path, Reason: "unknown extension (no shebang match)"}
	}
	return "", &ports.DetectionError{Path: path, Reason: fmt.Sprintf("unknown extension %q", ext)}
}

// sniffShebang reads the first line of a file and maps its interpreter to a
// language. Returns "" when there is no usable shebang.
func sniffShebang(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	buf := make([]byte, 128)
	n, _ := f.Read(buf)
	head := string(buf[:n])
	if !strings.HasPrefix(head, "#!") {
		return ""
	}
	line := head[2:]
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	interp := filepath.Base(fields[0])
	if interp == "env" {
		if len(fields) < 2 {
			return ""
		}
		interp = filepath.Base(fields[1])
	}
	if lang, ok := shebangToLang[interp]; ok {
		return lang
	}
	// python3.12 and friends: drop the version suffix and retry.
	trimmed := strings.TrimRight(interp, "0123456789.")
	if lang, ok := shebangToLang[trimmed]; ok {
		return lang
	}
	return ""
}

// knownLanguage reports whether a language identifier appears anywhere in
// the detection tables. The registry extends this with grammars installed
// under a name no extension maps to.
func knownLanguage(lang string) bool {
	for _, l := range extToLang {
		if l == lang {
			return true
		}
	}
	for _, l := range fileToLang {
		if l == lang {
			return true
		}
	}
	for _, l := range shebangToLang {
		if l == lang {
			return true
		}
	}
	return false
}
