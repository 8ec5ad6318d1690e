package treesitter

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
)

// PlatformString returns the OS-arch string for the current platform.
// e.g. "linux-amd64", "darwin-arm64"
func PlatformString() string {
	return runtime.GOOS + "-" + runtime.GOARCH
}

// GlobalGrammarDir returns the default global grammar directory:
// ~/.symq/grammars/
func GlobalGrammarDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".symq", "grammars")
}

// Fetcher downloads grammar libraries described by a manifest.
type Fetcher struct {
	manifest *Manifest
	client   *http.Client
}

// NewFetcher builds a fetcher over a manifest.
func NewFetcher(m *Manifest) *Fetcher {
	return &Fetcher{
		manifest: m,
		client:   &http.Client{Timeout: 120 * time.Second},
	}
}

// assetURL is the release asset location for one grammar on one platform.
// Release assets are flat, so the platform is encoded in the file name.
func (f *Fetcher) assetURL(name, platform string) string {
	return fmt.Sprintf("%s/grammars-v%d/%s-%s%s",
		f.manifest.BaseURL, f.manifest.Version, name, platform, grammarLibExt())
}

// Fetch downloads the grammar library for name into destDir, verifying the
// manifest digest when one is present, and returns the installed path.
// Downloads land in a temp file first so a failed transfer never leaves a
// half-written grammar behind.
func (f *Fetcher) Fetch(name, destDir string) (string, error) {
	info, ok := f.manifest.Grammars[name]
	if !ok {
		return "", fmt.Errorf("grammar %q not in manifest", name)
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create grammar dir: %w", err)
	}

	platform := PlatformString()
	url := f.assetURL(name, platform)
	log.Debug().Str("grammar", name).Str("url", url).Msg("treesitter: fetching grammar")

	resp, err := f.client.Get(url)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: unexpected status %s", name, resp.Status)
	}

	tmp, err := os.CreateTemp(destDir, name+".download-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	hash := sha256.New()
	_, err = io.Copy(io.MultiWriter(tmp, hash), resp.Body)
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("download %s: %w", name, err)
	}

	if want, ok := info.SHA256[platform]; ok && want != "" {
		got := hex.EncodeToString(hash.Sum(nil))
		if got != want {
			os.Remove(tmpPath)
			return "", fmt.Errorf("grammar %s: checksum mismatch: got %s, want %s", name, got, want)
		}
	}

	dest := filepath.Join(destDir, name+grammarLibExt())
	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("install %s: %w", name, err)
	}
	log.Info().Str("grammar", name).Str("path", dest).Msg("treesitter: installed grammar")
	return dest, nil
}

// Verify checks an installed grammar library against the manifest digest for
// this platform. Grammars without a recorded digest verify trivially.
func (f *Fetcher) Verify(name, dir string) error {
	info, ok := f.manifest.Grammars[name]
	if !ok {
		return fmt.Errorf("grammar %q not in manifest", name)
	}
	want, ok := info.SHA256[PlatformString()]
	if !ok || want == "" {
		return nil
	}
	got, err := sha256File(filepath.Join(dir, name+grammarLibExt()))
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("grammar %s: checksum mismatch: got %s, want %s", name, got, want)
	}
	return nil
}

// sha256File returns the hex SHA256 digest of a file.
func sha256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
