package fs

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/distill"
	"gopkg.in/yaml.v3"
)

// Ensure FileStore implements distill.PageStore at compile time.
var _ distill.PageStore = (*FileStore)(nil)

// FileStore implements distill.PageStore with atomic update semantics.
// Pages are saved to a temporary directory, then moved into the output
// directory on Commit. Files from earlier runs are kept.
type FileStore struct {
	baseDir string
	name    string
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes the page HTML, and its Markdown rendition if present, to the
// temporary directory. The returned path is where the HTML file will live
// after Commit.
func (s *FileStore) Save(ctx context.Context, page *distill.Page) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := page.Validate(); err != nil {
		return "", err
	}

	hash := page.ContentHash
	if hash == "" {
		hash = ComputeHash(page.HTML)
	}
	relPath, err := FragmentPath(page.URL, hash)
	if err != nil {
		return "", err
	}

	if err := writeFile(filepath.Join(s.tempDir(), relPath), page.HTML); err != nil {
		return "", err
	}
	if page.Markdown != "" {
		md, err := FormatMarkdown(page)
		if err != nil {
			return "", err
		}
		if err := writeFile(filepath.Join(s.tempDir(), MarkdownPath(relPath)), md); err != nil {
			return "", err
		}
	}

	return filepath.Join(s.finalDir(), relPath), nil
}

// Commit moves every saved file into the output directory and removes the
// temporary directory.
func (s *FileStore) Commit() error {
	tmp := s.tempDir()
	err := filepath.WalkDir(tmp, func(p string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(tmp, p)
		if err != nil {
			return err
		}
		dst := filepath.Join(s.finalDir(), rel)
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return err
		}
		return os.Rename(p, dst)
	})
	if err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return err
	}
	return os.RemoveAll(tmp)
}

// Abort discards every file saved since the last Commit.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// frontmatter is the YAML header of a Markdown sidecar.
type frontmatter struct {
	Source    string    `yaml:"source"`
	URL       string    `yaml:"url,omitempty"`
	Title     string    `yaml:"title"`
	Retrieved time.Time `yaml:"retrieved"`
}

// FormatMarkdown formats a page's Markdown with YAML frontmatter.
func FormatMarkdown(page *distill.Page) (string, error) {
	fm := frontmatter{
		Source:    page.URL,
		Title:     page.Title,
		Retrieved: page.RetrievedAt.UTC(),
	}
	if page.FinalURL != page.URL {
		fm.URL = page.FinalURL
	}
	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(page.Markdown)
	return b.String(), nil
}

// ComputeHash returns the xxhash of content as 16 hex digits.
func ComputeHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}
