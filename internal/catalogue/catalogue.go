package catalogue

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"artbridge/internal/logging"
)

// DefaultSearchLimit caps search results when no limit is configured.
const DefaultSearchLimit = 100

// ErrOutsideRoot reports a load path that resolves outside the library root.
var ErrOutsideRoot = errors.New("catalogue: path outside library root")

// Entry is one candidate articulation-set file.
type Entry struct {
	// Name is the file name without extension.
	Name string `json:"name"`
	// Path is relative to the library root.
	Path string `json:"path"`
}

// Catalogue serves a single library root.
type Catalogue struct {
	root   string
	limit  int
	logger *slog.Logger
}

// New creates a catalogue over root. limit <= 0 uses DefaultSearchLimit.
func New(root string, limit int, logger *slog.Logger) *Catalogue {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	return &Catalogue{
		root:   root,
		limit:  limit,
		logger: logging.NewComponentLogger(logger, "catalogue"),
	}
}

// Root returns the library root directory.
func (c *Catalogue) Root() string { return c.root }

// Search returns entries whose name contains query, case-insensitively.
// An empty query lists everything up to the result cap. Failures to read the
// library degrade to an empty result.
func (c *Catalogue) Search(query string) []Entry {
	needle := strings.ToLower(strings.TrimSpace(query))
	var entries []Entry

	err := filepath.WalkDir(c.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if len(entries) >= c.limit {
			return fs.SkipAll
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != c.root {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(d.Name()), ".plist") {
			return nil
		}
		name := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
		if needle != "" && !strings.Contains(strings.ToLower(name), needle) {
			return nil
		}
		rel, relErr := filepath.Rel(c.root, path)
		if relErr != nil {
			return nil
		}
		entries = append(entries, Entry{Name: name, Path: rel})
		return nil
	})
	if err != nil {
		c.logger.Warn("library scan failed", logging.String("root", c.root), logging.Error(err))
		return nil
	}
	return entries
}

// Load reads one set file by its root-relative path. Absolute paths inside
// the root are accepted; anything resolving outside the root is rejected.
func (c *Catalogue) Load(path string) ([]byte, error) {
	resolved := path
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(c.root, resolved)
	}
	resolved = filepath.Clean(resolved)
	if outsideRoot(c.root, resolved) {
		return nil, ErrOutsideRoot
	}

	// A symlink under the root can still point outside it.
	target, err := filepath.EvalSymlinks(resolved)
	if err != nil {
		return nil, err
	}
	realRoot, err := filepath.EvalSymlinks(c.root)
	if err != nil {
		return nil, err
	}
	if outsideRoot(realRoot, target) {
		return nil, ErrOutsideRoot
	}

	data, err := os.ReadFile(target)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func outsideRoot(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	return err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
