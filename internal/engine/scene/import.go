package scene

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ImportFlags selects post-processing applied after a file is parsed.
type ImportFlags uint32

const (
	// Triangulate splits polygons with more than three vertices into a
	// triangle fan and drops points and lines.
	Triangulate ImportFlags = 1 << iota
	// FlipUVs replaces every texture coordinate v with 1-v.
	FlipUVs
	// GenNormals computes flat face normals for meshes that lack normals.
	GenNormals
)

// DefaultFlags is the post-processing used by the model loader.
const DefaultFlags = Triangulate | FlipUVs | GenNormals

// Has reports whether all bits of f are set.
func (flags ImportFlags) Has(f ImportFlags) bool {
	return flags&f == f
}

// Importer parses one scene file format into a Scene.
type Importer interface {
	Import(path string) (*Scene, error)
}

// ImporterFunc adapts a function to Importer.
type ImporterFunc func(path string) (*Scene, error)

// Import implements Importer.
func (f ImporterFunc) Import(path string) (*Scene, error) { return f(path) }

// ImportFunc parses and post-processes a scene file. Import satisfies it.
type ImportFunc func(path string, flags ImportFlags) (*Scene, error)

var (
	importersMu sync.RWMutex
	importers   = make(map[string]Importer)
)

// Register makes an importer available for the given file extensions.
// Extensions include the dot and are matched case-insensitively.
// Registering an extension twice replaces the earlier importer.
func Register(imp Importer, exts ...string) {
	importersMu.Lock()
	defer importersMu.Unlock()
	for _, ext := range exts {
		importers[strings.ToLower(ext)] = imp
	}
}

// Formats returns the registered extensions in sorted order.
func Formats() []string {
	importersMu.RLock()
	defer importersMu.RUnlock()
	exts := make([]string, 0, len(importers))
	for ext := range importers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func lookup(path string) (Importer, string, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	importersMu.RLock()
	defer importersMu.RUnlock()
	imp, ok := importers[ext]
	return imp, ext, ok
}

// Import parses path with the importer registered for its extension, validates
// the result and applies the post-processing selected by flags.
//
// When the importer reports a partial parse, or validation fails, the scene is
// returned with Incomplete set together with an error wrapping ErrIncomplete.
func Import(path string, flags ImportFlags) (*Scene, error) {
	imp, ext, ok := lookup(path)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	s, err := imp.Import(path)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrNoScene
	}
	if s.Incomplete {
		return s, ErrIncomplete
	}

	if err := s.Validate(); err != nil {
		s.Incomplete = true
		return s, fmt.Errorf("%w: %w", ErrIncomplete, err)
	}

	s.PostProcess(flags)
	return s, nil
}
