package gateway

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/ppiankov/s4spectre/internal/models"
)

// ignoreFiles are read from the checkout root, in this order
var ignoreFiles = []string{".gitignore", ".abapgitignore"}

// sourceExtensions maps abapGit file type segments to object types
var sourceExtensions = map[string]string{
	"clas": models.TypeClass,
	"intf": models.TypeInterface,
	"prog": models.TypeProgram,
	"fugr": models.TypeFunctionGroup,
	"incl": models.TypeInclude,
}

type fileEntry struct {
	path string
	ref  models.ObjectRef
}

// Files serves objects from an abapGit checkout on disk.
// Main sources are named <object>.<type>.abap; the enclosing directory is the package.
type Files struct {
	root    string
	ignorer *ignore.GitIgnore

	mu    sync.RWMutex
	index map[string]fileEntry
	order []string
}

// NewFiles indexes the checkout under root
func NewFiles(root string) (*Files, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access checkout: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("checkout root %s is not a directory", root)
	}

	var lines []string
	for _, name := range ignoreFiles {
		data, err := os.ReadFile(filepath.Join(root, name))
		if err != nil {
			continue
		}
		lines = append(lines, strings.Split(string(data), "\n")...)
	}

	f := &Files{root: root, ignorer: ignore.CompileIgnoreLines(lines...)}
	if err := f.Reindex(); err != nil {
		return nil, err
	}
	return f, nil
}

// Mode implements Gateway
func (f *Files) Mode() Mode { return ModeFiles }

// Root returns the checkout directory
func (f *Files) Root() string { return f.root }

// Reindex walks the checkout again, picking up added and removed files
func (f *Files) Reindex() error {
	index := make(map[string]fileEntry)
	var order []string

	err := filepath.WalkDir(f.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(f.root, path)
		if err != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") || f.ignorer.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if f.ignorer.MatchesPath(rel) {
			return nil
		}
		name, objectType, ok := parseSourceName(d.Name())
		if !ok {
			return nil
		}
		if _, dup := index[name]; dup {
			return nil
		}
		index[name] = fileEntry{
			path: path,
			ref: models.ObjectRef{
				Name:    name,
				Type:    objectType,
				Package: f.packageOf(path),
			},
		}
		order = append(order, name)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to index checkout: %w", err)
	}
	sort.Strings(order)

	f.mu.Lock()
	f.index, f.order = index, order
	f.mu.Unlock()
	return nil
}

// parseSourceName splits "zcl_foo.clas.abap" into ("ZCL_FOO", "CLAS").
// Secondary files such as "zcl_foo.clas.locals_imp.abap" are not main sources.
func parseSourceName(file string) (string, string, bool) {
	parts := strings.Split(file, ".")
	if len(parts) != 3 || parts[2] != "abap" {
		return "", "", false
	}
	objectType, ok := sourceExtensions[strings.ToLower(parts[1])]
	if !ok || parts[0] == "" {
		return "", "", false
	}
	name := strings.ToUpper(strings.ReplaceAll(parts[0], "#", "/"))
	return name, objectType, true
}

func (f *Files) packageOf(path string) string {
	dir := filepath.Dir(path)
	return strings.ToUpper(filepath.Base(dir))
}

func (f *Files) lookup(name string) (fileEntry, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	e, ok := f.index[strings.ToUpper(name)]
	return e, ok
}

// ReadSource implements Gateway
func (f *Files) ReadSource(_ context.Context, name, _ string) (*SourceResult, error) {
	e, ok := f.lookup(name)
	if !ok {
		return nil, notFound(name)
	}
	data, err := os.ReadFile(e.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return &SourceResult{ObjectName: e.ref.Name, ObjectType: e.ref.Type, Source: string(data)}, nil
}

// WriteSource implements Gateway. Only objects already in the checkout can be written.
func (f *Files) WriteSource(_ context.Context, req WriteRequest) (*WriteResult, error) {
	e, ok := f.lookup(req.ObjectName)
	if !ok {
		return nil, notFound(req.ObjectName)
	}
	mode := os.FileMode(0o644)
	if info, err := os.Stat(e.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(e.path, []byte(req.Source), mode); err != nil {
		return nil, fmt.Errorf("write %s: %w", req.ObjectName, err)
	}
	return &WriteResult{Status: StatusSaved, Lines: models.CountLines(req.Source)}, nil
}

// Search implements Gateway
func (f *Files) Search(_ context.Context, query, objectType string) (*SearchResult, error) {
	re := wildcard(query)
	res := &SearchResult{Query: query, Results: []SearchHit{}}

	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, name := range f.order {
		ref := f.index[name].ref
		if !re.MatchString(ref.Name) || !typeMatches(objectType, ref.Type) {
			continue
		}
		res.Results = append(res.Results, SearchHit{Name: ref.Name, Type: ref.Type, Package: ref.Package})
	}
	res.ResultCount = len(res.Results)
	return res, nil
}
