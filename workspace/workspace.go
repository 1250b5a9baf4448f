// Package workspace keeps the parse state of every source file in a project
// and turns parse failures into diagnostics.
package workspace

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/tliron/commonlog"

	"github.com/osta-lang/osta/ast"
	"github.com/osta-lang/osta/lexer"
	"github.com/osta-lang/osta/parser"
	"github.com/osta-lang/osta/project"
)

var log = sync.OnceValue(func() commonlog.Logger {
	return commonlog.GetLogger("osta.workspace")
})

type Workspace struct {
	mu      sync.RWMutex
	project *project.Project
	files   map[string]*FileInfo
	parsed  *lru.ARCCache // digest -> parseResult
}

type FileInfo struct {
	Path     string
	Content  []byte
	AST      *ast.AST
	ParseErr error
}

type parseResult struct {
	tree *ast.AST
	err  error
}

// Diagnostic is a parse error located in a file.
type Diagnostic struct {
	Path    string
	Start   lexer.Position
	End     lexer.Position
	Message string
}

func New(proj *project.Project) (*Workspace, error) {
	parsed, err := lru.NewARC(proj.Config.Cache.Size)
	if err != nil {
		return nil, err
	}
	return &Workspace{
		project: proj,
		files:   make(map[string]*FileInfo),
		parsed:  parsed,
	}, nil
}

func (w *Workspace) Project() *project.Project {
	return w.project
}

func (w *Workspace) RootDir() string {
	return w.project.RootDir
}

// ScanAll parses every source file of the project. Files that cannot be read
// are skipped.
func (w *Workspace) ScanAll() error {
	files, err := w.project.SourceFiles()
	if err != nil {
		return err
	}
	for _, path := range files {
		if err := w.ScanFile(path); err != nil {
			log().Warningf("skipping %s: %s", path, err)
		}
	}
	log().Infof("scanned %d files in %s", len(files), w.project.RootDir)
	return nil
}

func (w *Workspace) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	w.UpdateFile(path, content)
	return nil
}

// UpdateFile replaces the content of path and parses it. Parse results are
// cached by path and content, so reverting a file to an earlier state does
// not parse it again.
func (w *Workspace) UpdateFile(path string, content []byte) *FileInfo {
	result := w.parse(path, content)

	info := &FileInfo{
		Path:     path,
		Content:  content,
		AST:      result.tree,
		ParseErr: result.err,
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[path] = info
	return info
}

func (w *Workspace) parse(path string, content []byte) parseResult {
	key := digest(path, content)
	if cached, ok := w.parsed.Get(key); ok {
		log().Debugf("cache hit for %s", path)
		return cached.(parseResult)
	}

	tree, err := parser.ParseProgramFrom(bytes.NewReader(content), parser.WithFile(w.displayName(path))).Finish()
	result := parseResult{tree: tree, err: err}
	w.parsed.Add(key, result)
	return result
}

func (w *Workspace) displayName(path string) string {
	if rel, err := filepath.Rel(w.project.RootDir, path); err == nil && filepath.IsLocal(rel) {
		return rel
	}
	return path
}

func digest(path string, content []byte) [sha256.Size]byte {
	h := sha256.New()
	h.Write([]byte(path))
	h.Write([]byte{0})
	h.Write(content)
	var sum [sha256.Size]byte
	h.Sum(sum[:0])
	return sum
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, path)
}

func (w *Workspace) GetFile(path string) *FileInfo {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// Paths lists the known files in sorted order.
func (w *Workspace) Paths() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	paths := make([]string, 0, len(w.files))
	for path := range w.files {
		paths = append(paths, path)
	}
	slices.Sort(paths)
	return paths
}

// Diagnostics returns the diagnostics of every file, ordered by path.
func (w *Workspace) Diagnostics() []Diagnostic {
	var all []Diagnostic
	for _, path := range w.Paths() {
		all = append(all, w.FileDiagnostics(path)...)
	}
	return all
}

// FileDiagnostics returns the diagnostics of one file, or nil when it parsed
// cleanly or is unknown.
func (w *Workspace) FileDiagnostics(path string) []Diagnostic {
	f := w.GetFile(path)
	if f == nil || f.ParseErr == nil {
		return nil
	}
	return []Diagnostic{NewDiagnostic(path, f.ParseErr)}
}

// NewDiagnostic locates err within path. Errors that are not syntax errors
// are reported at the start of the file.
func NewDiagnostic(path string, err error) Diagnostic {
	d := Diagnostic{
		Path:    path,
		Start:   lexer.Position{File: path, Line: 1, Column: 1},
		Message: err.Error(),
	}
	var perr *parser.Error
	if errors.As(err, &perr) {
		d.Start = perr.Pos
		d.End = perr.Got.Span.End
	}
	if d.End.Line == 0 {
		d.End = d.Start
	}
	return d
}
