package walker

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/tmplwalk/internal/fsutil"
	"github.com/dshills/tmplwalk/internal/merge"
	"github.com/dshills/tmplwalk/internal/render"
	"github.com/rs/zerolog"
)

// DefaultNamespace is the binding name used when none is given.
const DefaultNamespace = "config"

// Walker renders template trees. It holds no per-run state and may be reused.
type Walker struct {
	rule   Rule
	engine render.Engine
	log    zerolog.Logger
}

// Option configures a Walker.
type Option func(*Walker)

// WithRule sets both the filter and the rename function.
func WithRule(r Rule) Option {
	return func(w *Walker) {
		if r.Match != nil {
			w.rule.Match = r.Match
		}
		if r.Rename != nil {
			w.rule.Rename = r.Rename
		}
	}
}

// WithFilter sets the predicate that classifies a base name as a template.
func WithFilter(match func(string) bool) Option {
	return WithRule(Rule{Match: match})
}

// WithRename sets the function producing the output name of a template.
func WithRename(rename func(string) string) Option {
	return WithRule(Rule{Rename: rename})
}

// WithEngine sets the template engine.
func WithEngine(e render.Engine) Option {
	return func(w *Walker) {
		if e != nil {
			w.engine = e
		}
	}
}

// WithLogger sets the logger used for per-file decisions and the run summary.
func WithLogger(l zerolog.Logger) Option {
	return func(w *Walker) {
		w.log = l
	}
}

// New returns a Walker using DefaultRule and the text engine unless
// overridden by opts.
func New(opts ...Option) *Walker {
	w := &Walker{
		rule:   DefaultRule(),
		engine: &render.TextEngine{},
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Stats summarises a successful walk.
type Stats struct {
	Dirs     int // directories visited
	Rendered int // templates rendered
	Copied   int // assets copied to the output tree
	Skipped  int // assets left in place
}

// ValidateNamespace checks that ns is usable as a binding name.
func ValidateNamespace(ns string) error {
	if ns == "" {
		return fmt.Errorf("%w: empty", ErrInvalidNamespace)
	}
	if strings.TrimSpace(ns) != ns {
		return fmt.Errorf("%w: %q has leading or trailing whitespace", ErrInvalidNamespace, ns)
	}
	return nil
}

// run carries the state of a single walk.
type run struct {
	*Walker
	sourceDir  string
	outputDir  string
	inPlace    bool
	copyAssets bool
	skipDir    string
	bindings   map[string]any
	stats      Stats
}

// Walk merges sources and renders every file under sourceDir. An empty
// outputDir renders in place. The merged configuration is bound under
// namespace.
func (w *Walker) Walk(sources []merge.Source, sourceDir, outputDir, namespace string) (Stats, error) {
	if err := ValidateNamespace(namespace); err != nil {
		return Stats{}, err
	}

	cfg, err := merge.Merge(sources...)
	if err != nil {
		return Stats{}, fmt.Errorf("merging configuration: %w", err)
	}

	sourceDir, err = walkRoot(sourceDir)
	if err != nil {
		return Stats{}, err
	}

	r := &run{
		Walker:    w,
		sourceDir: sourceDir,
		outputDir: outputDir,
		inPlace:   outputDir == "",
		bindings:  map[string]any{namespace: cfg},
	}
	if !r.inPlace {
		if err := r.resolveOutput(); err != nil {
			return Stats{}, err
		}
	}

	w.log.Debug().
		Str("source", sourceDir).
		Str("output", outputDir).
		Str("namespace", namespace).
		Int("sections", len(cfg)).
		Msg("starting walk")

	if err := filepath.WalkDir(sourceDir, r.visit); err != nil {
		return Stats{}, err
	}

	w.log.Info().
		Int("dirs", r.stats.Dirs).
		Int("rendered", r.stats.Rendered).
		Int("copied", r.stats.Copied).
		Int("skipped", r.stats.Skipped).
		Msg("walk complete")
	return r.stats, nil
}

// walkRoot checks that dir is a directory. A symlinked root is replaced by
// its target, since WalkDir does not descend into a root symlink.
func walkRoot(dir string) (string, error) {
	info, err := os.Lstat(dir)
	if err != nil {
		return "", fmt.Errorf("reading source tree: %w", err)
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		target, err := filepath.EvalSymlinks(dir)
		if err != nil {
			return "", fmt.Errorf("reading source tree: %w", err)
		}
		dir = target
		if info, err = os.Stat(dir); err != nil {
			return "", fmt.Errorf("reading source tree: %w", err)
		}
	}
	if !info.IsDir() {
		return "", fmt.Errorf("reading source tree: %s is not a directory", dir)
	}
	return dir, nil
}

// resolveOutput decides whether assets need copying and whether the output
// root sits inside the source tree and must be excluded from traversal.
func (r *run) resolveOutput() error {
	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output %s: %w", r.outputDir, err)
	}
	src, err := fsutil.Resolve(r.sourceDir)
	if err != nil {
		return fmt.Errorf("resolving source %s: %w", r.sourceDir, err)
	}
	out, err := fsutil.Resolve(r.outputDir)
	if err != nil {
		return fmt.Errorf("resolving output %s: %w", r.outputDir, err)
	}
	r.copyAssets = src != out
	if r.copyAssets && fsutil.Within(src, out) {
		rel, err := filepath.Rel(src, out)
		if err != nil {
			return fmt.Errorf("resolving output %s: %w", r.outputDir, err)
		}
		r.skipDir = filepath.Join(r.sourceDir, rel)
	}
	return nil
}

func (r *run) visit(path string, d fs.DirEntry, err error) error {
	if err != nil {
		return fmt.Errorf("walking %s: %w", path, err)
	}

	if d.IsDir() {
		if r.skipDir != "" && filepath.Clean(path) == filepath.Clean(r.skipDir) {
			r.log.Debug().Str("dir", path).Msg("skipping output directory")
			return fs.SkipDir
		}
		return r.enterDir(path)
	}

	match := r.rule.Match(d.Name())
	if !match && !r.copyAssets {
		// assets left in place are never opened
		return r.copyAsset(path, "")
	}

	info, err := r.fileInfo(path, d)
	if err != nil {
		return err
	}
	if info.IsDir() {
		// symlinked directory, not followed
		r.log.Debug().Str("path", path).Msg("skipping directory symlink")
		return nil
	}

	destDir, err := r.destination(filepath.Dir(path))
	if err != nil {
		return err
	}
	if match {
		return r.renderTemplate(path, destDir, d.Name(), info.Mode())
	}
	return r.copyAsset(path, destDir)
}

func (r *run) fileInfo(path string, d fs.DirEntry) (fs.FileInfo, error) {
	if d.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		return info, nil
	}
	info, err := d.Info()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	return info, nil
}

func (r *run) enterDir(path string) error {
	r.stats.Dirs++
	if r.inPlace {
		return nil
	}
	dest, err := r.destination(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dest, err)
	}
	r.log.Debug().Str("dir", dest).Msg("directory ready")
	return nil
}

// destination maps a directory of the source tree to its output directory.
func (r *run) destination(dir string) (string, error) {
	if r.inPlace {
		return dir, nil
	}
	rel, err := filepath.Rel(r.sourceDir, dir)
	if err != nil {
		return "", fmt.Errorf("relative path of %s: %w", dir, err)
	}
	return filepath.Join(r.outputDir, rel), nil
}

func (r *run) renderTemplate(path, destDir, name string, mode fs.FileMode) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading template %s: %w", path, err)
	}

	outName := r.rule.Rename(name)
	if outName == "" {
		return fmt.Errorf("rendering %s: %w", path, ErrEmptyOutputName)
	}
	dest := filepath.Join(destDir, outName)

	tmplName, err := filepath.Rel(r.sourceDir, path)
	if err != nil {
		tmplName = path
	}
	err = fsutil.WriteAtomic(dest, mode, func(out io.Writer) error {
		return r.engine.RenderTo(out, tmplName, string(data), r.bindings)
	})
	if err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}

	r.stats.Rendered++
	r.log.Debug().Str("src", path).Str("dst", dest).Msg("rendered template")
	return nil
}

func (r *run) copyAsset(path, destDir string) error {
	if !r.copyAssets {
		r.stats.Skipped++
		r.log.Debug().Str("src", path).Msg("asset left in place")
		return nil
	}
	dest, err := fsutil.CopyFile(path, destDir)
	if err != nil {
		return fmt.Errorf("copying asset: %w", err)
	}
	r.stats.Copied++
	r.log.Debug().Str("src", path).Str("dst", dest).Msg("copied asset")
	return nil
}
