package ownership

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"runtime"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/Sumatoshi-tech/gitowners/pkg/observability"
)

const tracerName = "gitowners/ownership"

// PathInfo describes one visited path in traversal order, root first.
type PathInfo struct {
	Path   string
	Depth  int
	IsFile bool
}

// Index holds one ownership set per visited path after a single bottom-up
// build pass. It is read-only once built; queries never mutate it.
type Index struct {
	root    string
	tracked bool
	sets    map[string]OwnershipSet
	order   []PathInfo
}

// BuildConfig controls a single index build.
type BuildConfig struct {
	// Workers bounds the blame fan-out; values <= 0 mean GOMAXPROCS.
	Workers int

	// Logger receives build progress; nil means slog.Default().
	Logger *slog.Logger

	// Tracer creates the build span; nil means the global tracer.
	Tracer trace.Tracer

	// Metrics, when set, records build counters.
	Metrics *observability.BuildMetrics
}

// BuildIndex scores every tracked file under root in parallel, then
// aggregates directories in post-order. The first fatal error cancels
// in-flight work and no partial index is returned. A root that is not
// tracked at all yields a benign empty index (see Index.Tracked).
func BuildIndex(ctx context.Context, source BlameSource, root string, cfg BuildConfig) (*Index, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}

	ctx, span := tracer.Start(ctx, "ownership.build_index",
		trace.WithAttributes(attribute.String("ownership.root", root)))
	defer span.End()

	start := time.Now()

	files, err := source.ListTrackedFiles(ctx, root)
	if errors.Is(err, ErrNotTracked) {
		logger.InfoContext(ctx, "root is not tracked, nothing to attribute", "root", root)

		return &Index{root: root, sets: map[string]OwnershipSet{}}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("list tracked files under %q: %w", root, err)
	}

	if len(files) == 0 {
		return &Index{root: root, sets: map[string]OwnershipSet{}}, nil
	}

	results, err := scoreFiles(ctx, source, files, cfg.Workers)
	if err != nil {
		span.RecordError(err)

		return nil, err
	}

	idx := assemble(root, files, results)
	summary := idx.Summarize()

	elapsed := time.Since(start)
	cfg.Metrics.RecordBuild(ctx, int64(len(files)), int64(summary.Total), elapsed)
	span.SetAttributes(
		attribute.Int("ownership.files", len(files)),
		attribute.Int("ownership.lines", summary.Total),
	)
	logger.InfoContext(ctx, "ownership index built",
		"root", root,
		"files", len(files),
		"lines", summary.Total,
		"owners", len(summary.Owners),
		"elapsed", elapsed,
	)

	return idx, nil
}

// fileResult is the outcome of scoring one listed file. Files whose blame
// reports NotTracked stay untracked and contribute zero lines.
type fileResult struct {
	set     OwnershipSet
	tracked bool
}

// scoreFiles fans per-file blames out over a bounded worker pool. Each
// worker writes only its own result slot, so the parallel phase needs no
// locking; aggregation afterwards is the fan-in barrier.
func scoreFiles(ctx context.Context, source BlameSource, files []string, workers int) ([]fileResult, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	scorer := NewFileScorer(source)
	results := make([]fileResult, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for i, file := range files {
		group.Go(func() error {
			set, err := scorer.ScoreFile(groupCtx, file)

			switch {
			case errors.Is(err, ErrNotTracked):
				// The file disappeared between listing and blame; it folds
				// into a zero contribution like any untracked path.
				return nil
			case err != nil:
				return err
			}

			results[i] = fileResult{set: set, tracked: true}

			return nil
		})
	}

	err := group.Wait()
	if err != nil {
		return nil, err
	}

	return results, nil
}

// treeNode is a transient node of the path hierarchy during assembly.
type treeNode struct {
	children map[string]*treeNode
	set      OwnershipSet
	isFile   bool
}

func newTreeNode() *treeNode {
	return &treeNode{children: make(map[string]*treeNode)}
}

// assemble builds the directory hierarchy from the scored files and
// aggregates it strictly bottom-up: children first, one combination step per
// directory, the result reusable by the parent.
func assemble(root string, files []string, results []fileResult) *Index {
	rootNode := newTreeNode()

	for i, file := range files {
		if !results[i].tracked {
			continue
		}

		if file == root {
			// The root itself is a tracked file.
			rootNode.isFile = true
			rootNode.set = results[i].set

			continue
		}

		rel := strings.TrimPrefix(strings.TrimPrefix(file, root), "/")
		rootNode.insert(strings.Split(rel, "/"), results[i].set)
	}

	idx := &Index{
		root:    root,
		tracked: true,
		sets:    make(map[string]OwnershipSet),
	}

	aggregateNode(rootNode, root)
	idx.collect(rootNode, root, 0)

	return idx
}

func (n *treeNode) insert(segments []string, set OwnershipSet) {
	if len(segments) == 1 {
		leaf := newTreeNode()
		leaf.isFile = true
		leaf.set = set
		n.children[segments[0]] = leaf

		return
	}

	child, ok := n.children[segments[0]]
	if !ok {
		child = newTreeNode()
		n.children[segments[0]] = child
	}

	child.insert(segments[1:], set)
}

// aggregateNode fills in directory sets post-order and returns the node's
// own set.
func aggregateNode(node *treeNode, nodePath string) OwnershipSet {
	if node.isFile {
		return node.set
	}

	names := sortedChildNames(node)

	childSets := make([]OwnershipSet, 0, len(names))
	for _, name := range names {
		childSets = append(childSets, aggregateNode(node.children[name], path.Join(nodePath, name)))
	}

	node.set = Aggregate(nodePath, childSets...)

	return node.set
}

// collect records paths pre-order (root first, children in name order) so
// renderers see the natural traversal order.
func (idx *Index) collect(node *treeNode, nodePath string, depth int) {
	idx.sets[nodePath] = node.set
	idx.order = append(idx.order, PathInfo{Path: nodePath, Depth: depth, IsFile: node.isFile})

	for _, name := range sortedChildNames(node) {
		idx.collect(node.children[name], path.Join(nodePath, name), depth+1)
	}
}

func sortedChildNames(node *treeNode) []string {
	names := make([]string, 0, len(node.children))
	for name := range node.children {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Root returns the repository-relative root the index was built for.
func (idx *Index) Root() string {
	return idx.root
}

// Tracked reports whether the root had any tracked content at all. An
// untracked root is a benign "no owners" outcome, not an error.
func (idx *Index) Tracked() bool {
	return idx.tracked
}

// Get returns the ownership set stored for a visited path.
func (idx *Index) Get(p string) (OwnershipSet, bool) {
	set, ok := idx.sets[p]

	return set, ok
}

// Paths returns every visited path in traversal order, root first.
func (idx *Index) Paths() []PathInfo {
	return idx.order
}

// FilePaths returns the tracked file paths in traversal order.
func (idx *Index) FilePaths() []string {
	files := make([]string, 0, len(idx.order))

	for _, info := range idx.order {
		if info.IsFile {
			files = append(files, info.Path)
		}
	}

	return files
}

// Summarize returns the aggregated set for the root. It is an accessor for
// the value stored by the bottom-up build, never a recomputation.
func (idx *Index) Summarize() OwnershipSet {
	return idx.sets[idx.root]
}
