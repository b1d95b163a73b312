package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"lupin/internal/ast"
	"lupin/internal/diag"
	"lupin/internal/source"
	"lupin/internal/token"
	"lupin/internal/trace"
)

// TokenizeDirResult содержит результат токенизации одного файла
type TokenizeDirResult struct {
	Path   string
	FileID source.FileID
	Tokens []token.Token
	Bag    *diag.Bag
	Cached bool
}

// ParseDirResult содержит результат парсинга одного файла
type ParseDirResult struct {
	Path   string
	FileID source.FileID
	Tokens []token.Token
	Root   *ast.Root // nil, если файл не распарсился
	Bag    *diag.Bag
}

// listSourceFiles возвращает отсортированный список всех *.lp файлов в директории
func listSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// dirBatch is the preloaded state shared by the *Dir runners. FileSet is
// not safe for concurrent Add, so every file is loaded before workers start.
type dirBatch struct {
	fileSet    *source.FileSet
	files      []string
	fileIDs    map[string]source.FileID
	loadErrors map[string]error
}

func loadDir(dir string, opts Options) (*dirBatch, error) {
	files, err := listSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	b := &dirBatch{
		fileSet:    source.NewFileSetWithBase(dir),
		files:      files,
		fileIDs:    make(map[string]source.FileID, len(files)),
		loadErrors: make(map[string]error),
	}
	for _, path := range files {
		id, err := loadFile(opts, b.fileSet, path)
		if err != nil {
			b.loadErrors[path] = err
			continue
		}
		b.fileIDs[path] = id
	}
	return b, nil
}

type fileFunc func(ctx context.Context, i int, file *source.File, bag *diag.Bag)

// run calls fn for every file on a bounded errgroup. Each call owns index
// i of the caller's result slice, so no locking is needed.
func (b *dirBatch) run(ctx context.Context, pass string, stage Stage, opts Options, fn fileFunc, onLoadErr func(i int, bag *diag.Bag)) error {
	if len(b.files) == 0 {
		return nil
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	tracer := trace.FromContext(ctx)
	passSpan := trace.Begin(tracer, trace.ScopePass, pass, trace.CurrentSpan(ctx)).
		WithExtra("files", strconv.Itoa(len(b.files)))
	defer passSpan.End("")

	for _, path := range b.files {
		opts.emit(ctx, FileEvent{Path: path, Stage: stage, Status: StatusQueued})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(b.files)))

	for i, path := range b.files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bag := diag.NewBag(opts.MaxDiagnostics)
			if loadErr, failed := b.loadErrors[path]; failed {
				bag.Add(loadDiagnostic(path, loadErr))
				onLoadErr(i, bag)
				opts.emit(gctx, FileEvent{Path: path, Stage: stage, Status: StatusError})
				return nil
			}
			opts.emit(gctx, FileEvent{Path: path, Stage: stage, Status: StatusWorking})

			fileSpan := trace.BeginDepth(tracer, trace.ScopeFile, "file:"+path, passSpan.ID(), 1)
			fctx := trace.WithSpan(gctx, fileSpan)
			fn(fctx, i, b.fileSet.Get(b.fileIDs[path]), bag)
			fileSpan.End("")

			status := StatusDone
			if bag.HasErrors() {
				status = StatusError
			}
			opts.emit(gctx, FileEvent{Path: path, Stage: stage, Status: status})
			return nil
		})
	}
	return g.Wait()
}

// TokenizeDir токенизирует все *.lp файлы в директории параллельно.
// Results follow the sorted file order.
func TokenizeDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []TokenizeDirResult, error) {
	opts = opts.withDefaults()

	b, err := loadDir(dir, opts)
	if err != nil {
		return nil, nil, err
	}
	results := make([]TokenizeDirResult, len(b.files))

	err = b.run(ctx, "tokenize-dir", StageLex, opts, func(ctx context.Context, i int, file *source.File, bag *diag.Bag) {
		toks, cached := tokenizeFile(ctx, file, bag, opts)
		results[i] = TokenizeDirResult{
			Path:   b.files[i],
			FileID: file.ID,
			Tokens: toks,
			Bag:    bag,
			Cached: cached,
		}
	}, func(i int, bag *diag.Bag) {
		results[i] = TokenizeDirResult{Path: b.files[i], Bag: bag}
	})
	return b.fileSet, results, err
}

// ParseDir парсит все *.lp файлы в директории параллельно
func ParseDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []ParseDirResult, error) {
	opts = opts.withDefaults()

	b, err := loadDir(dir, opts)
	if err != nil {
		return nil, nil, err
	}
	results := make([]ParseDirResult, len(b.files))

	err = b.run(ctx, "parse-dir", StageParse, opts, func(ctx context.Context, i int, file *source.File, bag *diag.Bag) {
		toks, root := parseFile(ctx, file, bag, opts)
		results[i] = ParseDirResult{
			Path:   b.files[i],
			FileID: file.ID,
			Tokens: toks,
			Root:   root,
			Bag:    bag,
		}
	}, func(i int, bag *diag.Bag) {
		results[i] = ParseDirResult{Path: b.files[i], Bag: bag}
	})
	return b.fileSet, results, err
}
