package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"twig/internal/diag"
	"twig/internal/source"
	"twig/internal/token"
	"twig/internal/trace"
)

// TokenizeDirResult содержит результат токенизации одного файла
type TokenizeDirResult struct {
	Path   string        // путь к файлу
	FileID source.FileID // ID файла в FileSet
	Tokens []token.Token // Токены файла
	Bag    *diag.Bag     // Диагностики
	Cached bool
}

// ListTemplates возвращает отсортированный список шаблонов в директории
func ListTemplates(dir string, opts Options) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && opts.matches(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// TokenizeDir лексит все шаблоны в директории параллельно.
// Results are in ListTemplates order regardless of scheduling.
func TokenizeDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []TokenizeDirResult, error) {
	files, err := ListTemplates(dir, opts)
	if err != nil {
		return nil, nil, err
	}
	if opts.Tracer == nil {
		opts.Tracer = trace.FromContext(ctx)
	}
	tracer := opts.tracer()

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	span := trace.Begin(tracer, trace.ScopeDriver, "tokenize_dir").Attr("dir", dir)
	opts.dirSpan = span
	for _, path := range files {
		opts.emit(Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	// FileSet не потокобезопасен: загружаем всё заранее
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, loadErr := fileSet.LoadWith(path, source.LoadOptions{NormalizeNFC: opts.NormalizeNFC})
		if loadErr != nil {
			loadErrors[path] = loadErr
			continue
		}
		fileIDs[path] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]TokenizeDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			started := time.Now()
			if loadErr, hadError := loadErrors[path]; hadError {
				bag := diag.NewBag(opts.MaxDiagnostics)
				diag.ReportError(diag.BagReporter{Bag: bag}, diag.IOLoadFileError, "failed to load file: "+loadErr.Error()).
					In(path).
					Emit()
				results[i] = TokenizeDirResult{Path: path, Bag: bag}
				opts.emit(Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr, Elapsed: time.Since(started)})
				return nil
			}

			opts.emit(Event{File: path, Stage: StageLex, Status: StatusWorking})
			fileID := fileIDs[path]
			res := lexFile(fileSet.Get(fileID), &opts)
			results[i] = TokenizeDirResult{
				Path:   path,
				FileID: fileID,
				Tokens: res.Tokens,
				Bag:    res.Bag,
				Cached: res.Cached,
			}
			opts.emit(Event{File: path, Stage: StageLex, Status: statusFor(res.Bag), Elapsed: time.Since(started)})
			return nil
		})
	}

	err = g.Wait()
	span.End(fmt.Sprintf("%d files", len(files)))
	if err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// MergeBags собирает диагностики всех файлов в один Bag с общим лимитом.
func MergeBags(results []TokenizeDirResult, maxDiagnostics int) *diag.Bag {
	total := 0
	for i := range results {
		if results[i].Bag != nil {
			total += results[i].Bag.Len()
		}
	}
	limit := maxDiagnostics
	if limit <= 0 {
		limit = total
	}
	merged := diag.NewBag(limit)
	for i := range results {
		bag := results[i].Bag
		if bag == nil {
			continue
		}
		for _, d := range bag.Items() {
			merged.Add(d)
		}
	}
	return merged
}

// CountTokens returns the number of top-level tokens across results.
func CountTokens(results []TokenizeDirResult) uint32 {
	n := 0
	for i := range results {
		n += len(results[i].Tokens)
	}
	total, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("token count overflow: %w", err))
	}
	return total
}
