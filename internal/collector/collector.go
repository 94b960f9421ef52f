package collector

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/ppiankov/s4spectre/internal/analyzer"
	"github.com/ppiankov/s4spectre/internal/models"
)

// Config holds configuration for the collector
type Config struct {
	MaxConcurrency int
	Timeout        time.Duration
	Logger         *slog.Logger
}

// Collector loads sidecar datasets (interface inventory, ATC results, usage data)
type Collector struct {
	config Config
	logger *slog.Logger
}

// Dataset is one parsed sidecar file
type Dataset struct {
	Path  string
	Kind  DatasetKind
	Value interface{}
}

// New creates a new collector with the given configuration
func New(config Config) *Collector {
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = 4
	}
	if config.Timeout <= 0 {
		config.Timeout = time.Minute
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Collector{
		config: config,
		logger: logger,
	}
}

// LoadFile reads one dataset file and detects its kind
func (c *Collector) LoadFile(path string) (*Dataset, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	kind, err := DetectKind(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	value, err := ParseDataset(data, format, kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	return &Dataset{Path: path, Kind: kind, Value: value}, nil
}

// LoadExpected loads path and fails unless it holds the expected kind
func (c *Collector) LoadExpected(path string, want DatasetKind) (*Dataset, error) {
	ds, err := c.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if ds.Kind != want {
		return nil, fmt.Errorf("%s holds %s data, expected %s", filepath.Base(path), ds.Kind, want)
	}
	return ds, nil
}

// CollectFromDirectory loads every JSON/YAML dataset below dir and merges
// datasets of the same kind. Files whose kind cannot be detected are skipped.
func (c *Collector) CollectFromDirectory(ctx context.Context, dir string) (analyzer.Enrichment, error) {
	files, err := c.findDatasetFiles(dir)
	if err != nil {
		return analyzer.Enrichment{}, fmt.Errorf("failed to find dataset files: %w", err)
	}
	if len(files) == 0 {
		return analyzer.Enrichment{}, fmt.Errorf("no dataset files found in directory: %s", dir)
	}
	c.logger.Debug("collecting datasets", "dir", dir, "files", len(files))

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	datasets, err := c.collectFiles(ctx, files)
	if err != nil {
		return analyzer.Enrichment{}, err
	}
	return Merge(datasets), nil
}

func (c *Collector) findDatasetFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, err := FormatForPath(path); err == nil {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

type collectResult struct {
	file    string
	dataset *Dataset
	err     error
}

// collectFiles processes files concurrently using a worker pool.
// Results come back sorted by path.
func (c *Collector) collectFiles(ctx context.Context, files []string) ([]*Dataset, error) {
	fileCh := make(chan string, len(files))
	resultCh := make(chan *collectResult, len(files))

	var wg sync.WaitGroup
	for i := 0; i < c.config.MaxConcurrency; i++ {
		wg.Add(1)
		go c.worker(ctx, &wg, fileCh, resultCh)
	}

	for _, file := range files {
		fileCh <- file
	}
	close(fileCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	var datasets []*Dataset
	failed := 0
	for result := range resultCh {
		if result.err != nil {
			failed++
			c.logger.Warn("skipping dataset file", "file", result.file, "error", result.err)
			continue
		}
		c.logger.Debug("collected dataset", "file", result.file, "kind", result.dataset.Kind)
		datasets = append(datasets, result.dataset)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("collecting datasets: %w", err)
	}
	if len(datasets) == 0 {
		return nil, fmt.Errorf("all dataset files failed to load (%d errors)", failed)
	}

	sort.Slice(datasets, func(i, j int) bool {
		return datasets[i].Path < datasets[j].Path
	})
	return datasets, nil
}

func (c *Collector) worker(ctx context.Context, wg *sync.WaitGroup, fileCh <-chan string, resultCh chan<- *collectResult) {
	defer wg.Done()

	for file := range fileCh {
		if ctx.Err() != nil {
			return
		}
		ds, err := c.LoadFile(file)
		resultCh <- &collectResult{file: file, dataset: ds, err: err}
	}
}

// Merge folds datasets into one Enrichment. Lists of the same kind are
// concatenated in input order; the first declared interface complexity wins.
func Merge(datasets []*Dataset) analyzer.Enrichment {
	var e analyzer.Enrichment

	for _, ds := range datasets {
		switch v := ds.Value.(type) {
		case *models.InterfaceInventory:
			if e.Interfaces == nil {
				e.Interfaces = &models.InterfaceInventory{Interfaces: []models.InterfaceInfo{}}
			}
			if e.Interfaces.Complexity == "" {
				e.Interfaces.Complexity = v.Complexity
			}
			e.Interfaces.Interfaces = append(e.Interfaces.Interfaces, v.Interfaces...)
		case *models.ATCResult:
			if e.ATC == nil {
				e.ATC = &models.ATCResult{Findings: []models.ATCFinding{}}
			}
			e.ATC.Findings = append(e.ATC.Findings, v.Findings...)
		case *models.UsageData:
			if e.Usage == nil {
				e.Usage = &models.UsageData{Entries: []models.UsageEntry{}}
			}
			e.Usage.Entries = append(e.Usage.Entries, v.Entries...)
		}
	}

	return e
}
