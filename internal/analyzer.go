package internal

import (
	"context"
	"fmt"
	"os"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"
)

// minShardSize keeps tiny transcripts on the sequential path
var minShardSize = 1024

// Analyzer runs the whole pipeline: parse, check order, fold, segment
type Analyzer struct {
	cfg        Config
	normalizer *Normalizer
	classifier *Classifier
	localizer  *Localizer
	segmenter  *Segmenter
	durations  DurationLookup
	sizes      SizeLookup
}

// NewAnalyzer builds an Analyzer from cfg
func NewAnalyzer(cfg Config) *Analyzer {
	return &Analyzer{
		cfg:        cfg,
		normalizer: cfg.Normalizer(),
		classifier: cfg.Classifier(),
		localizer:  cfg.Localizer(),
		segmenter:  cfg.Segmenter(),
		durations:  cfg.Durations(),
		sizes:      cfg.Sizes(),
	}
}

// Config returns the analyzer's settings
func (a *Analyzer) Config() Config {
	return a.cfg
}

func (a *Analyzer) parserOptions() ParserOptions {
	return ParserOptions{
		Year:       a.cfg.Year,
		Normalizer: a.normalizer,
		Classifier: a.classifier,
	}
}

func (a *Analyzer) aggregatorOptions() AggregatorOptions {
	return AggregatorOptions{
		StarterGap: time.Duration(a.cfg.StarterGap),
		Localizer:  a.localizer,
		Durations:  a.durations,
		Sizes:      a.sizes,
		Stopwords:  a.classifier.Stopwords(),
	}
}

// ParseFile parses one transcript file
func (a *Analyzer) ParseFile(path string) ([]Message, ParseDiagnostics, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ParseDiagnostics{}, &StorageError{Path: path, Op: "open", Err: err}
	}
	defer f.Close()

	msgs, diag, err := ParseTranscript(f, a.parserOptions())
	if err != nil {
		return nil, diag, &StorageError{Path: path, Op: "read", Err: err}
	}
	LogDebug("parsed %s: %d lines, %d messages", path, diag.LinesRead, diag.Messages)
	return msgs, diag, nil
}

// ParseFiles parses several exports of the same chat. With more than one
// file the messages are merged chronologically and duplicates removed.
func (a *Analyzer) ParseFiles(paths []string) ([]Message, ParseDiagnostics, error) {
	var all []Message
	var diag ParseDiagnostics
	dedup := NewDeduplicator()
	for _, path := range paths {
		msgs, d, err := a.ParseFile(path)
		if err != nil {
			return nil, diag, err
		}
		diag.Add(d)
		if len(paths) > 1 {
			var dropped int
			msgs, dropped = dedup.Deduplicate(msgs)
			diag.Duplicates += dropped
			diag.Messages -= dropped
		}
		all = append(all, msgs...)
	}

	if len(paths) > 1 {
		SortMessages(all)
	}
	return all, diag, nil
}

// LoadArchive reads the messages archived at path, applying the year filter
func (a *Analyzer) LoadArchive(ctx context.Context, path string) ([]Message, ParseDiagnostics, error) {
	store, err := OpenStorage(path)
	if err != nil {
		return nil, ParseDiagnostics{}, err
	}
	defer store.Close()

	archived, err := store.LoadMessages(ctx, a.classifier)
	if err != nil {
		return nil, ParseDiagnostics{}, &StorageError{Path: path, Op: "query", Err: err}
	}

	var diag ParseDiagnostics
	msgs := archived[:0]
	for _, m := range archived {
		if a.cfg.Year != 0 && m.Timestamp.Year() != a.cfg.Year {
			diag.YearFiltered++
			continue
		}
		msgs = append(msgs, m)
	}
	diag.Messages = len(msgs)
	return msgs, diag, nil
}

// SortMessages orders msgs by timestamp, keeping file order for equal times
func SortMessages(msgs []Message) {
	slices.SortStableFunc(msgs, func(x, y Message) int {
		return x.Timestamp.Compare(y.Timestamp)
	})
}

// CheckOrder returns the index of the first message older than its
// predecessor, or -1 when msgs is chronological
func CheckOrder(msgs []Message) int {
	for i := 1; i < len(msgs); i++ {
		if msgs[i].Timestamp.Before(msgs[i-1].Timestamp) {
			return i
		}
	}
	return -1
}

// Analyze computes statistics for msgs. It returns an InvariantError for an
// empty transcript, and for out-of-order timestamps unless the config allows
// sorting, in which case msgs is sorted in place and a warning returned.
func (a *Analyzer) Analyze(ctx context.Context, msgs []Message) (*ChatStatistics, []string, error) {
	var warnings []string
	if len(msgs) == 0 {
		return nil, nil, &InvariantError{Kind: InvariantEmpty, Detail: "transcript has no messages"}
	}

	if i := CheckOrder(msgs); i >= 0 {
		detail := fmt.Sprintf("message %d (%s) is older than message %d (%s)",
			i, msgs[i].Timestamp.Format(time.DateTime), i-1, msgs[i-1].Timestamp.Format(time.DateTime))
		if !a.cfg.SortMessages {
			return nil, nil, &InvariantError{Kind: InvariantOrder, Detail: detail}
		}
		SortMessages(msgs)
		warnings = append(warnings, "timestamps out of order, messages were sorted: "+detail)
		LogWarn("timestamps out of order, sorting: %s", detail)
	}

	stats, err := Fold(ctx, msgs, a.cfg.Workers, a.aggregatorOptions())
	if err != nil {
		return nil, warnings, err
	}

	stats.LongestConversation = a.segmenter.LongestConversation(msgs)
	stats.Year = a.cfg.Year
	if stats.Year == 0 {
		stats.Year = msgs[0].Timestamp.Year()
	}
	stats.Language = DetectLanguage(msgs)
	return stats, warnings, nil
}

// AnalyzeFiles parses and analyzes paths into a Report
func (a *Analyzer) AnalyzeFiles(ctx context.Context, paths []string) (*Report, error) {
	msgs, diag, err := a.ParseFiles(paths)
	if err != nil {
		return nil, err
	}
	return a.BuildReport(ctx, paths, msgs, diag)
}

// BuildReport analyzes already parsed messages into a Report
func (a *Analyzer) BuildReport(ctx context.Context, sources []string, msgs []Message, diag ParseDiagnostics) (*Report, error) {
	stats, warnings, err := a.Analyze(ctx, msgs)
	if err != nil {
		return nil, err
	}
	return &Report{
		ID:          ReportID(sources, a.cfg.Fingerprint()),
		Title:       ReportTitle(sources),
		Sources:     sources,
		GeneratedAt: time.Now().UTC(),
		Stats:       stats,
		Messages:    msgs,
		Diagnostics: diag,
		Warnings:    warnings,
	}, nil
}

// Fold aggregates msgs. With workers > 1 the list is split into contiguous
// shards folded concurrently and merged; the result matches a single pass.
func Fold(ctx context.Context, msgs []Message, workers int, opts AggregatorOptions) (*ChatStatistics, error) {
	shards := workers
	if shards > len(msgs)/minShardSize {
		shards = len(msgs) / minShardSize
	}
	if shards <= 1 {
		agg := NewAggregator(opts)
		for i := range msgs {
			agg.Add(i, &msgs[i])
		}
		return agg.Finalize(), nil
	}
	return foldSharded(ctx, msgs, shards, opts)
}

func foldSharded(ctx context.Context, msgs []Message, shards int, opts AggregatorOptions) (*ChatStatistics, error) {
	size := (len(msgs) + shards - 1) / shards
	aggs := make([]*Aggregator, shards)

	g, ctx := errgroup.WithContext(ctx)
	for s := 0; s < shards; s++ {
		start := s * size
		end := min(start+size, len(msgs))
		agg := NewAggregator(opts)
		aggs[s] = agg
		if start >= end {
			continue
		}
		g.Go(func() error {
			if start > 0 {
				agg.Seed(msgs[start-1].Timestamp)
			}
			for i := start; i < end; i++ {
				if i%minShardSize == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				agg.Add(i, &msgs[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to aggregate messages: %w", err)
	}

	LogDebug("merging %d shards of %d messages", shards, size)
	for _, agg := range aggs[1:] {
		aggs[0].Merge(agg)
	}
	return aggs[0].Finalize(), nil
}
