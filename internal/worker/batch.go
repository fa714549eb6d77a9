package worker

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/citehunt/citehunt/internal/corpus"
	"github.com/citehunt/citehunt/internal/model"
)

// ArticleProcessor runs the per-article flow. Implemented by the
// pipeline; an interface here keeps the dependency one-way.
type ArticleProcessor interface {
	ProcessArticle(ctx context.Context, article model.Article) model.ArticleResult
}

// ArticleJob processes one article through a processor.
type ArticleJob struct {
	Seq       int
	Article   model.Article
	Processor ArticleProcessor
}

// Execute implements Job.
func (j *ArticleJob) Execute(ctx context.Context) Result {
	return &ArticleOutcome{Seq: j.Seq, Article: j.Processor.ProcessArticle(ctx, j.Article)}
}

// ArticleOutcome is the result of processing one article.
type ArticleOutcome struct {
	Seq     int
	Article model.ArticleResult
	Err     error
}

// GetError implements Result.
func (o *ArticleOutcome) GetError() error {
	return o.Err
}

// BatchProcessor streams a dump through a worker pool of article
// processors.
type BatchProcessor struct {
	processor ArticleProcessor
	workers   int
	// maxArticles stops the scan after that many articles; 0 scans the
	// whole dump.
	maxArticles int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(processor ArticleProcessor, workers, maxArticles int) *BatchProcessor {
	return &BatchProcessor{processor: processor, workers: workers, maxArticles: maxArticles}
}

var errScanDone = errors.New("scan done")

// ProcessDump streams the dump at dumpPath through the pool and returns
// the article results in dump order, keeping only articles that yielded
// claims.
func (b *BatchProcessor) ProcessDump(ctx context.Context, dumpPath string, reader *corpus.DumpReader) ([]model.ArticleResult, error) {
	src, err := corpus.Open(dumpPath)
	if err != nil {
		return nil, fmt.Errorf("open dump: %w", err)
	}
	defer func() { _ = src.Close() }()

	pool := NewPool(b.workers)
	pool.Start()

	// Results are drained while the dump is still being read; a dump
	// holds far more articles than the pool buffers.
	var outcomes []*ArticleOutcome
	drained := pool.Collect(func(result Result) {
		if outcome, ok := result.(*ArticleOutcome); ok {
			outcomes = append(outcomes, outcome)
		}
	})

	seq := 0
	err = reader.ForEach(src, func(article model.Article) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		pool.Submit(&ArticleJob{Seq: seq, Article: article, Processor: b.processor})
		seq++

		if b.maxArticles > 0 && seq >= b.maxArticles {
			return errScanDone
		}
		return nil
	})

	pool.Close()
	<-drained

	if err != nil && !errors.Is(err, errScanDone) {
		return nil, fmt.Errorf("read dump: %w", err)
	}
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].Seq < outcomes[j].Seq })

	var articles []model.ArticleResult
	for _, outcome := range outcomes {
		if len(outcome.Article.Claims) > 0 {
			articles = append(articles, outcome.Article)
		}
	}
	return articles, nil
}
