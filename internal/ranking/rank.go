package ranking

import (
	"context"
	"sort"

	"github.com/jonathan/assessment-engine/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultParallelism = 4

// RankResumes analyzes every record against job and returns the analyses sorted by
// overall score, highest first, with Rank assigned from 1. Ties keep input order.
// Records that yield no analysis are skipped.
func (a *Analyzer) RankResumes(ctx context.Context, records []*types.ResumeRecord, job types.JobRequirement) ([]types.ResumeAnalysis, error) {
	results := make([]*types.ResumeAnalysis, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.parallel)
	for i, record := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = a.AnalyzeResume(gctx, record, job)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ranked := make([]types.ResumeAnalysis, 0, len(results))
	for _, analysis := range results {
		if analysis != nil {
			ranked = append(ranked, *analysis)
		}
	}

	SortByScore(ranked)

	a.logger.Info("ranked resumes", zap.Int("resumes", len(records)), zap.Int("ranked", len(ranked)))
	return ranked, nil
}

// SortByScore orders analyses by overall score, highest first, and assigns Rank.
func SortByScore(analyses []types.ResumeAnalysis) {
	sort.SliceStable(analyses, func(i, j int) bool {
		return analyses[i].OverallScore > analyses[j].OverallScore
	})
	for i := range analyses {
		analyses[i].Rank = i + 1
	}
}
