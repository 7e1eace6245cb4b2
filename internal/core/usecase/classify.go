package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/avolkov/dirscope/internal/core/domain"
	"github.com/avolkov/dirscope/internal/core/ports"
)

// minClusterCorpus is the smallest corpus the fallback grouper is fit on.
// Below it the statistical model is too weak to mean anything and unresolved
// records simply stay in Other.
const minClusterCorpus = 10

type ClassifyFilesUseCase struct {
	rules   domain.RuleSet
	grouper ports.ClusterGrouper
	logger  *slog.Logger
}

func NewClassifyFilesUseCase(rules domain.RuleSet, grouper ports.ClusterGrouper, logger *slog.Logger) *ClassifyFilesUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClassifyFilesUseCase{
		rules:   rules,
		grouper: grouper,
		logger:  logger,
	}
}

// Classify runs the full categorization pipeline over records, mutating them
// in place and returning the same slice. Stage order is part of the contract:
// extension table, subject + generic heuristics, cluster fallback for records
// still in Other, generic heuristics again so system-file rules beat cluster
// labels, and finally consensus regrouping by base filename. No stage ever
// fails the call; model errors degrade to leaving records in Other.
func (uc *ClassifyFilesUseCase) Classify(_ context.Context, records []*domain.FileRecord) []*domain.FileRecord {
	for _, rec := range records {
		rec.Category = uc.categoryForExtension(rec.Extension)
	}

	for _, rec := range records {
		applySubjectRules(uc.rules.Subjects, rec)
		applyGenericRules(rec)
	}

	uc.applyClusterFallback(records)

	// Generic rules are unconditional and must also win over cluster labels.
	for _, rec := range records {
		applyGenericRules(rec)
	}

	regroupByConsensus(records)

	return records
}

func (uc *ClassifyFilesUseCase) categoryForExtension(ext string) string {
	if category, ok := uc.rules.Extensions[lower(ext)]; ok {
		return category
	}
	return domain.CategoryOther
}

func (uc *ClassifyFilesUseCase) applyClusterFallback(records []*domain.FileRecord) {
	unresolved := make([]int, 0, len(records))
	for i, rec := range records {
		if rec.Category == domain.CategoryOther {
			unresolved = append(unresolved, i)
		}
	}
	if len(unresolved) == 0 || uc.grouper == nil {
		return
	}
	if len(records) < minClusterCorpus {
		uc.logger.Warn("corpus too small for cluster fallback",
			"corpus", len(records), "unresolved", len(unresolved))
		return
	}

	// The model trains on every filename, not just the unresolved subset.
	corpus := make([]string, len(records))
	for i, rec := range records {
		corpus[i] = rec.Name
	}
	targets := make([]string, len(unresolved))
	for i, idx := range unresolved {
		targets[i] = records[idx].Name
	}

	groups, err := uc.grouper.Group(corpus, targets)
	if err != nil {
		uc.logger.Error("cluster fallback failed, records stay in Other", "error", err)
		return
	}
	if len(groups) != len(targets) {
		uc.logger.Error("cluster fallback returned mismatched assignments",
			"targets", len(targets), "assignments", len(groups))
		return
	}

	for i, idx := range unresolved {
		records[idx].Category = fmt.Sprintf("Group %d", groups[i]+1)
	}
}
