package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/avolkov/dirscope/internal/core/domain"
)

func statsRecords() []*domain.FileRecord {
	jan := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	return []*domain.FileRecord{
		{Name: "a.pdf", RelativePath: "a.pdf", Extension: "pdf", SizeBytes: 2048, Modified: jan, Category: domain.CategoryDocuments},
		{Name: "b.pdf", RelativePath: "sub/b.pdf", Extension: "pdf", SizeBytes: 512, Modified: mar, Category: domain.CategoryDocuments},
		{Name: "c.png", RelativePath: "sub/c.png", Extension: "png", SizeBytes: 5 << 20, Modified: mar, Category: domain.CategoryImages},
	}
}

func TestAggregateRejectsEmptyInput(t *testing.T) {
	_, err := NewStatsUseCase().Aggregate(nil)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}

func TestAggregateCategoryDistribution(t *testing.T) {
	stats, err := NewStatsUseCase().Aggregate(statsRecords())
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	cats := stats.Categories
	if len(cats.Labels) != 2 || cats.Labels[0] != domain.CategoryDocuments {
		t.Fatalf("labels = %v", cats.Labels)
	}
	if cats.Counts[0] != 2 || cats.Counts[1] != 1 {
		t.Fatalf("counts = %v", cats.Counts)
	}
	if cats.Sizes[0] != 2560 {
		t.Fatalf("documents size = %d", cats.Sizes[0])
	}
	if cats.TotalFiles != 3 {
		t.Fatalf("total files = %d", cats.TotalFiles)
	}
}

func TestAggregateSizeBuckets(t *testing.T) {
	stats, err := NewStatsUseCase().Aggregate(statsRecords())
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	// 2048 and 512+... : 512 B falls in 0-1 KB, 2048 in 1-10 KB, 5 MB in 1-10 MB.
	sizes := stats.Sizes
	if sizes.Counts[0] != 1 || sizes.Counts[1] != 1 || sizes.Counts[4] != 1 {
		t.Fatalf("size buckets = %v", sizes.Counts)
	}
}

func TestAggregateTimeDistributionSortsMonths(t *testing.T) {
	stats, err := NewStatsUseCase().Aggregate(statsRecords())
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	months := stats.Months
	if len(months.Labels) != 2 || months.Labels[0] != "2026-01" || months.Labels[1] != "2026-03" {
		t.Fatalf("months = %v", months.Labels)
	}
	if months.Counts[1] != 2 {
		t.Fatalf("march count = %d", months.Counts[1])
	}
}

func TestAggregateDirectoryTreeNesting(t *testing.T) {
	stats, err := NewStatsUseCase().Aggregate(statsRecords())
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	root := stats.Tree
	if root.Name != "root" || len(root.Children) != 2 {
		t.Fatalf("root = %+v", root)
	}

	var sub *domain.TreeNode
	for _, child := range root.Children {
		if child.Name == "sub" && child.Children != nil {
			sub = child
		}
	}
	if sub == nil {
		t.Fatal("missing sub directory node")
	}
	if len(sub.Children) != 2 {
		t.Fatalf("sub has %d children", len(sub.Children))
	}
	for _, leaf := range sub.Children {
		if leaf.Children != nil {
			t.Fatalf("file leaf %s has children slice", leaf.Name)
		}
	}
}
