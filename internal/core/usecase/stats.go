package usecase

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/avolkov/dirscope/internal/core/domain"
)

type StatsUseCase struct{}

func NewStatsUseCase() *StatsUseCase {
	return &StatsUseCase{}
}

// Aggregate builds the chart-ready distributions and the directory treemap
// for a categorized record set.
func (uc *StatsUseCase) Aggregate(records []*domain.FileRecord) (*domain.DirectoryStats, error) {
	if len(records) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "aggregate stats", errors.New("no file data available"))
	}
	return &domain.DirectoryStats{
		Categories: categoryDistribution(records),
		Sizes:      sizeDistribution(records),
		Extensions: extensionDistribution(records),
		Months:     timeDistribution(records),
		Tree:       directoryTree(records),
	}, nil
}

func categoryDistribution(records []*domain.FileRecord) domain.CategoryDistribution {
	labels := make([]string, 0)
	counts := make(map[string]int)
	sizes := make(map[string]int64)

	for _, rec := range records {
		category := rec.Category
		if category == "" {
			category = domain.CategoryOther
		}
		if _, seen := counts[category]; !seen {
			labels = append(labels, category)
		}
		counts[category]++
		sizes[category] += rec.SizeBytes
	}

	dist := domain.CategoryDistribution{Labels: labels}
	for _, label := range labels {
		dist.Counts = append(dist.Counts, counts[label])
		dist.Sizes = append(dist.Sizes, sizes[label])
		dist.TotalFiles += counts[label]
		dist.TotalSize += sizes[label]
	}
	return dist
}

var sizeBucketLabels = []string{
	"0-1 KB",
	"1-10 KB",
	"10-100 KB",
	"100 KB - 1 MB",
	"1-10 MB",
	"10-100 MB",
	">100 MB",
}

var sizeBucketBounds = []int64{
	1 << 10,
	10 << 10,
	100 << 10,
	1 << 20,
	10 << 20,
	100 << 20,
}

func sizeDistribution(records []*domain.FileRecord) domain.BucketDistribution {
	counts := make([]int, len(sizeBucketLabels))
	for _, rec := range records {
		idx := len(sizeBucketBounds)
		for i, bound := range sizeBucketBounds {
			if rec.SizeBytes < bound {
				idx = i
				break
			}
		}
		counts[idx]++
	}
	return domain.BucketDistribution{Labels: sizeBucketLabels, Counts: counts}
}

func extensionDistribution(records []*domain.FileRecord) domain.BucketDistribution {
	order := make([]string, 0)
	counts := make(map[string]int)
	for _, rec := range records {
		ext := strings.ToLower(rec.Extension)
		if ext == "" {
			ext = "no extension"
		}
		if _, seen := counts[ext]; !seen {
			order = append(order, ext)
		}
		counts[ext]++
	}

	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > 10 {
		order = order[:10]
	}

	dist := domain.BucketDistribution{Labels: order}
	for _, ext := range order {
		dist.Counts = append(dist.Counts, counts[ext])
	}
	return dist
}

func timeDistribution(records []*domain.FileRecord) domain.BucketDistribution {
	counts := make(map[string]int)
	for _, rec := range records {
		counts[fmt.Sprintf("%d-%02d", rec.Modified.Year(), int(rec.Modified.Month()))]++
	}

	months := make([]string, 0, len(counts))
	for month := range counts {
		months = append(months, month)
	}
	sort.Strings(months)

	dist := domain.BucketDistribution{Labels: months}
	for _, month := range months {
		dist.Counts = append(dist.Counts, counts[month])
	}
	return dist
}

// directoryTree nests files under their relative directories for treemap and
// sunburst rendering.
func directoryTree(records []*domain.FileRecord) *domain.TreeNode {
	root := &domain.TreeNode{Name: "root", Children: []*domain.TreeNode{}}

	for _, rec := range records {
		dir := filepath.Dir(rec.RelativePath)
		current := root
		if dir != "." && dir != "" {
			for _, part := range strings.Split(dir, string(filepath.Separator)) {
				if part == "" {
					continue
				}
				current = childDir(current, part)
			}
		}
		current.Children = append(current.Children, &domain.TreeNode{
			Name:     rec.Name,
			Size:     rec.SizeBytes,
			Category: rec.Category,
		})
	}
	return root
}

// childDir finds or creates the directory node with the given name. Directory
// nodes always carry a non-nil Children slice; file leaves never do.
func childDir(parent *domain.TreeNode, name string) *domain.TreeNode {
	for _, child := range parent.Children {
		if child.Name == name && child.Children != nil {
			return child
		}
	}
	child := &domain.TreeNode{Name: name, Children: []*domain.TreeNode{}}
	parent.Children = append(parent.Children, child)
	return child
}
