package domain

type CategoryDistribution struct {
	Labels     []string `json:"labels"`
	Counts     []int    `json:"counts"`
	Sizes      []int64  `json:"sizes"`
	TotalFiles int      `json:"total_files"`
	TotalSize  int64    `json:"total_size"`
}

type BucketDistribution struct {
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
}

// TreeNode is one node of the directory treemap. Leaf nodes carry file size
// and category; directory nodes only carry children.
type TreeNode struct {
	Name     string      `json:"name"`
	Size     int64       `json:"size,omitempty"`
	Category string      `json:"category,omitempty"`
	Children []*TreeNode `json:"children,omitempty"`
}

type DirectoryStats struct {
	Categories CategoryDistribution `json:"category_distribution"`
	Sizes      BucketDistribution   `json:"size_distribution"`
	Extensions BucketDistribution   `json:"extension_distribution"`
	Months     BucketDistribution   `json:"time_distribution"`
	Tree       *TreeNode            `json:"directory_tree"`
}
