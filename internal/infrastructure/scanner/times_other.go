//go:build !linux

package scanner

import (
	"io/fs"
	"time"
)

func statTimes(info fs.FileInfo) (created, accessed time.Time) {
	return info.ModTime(), info.ModTime()
}
