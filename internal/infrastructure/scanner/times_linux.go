//go:build linux

package scanner

import (
	"io/fs"
	"syscall"
	"time"
)

// statTimes pulls change and access times out of the underlying stat when the
// platform exposes them.
func statTimes(info fs.FileInfo) (created, accessed time.Time) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.ModTime(), info.ModTime()
	}
	created = time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
	accessed = time.Unix(st.Atim.Sec, st.Atim.Nsec)
	return created, accessed
}
