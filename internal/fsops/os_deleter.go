package fsops

import "os"

// OSDeleter implements Deleter using real os package calls
type OSDeleter struct{}

// Exists reports whether path is visible via stat. Any stat failure,
// permission errors included, counts as absent; the subsequent delete
// attempt surfaces the real error if one matters.
func (OSDeleter) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Size returns the stat size of path, or 0 when the path is absent or
// unreadable. Directory sizes are whatever the filesystem reports for
// the directory entry itself, not a recursive total.
func (OSDeleter) Size(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

func (OSDeleter) Remove(path string) error {
	return os.Remove(path)
}

func (OSDeleter) RemoveAll(path string) error {
	return os.RemoveAll(path)
}
