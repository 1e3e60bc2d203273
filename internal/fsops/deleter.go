package fsops

// Deleter abstracts the filesystem capabilities the sweep consumes:
// existence check, file delete, recursive directory delete.
// Enables testing the runner without touching a real filesystem.
type Deleter interface {
	Exists(path string) bool
	Size(path string) int64
	Remove(path string) error
	RemoveAll(path string) error
}
