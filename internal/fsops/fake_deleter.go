package fsops

// FakeDeleter implements Deleter for testing
// Seeded with the paths that "exist", records every delete call in
// order, and injects failures per path.
type FakeDeleter struct {
	Present map[string]bool
	Sizes   map[string]int64
	Errs    map[string]error
	Calls   []string
}

// NewFakeDeleter returns a fake where the given paths exist.
func NewFakeDeleter(present ...string) *FakeDeleter {
	f := &FakeDeleter{
		Present: make(map[string]bool),
		Sizes:   make(map[string]int64),
		Errs:    make(map[string]error),
	}
	for _, p := range present {
		f.Present[p] = true
	}
	return f
}

func (f *FakeDeleter) Exists(path string) bool {
	return f.Present[path]
}

func (f *FakeDeleter) Size(path string) int64 {
	if !f.Present[path] {
		return 0
	}
	return f.Sizes[path]
}

func (f *FakeDeleter) Remove(path string) error {
	f.Calls = append(f.Calls, "rm:"+path)
	if err := f.Errs[path]; err != nil {
		return err
	}
	delete(f.Present, path)
	return nil
}

func (f *FakeDeleter) RemoveAll(path string) error {
	f.Calls = append(f.Calls, "rmall:"+path)
	if err := f.Errs[path]; err != nil {
		return err
	}
	delete(f.Present, path)
	return nil
}
