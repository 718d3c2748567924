package source

import "fortio.org/safecast"

// File is one discovered source file plus its decoded contents.
type File struct {
	ID      FileID
	Path    string // workspace-relative, slash-separated
	Package PackageID
	Role    Role
	Text    string
}

// Set is an append-only registry of discovered files, indexed by FileID in
// registration order. A Set never reassigns or recycles IDs, so a FileID
// captured by an earlier phase stays valid for the lifetime of a compile.
type Set struct {
	files []File
}

// NewSet returns an empty file set.
func NewSet() *Set {
	return &Set{}
}

// Add registers a file and returns the FileID assigned to it. Callers must
// add files in the deterministic order produced by workspace discovery so
// that FileIDs are reproducible across runs on identical input.
func (s *Set) Add(path string, pkg PackageID, role Role, text string) FileID {
	id, err := safecast.Convert[uint32](len(s.files))
	if err != nil {
		panic("source: file set exceeded uint32 capacity")
	}
	s.files = append(s.files, File{
		ID:      FileID(id),
		Path:    path,
		Package: pkg,
		Role:    role,
		Text:    text,
	})
	return FileID(id)
}

// File returns the file registered under id. It panics on an out-of-range
// id, since every FileID in circulation must have come from Add on this
// same set.
func (s *Set) File(id FileID) *File {
	return &s.files[id]
}

// Len returns the number of registered files.
func (s *Set) Len() int {
	return len(s.files)
}

// All returns the registered files in registration (FileID) order.
func (s *Set) All() []File {
	return s.files
}
