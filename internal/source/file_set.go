package source

import (
	"fmt"
	"sort"

	"fortio.org/safecast"
)

// File holds the raw content of a loaded compilation unit's source text.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	// LineIdx[i] is the byte offset of the newline ending line i+1 (0-based).
	LineIdx []uint32
}

// FileSet owns the set of files participating in a compilation job and
// resolves spans back to human-readable positions.
type FileSet struct {
	files []File
}

// NewFileSet returns an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{files: make([]File, 0, 4)}
}

// Add registers source content under path and returns its new FileID.
// File I/O (reading path from disk) is explicitly out of scope; callers
// supply already-loaded bytes.
func (fs *FileSet) Add(path string, content []byte) FileID {
	idx := buildLineIndex(content)
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("source: too many files: %w", err))
	}
	id := FileID(n + 1) // 0 is NoFileID
	fs.files = append(fs.files, File{ID: id, Path: path, Content: content, LineIdx: idx})
	return id
}

// Get returns the File for id. Panics if id is not a file this set owns.
func (fs *FileSet) Get(id FileID) *File {
	if !id.IsValid() || int(id) > len(fs.files) {
		panic("source: invalid FileID")
	}
	return &fs.files[id-1]
}

// LineCol is a 1-based (line, column-in-bytes) pair produced by Resolve.
// Column here is a byte offset into the line, for index-lookup purposes;
// display-column computation belongs to Location (see location.go).
type LineCol struct {
	Line uint32
	Col  uint32
}

// Resolve converts a byte offset within a file into a 1-based line/column.
func (fs *FileSet) Resolve(file FileID, offset uint32) LineCol {
	f := fs.Get(file)
	line := sort.Search(len(f.LineIdx), func(i int) bool { return f.LineIdx[i] >= offset })
	lineNo := uint32(line) + 1
	var lineStart uint32
	if line > 0 {
		lineStart = f.LineIdx[line-1] + 1
	}
	return LineCol{Line: lineNo, Col: offset - lineStart + 1}
}

func buildLineIndex(content []byte) []uint32 {
	idx := make([]uint32, 0, 64)
	for i, b := range content {
		if b == '\n' {
			n, err := safecast.Conv[uint32](i)
			if err != nil {
				panic(fmt.Errorf("source: file too large: %w", err))
			}
			idx = append(idx, n)
		}
	}
	return idx
}
