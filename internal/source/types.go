package source

// FileID identifies a loaded file inside a FileSet.
type FileID uint32

// File captures the content and line index of a single loaded file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // byte offsets of every '\n'
}

// LineCol is a 1-based human-readable position.
type LineCol struct {
	Line uint32
	Col  uint32
}
