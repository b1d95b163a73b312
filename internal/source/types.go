package source

// FileID is the index of a file in its FileSet.
type FileID uint32

// FileFlags records how Add normalized the content.
type FileFlags uint8

const (
	FileVirtual        FileFlags = 1 << iota // не с диска: тест, stdin
	FileHadBOM                               // UTF-8 BOM был срезан
	FileNormalizedCRLF                       // \r\n заменены на \n
)

// Has reports whether all bits of x are set.
func (f FileFlags) Has(x FileFlags) bool { return f&x == x }

// File is one loaded source. Content is immutable after Add.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of '\n'
	Hash    [32]byte // sha256 of Content, keys the token cache
	Flags   FileFlags
}

// LineCol is a 1-based position; Col counts bytes.
type LineCol struct {
	Line uint32
	Col  uint32
}
