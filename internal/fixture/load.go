package fixture

import (
	"stratum/internal/diag"
	"stratum/internal/source"
	"stratum/internal/symbols"
)

// Load reads path into fs, parses it and builds the program.
func Load(fs *source.FileSet, path string, reporter diag.Reporter, opts symbols.Options) (*Program, error) {
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(id)
	f, err := Parse(file.Path, file.Content)
	if err != nil {
		return nil, err
	}
	return Build(f, file, reporter, opts), nil
}
