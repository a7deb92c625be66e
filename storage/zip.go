package storage

import (
	"archive/zip"
	"io"
)

// ZipProvider resolves logical paths against the entries of an opened zip
// archive, mirroring original_source/Kamilo's ".dat" package mount. No
// third-party archive library appears anywhere in the retrieved example
// pack, so this is the justified stdlib exception for component K (see
// DESIGN.md).
type ZipProvider struct {
	name  string
	files map[string]*zip.File
}

// NewZipProvider opens the zip archive at archivePath and indexes its
// entries by name for O(1) lookup.
func NewZipProvider(archivePath string) (*ZipProvider, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	files := make(map[string]*zip.File, len(r.File))
	for _, f := range r.File {
		files[f.Name] = f
	}
	return &ZipProvider{name: "zip:" + archivePath, files: files}, nil
}

// Name identifies this provider for logging.
func (p *ZipProvider) Name() string { return p.name }

// Open extracts path from the archive, or reports a miss if no entry by
// that exact name exists.
func (p *ZipProvider) Open(path string) ([]byte, bool) {
	f, ok := p.files[path]
	if !ok {
		return nil, false
	}
	rc, err := f.Open()
	if err != nil {
		return nil, false
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, false
	}
	return data, true
}
