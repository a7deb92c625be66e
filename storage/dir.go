package storage

import (
	"os"
	"path/filepath"
)

// DirProvider resolves logical paths against a plain directory on disk,
// mirroring original_source/Kamilo's directory-mount storage kind.
type DirProvider struct {
	root string
}

// NewDirProvider mounts root as a directory provider. Lookups join the
// logical path onto root with filepath.Join, so callers may use forward
// slashes regardless of host OS.
func NewDirProvider(root string) *DirProvider {
	return &DirProvider{root: root}
}

// Name identifies this provider for logging.
func (p *DirProvider) Name() string { return "dir:" + p.root }

// Open reads path relative to the provider's root. path is rooted at "/"
// before joining, so a leading ".." can never walk above root.
func (p *DirProvider) Open(path string) ([]byte, bool) {
	clean := filepath.Clean("/" + path)
	full := filepath.Join(p.root, clean)
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, false
	}
	return data, true
}
