package storage

import "embed"

// EmbedProvider resolves logical paths against a compile-time embed.FS,
// for assets baked into the binary rather than shipped alongside it.
type EmbedProvider struct {
	name string
	fs   embed.FS
}

// NewEmbedProvider mounts fs as a provider, labeled name for logging.
func NewEmbedProvider(name string, fs embed.FS) *EmbedProvider {
	return &EmbedProvider{name: name, fs: fs}
}

// Name identifies this provider for logging.
func (p *EmbedProvider) Name() string { return p.name }

// Open reads path from the embedded filesystem.
func (p *EmbedProvider) Open(path string) ([]byte, bool) {
	data, err := p.fs.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}
