package preview

import (
	"quickswitch/internal/fs"
)

// directory summarizes a directory's children up to the configured cap.
// Hidden entries are included so the summary reflects the real on-disk
// contents regardless of the listing settings.
func (d *Dispatcher) directory(path string) Payload {
	entries, err := fs.List(path, fs.Options{ShowHidden: true})
	if err != nil {
		return errorPayload(path, err)
	}

	if len(entries) == 0 {
		return Payload{Kind: KindDirectory, Path: path, EmptyDir: true}
	}

	p := Payload{Kind: KindDirectory, Path: path}
	for _, e := range entries {
		if len(p.Children) >= d.limits.MaxDirEntries {
			p.Omitted = len(entries) - len(p.Children)
			break
		}
		name := e.Name
		if e.IsDir() {
			name += "/"
		}
		p.Children = append(p.Children, name)
	}
	return p
}
