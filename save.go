package xcodeproj

import (
	"fmt"
	"os"
	"path/filepath"
)

// ToHash converts the graph back to a document dictionary: the version
// stamps and classes as loaded (or as created), the root identifier, and
// one flattened attribute bag per registered object. The result shares no
// structure with the live graph.
func (p *Project) ToHash() map[string]any {
	objects := make(map[string]any, p.store.count())
	for _, o := range p.store.all() {
		objects[o.id] = o.flatten()
	}
	return map[string]any{
		"archiveVersion": p.archiveVersion,
		"classes":        copyValue(p.classes),
		"objectVersion":  p.objectVersion,
		"objects":        objects,
		"rootObject":     p.root.id,
	}
}

// Data serializes the project to the XML document form. Characters above
// 0x7F are escaped as numeric character references in a pass over the
// serialized bytes, matching how Xcode writes these files, so the escape
// applies no matter which Codec produced them.
func (p *Project) Data() ([]byte, error) {
	data, err := p.codec.EncodeDocument(p.ToHash(), FormatXML)
	if err != nil {
		return nil, err
	}
	return escapeNonASCII(data), nil
}

// Save writes the project back to the file it was opened from or created
// at, creating the bundle directory when it does not exist yet. The XML
// form is always written, regardless of the form the file was read in.
func (p *Project) Save() error {
	return p.save(p.path)
}

// SaveAs writes the project to another location, given either a
// .xcodeproj bundle directory or a project file path inside one. The
// project stays associated with its original path.
func (p *Project) SaveAs(path string) error {
	return p.save(projectFilePath(path))
}

func (p *Project) save(path string) error {
	if path == "" {
		return fmt.Errorf("xcodeproj: project has no file path")
	}
	data, err := p.Data()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("xcodeproj: cannot create project bundle: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("xcodeproj: cannot save project: %w", err)
	}
	p.logger.Debug("saved project", "path", path, "objects", p.store.count(), "bytes", len(data))
	return nil
}
