// Package xcworkspace reads and writes the contents.xcworkspacedata
// manifests inside .xcworkspace bundles.
package xcworkspace

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Workspace is a parsed contents.xcworkspacedata document. Items keeps
// FileRef and Group elements interleaved in document order.
type Workspace struct {
	path    string
	Version string
	Items   []*Item
}

// Item is a single FileRef or Group element; XMLName.Local tells which.
// Groups carry nested items, FileRefs never do.
type Item struct {
	XMLName  xml.Name
	Location string  `xml:"location,attr"`
	Name     string  `xml:"name,attr,omitempty"`
	Children []*Item `xml:",any"`
}

type workspaceXML struct {
	XMLName xml.Name `xml:"Workspace"`
	Version string   `xml:"version,attr"`
	Items   []*Item  `xml:",any"`
}

// New returns an empty workspace that will save to the given path.
// Pass either an .xcworkspace bundle or a contents.xcworkspacedata file.
func New(path string) *Workspace {
	return &Workspace{path: workspaceFilePath(path), Version: "1.0"}
}

// Load reads a workspace manifest from disk. Pass either an .xcworkspace
// bundle or a contents.xcworkspacedata file.
func Load(path string) (*Workspace, error) {
	fullPath := workspaceFilePath(path)
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("xcworkspace: cannot read workspace: %w", err)
	}
	w, err := Parse(data)
	if err != nil {
		return nil, err
	}
	w.path = fullPath
	return w, nil
}

// Parse decodes a manifest held in memory. The workspace has no file
// path, so ProjectPaths resolves relative locations as-is and Save
// requires SaveAs.
func Parse(data []byte) (*Workspace, error) {
	var doc workspaceXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("xcworkspace: cannot parse workspace: %w", err)
	}
	return &Workspace{Version: doc.Version, Items: doc.Items}, nil
}

func (w *Workspace) Path() string {
	return w.path
}

// FileRef builds a FileRef item for the given location, e.g.
// "group:App/App.xcodeproj".
func FileRef(location string) *Item {
	return &Item{XMLName: xml.Name{Local: "FileRef"}, Location: location}
}

// Group builds a named Group item holding the given children.
func Group(name, location string, children ...*Item) *Item {
	return &Item{XMLName: xml.Name{Local: "Group"}, Location: location, Name: name, Children: children}
}

// AddProject appends a top-level FileRef for the given location.
func (w *Workspace) AddProject(location string) *Item {
	it := FileRef(location)
	w.Items = append(w.Items, it)
	return it
}

// ProjectPaths returns the .xcodeproj bundle paths referenced by the
// workspace, in document order. Group locations prefix their children,
// the way Xcode resolves them. Other file references are skipped.
func (w *Workspace) ProjectPaths() []string {
	var base string
	if w.path != "" {
		base = filepath.Dir(filepath.Dir(w.path))
	}
	var out []string
	collectProjects(&out, w.Items, base)
	return out
}

func collectProjects(out *[]string, items []*Item, base string) {
	for _, it := range items {
		switch it.XMLName.Local {
		case "FileRef":
			p := resolveLocation(base, it.Location)
			if strings.EqualFold(filepath.Ext(p), ".xcodeproj") {
				*out = append(*out, p)
			}
		case "Group":
			collectProjects(out, it.Children, resolveLocation(base, it.Location))
		}
	}
}

// resolveLocation handles the location schemes Xcode writes: group: and
// container: are relative to the workspace's parent directory (or the
// enclosing group), absolute: is taken verbatim, and self: names the
// directory holding the workspace bundle itself.
func resolveLocation(base, location string) string {
	scheme, rest, found := strings.Cut(location, ":")
	if !found {
		return filepath.Join(base, location)
	}
	switch scheme {
	case "absolute":
		return rest
	case "self":
		return base
	default:
		if rest == "" {
			return base
		}
		return filepath.Join(base, rest)
	}
}

// Data renders the manifest as XML.
func (w *Workspace) Data() ([]byte, error) {
	version := w.Version
	if version == "" {
		version = "1.0"
	}
	body, err := xml.MarshalIndent(workspaceXML{Version: version, Items: w.Items}, "", "   ")
	if err != nil {
		return nil, fmt.Errorf("xcworkspace: cannot encode workspace: %w", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}

// Save writes the manifest back to the file it was loaded from or created
// at, creating the bundle directory when it does not exist yet.
func (w *Workspace) Save() error {
	if w.path == "" {
		return fmt.Errorf("xcworkspace: workspace has no file path")
	}
	return w.save(w.path)
}

// SaveAs writes the manifest to another bundle without retargeting the
// workspace. The bundle directory is created when it does not exist yet.
func (w *Workspace) SaveAs(path string) error {
	return w.save(workspaceFilePath(path))
}

func (w *Workspace) save(fullPath string) error {
	data, err := w.Data()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("xcworkspace: cannot create workspace bundle: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return fmt.Errorf("xcworkspace: cannot write workspace: %w", err)
	}
	return nil
}

func workspaceFilePath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".xcworkspace") {
		return filepath.Join(path, "contents.xcworkspacedata")
	}
	return path
}
