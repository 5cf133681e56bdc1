package xcodeproj

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
)

// Project is a loaded project document: the version stamps, the object
// registry and the root object, plus the machinery for assigning
// identifiers to new objects. A Project confines itself to a single
// goroutine; it performs no locking of its own.
type Project struct {
	path           string
	format         Format
	archiveVersion any
	objectVersion  any
	classes        map[string]any
	root           *Object

	store   *objectStore
	alloc   *uuidAllocator
	catalog *Catalog
	codec   Codec
	logger  *slog.Logger
}

type Options struct {
	Catalog       *Catalog      // nil means DefaultCatalog()
	Codec         Codec         // nil means NewPlistCodec()
	Logger        *slog.Logger  // nil means slog.Default()
	UUIDGenerator UUIDGenerator // nil means random Xcode-style identifiers
	ObjectVersion int           // for New only; 0 means DefaultObjectVersion
}

func newProject(path string, opt Options) *Project {
	if opt.Catalog == nil {
		opt.Catalog = DefaultCatalog()
	}
	if opt.Codec == nil {
		opt.Codec = NewPlistCodec()
	}
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	p := &Project{
		path:    path,
		classes: map[string]any{},
		store:   newObjectStore(),
		catalog: opt.Catalog,
		codec:   opt.Codec,
		logger:  opt.Logger,
	}
	p.alloc = newUUIDAllocator(opt.UUIDGenerator, p.store)
	return p
}

// Open reads and materializes a project document. The path may point at
// the .xcodeproj bundle directory or directly at the project file inside
// it.
func Open(path string, opt Options) (*Project, error) {
	p := newProject(projectFilePath(path), opt)
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("xcodeproj: cannot read project: %w", err)
	}
	if err := p.loadData(data); err != nil {
		return nil, err
	}
	p.logger.Debug("opened project", "path", p.path,
		"objects", p.store.count(), "format", p.format.String())
	return p, nil
}

// Load materializes a project document from memory. The resulting
// project has no file path until SaveAs gives it one.
func Load(data []byte, opt Options) (*Project, error) {
	p := newProject("", opt)
	if err := p.loadData(data); err != nil {
		return nil, err
	}
	return p, nil
}

// New creates an empty project: a root project object with an empty main
// group, a Products group, and a configuration list holding blank
// Release and Debug configurations, with Release the default. Nothing is
// written to disk until Save.
func New(path string, opt Options) *Project {
	p := newProject(projectFilePath(path), opt)
	p.archiveVersion = "1"
	ov := opt.ObjectVersion
	if ov == 0 {
		ov = DefaultObjectVersion
	}
	p.objectVersion = strconv.Itoa(ov)

	root := p.NewObject("PBXProject")
	p.root = root
	root.docReferrer = true

	mainGroup := p.NewObject("PBXGroup")
	root.SetRef("mainGroup", mainGroup)

	products := p.NewObject("PBXGroup")
	products.SetAttr("name", "Products")
	mainGroup.AppendRef("children", products)
	root.SetRef("productRefGroup", products)

	configList := p.NewObject("XCConfigurationList")
	configList.SetAttr("defaultConfigurationName", "Release")
	for _, name := range []string{"Release", "Debug"} {
		cfg := p.NewObject("XCBuildConfiguration")
		cfg.SetAttr("name", name)
		configList.AppendRef("buildConfigurations", cfg)
	}
	root.SetRef("buildConfigurationList", configList)
	return p
}

// projectFilePath resolves a user-supplied path to the project file:
// a .xcodeproj bundle directory maps to the project.pbxproj inside it.
func projectFilePath(path string) string {
	if path == "" {
		return ""
	}
	if strings.EqualFold(filepath.Ext(path), ".xcodeproj") {
		return filepath.Join(path, "project.pbxproj")
	}
	return path
}

func (p *Project) Path() string   { return p.path }
func (p *Project) Format() Format { return p.format }
func (p *Project) Root() *Object  { return p.root }

// ArchiveVersion returns the document archive version, 0 when the stamp
// is absent or malformed.
func (p *Project) ArchiveVersion() int {
	v, _ := versionInt(p.archiveVersion)
	return v
}

// ObjectVersion returns the document object version, 0 when the stamp is
// absent or malformed.
func (p *Project) ObjectVersion() int {
	v, _ := versionInt(p.objectVersion)
	return v
}

// Object returns the registered object with the given identifier, or
// nil.
func (p *Project) Object(id string) *Object {
	return p.store.lookup(id)
}

// Objects returns every registered object in registration order, which
// for a loaded project follows the reference walk from the root.
func (p *Project) Objects() []*Object {
	return p.store.all()
}

// ObjectsOfClass returns the registered objects of the given class, in
// registration order.
func (p *Project) ObjectsOfClass(isa string) []*Object {
	return p.store.byIsa(isa)
}

// ObjectCount reports the number of registered objects.
func (p *Project) ObjectCount() int {
	return p.store.count()
}

// NewObject creates and registers an object of the given class with a
// fresh identifier and the class defaults applied. The object belongs to
// the document once something references it; an object never referenced
// is still written on save. Panics if the catalog does not know the
// class.
func (p *Project) NewObject(isa string) *Object {
	kind := p.catalog.Kind(isa)
	if kind == nil {
		panic(fmt.Errorf("xcodeproj: %w: %s", ErrUnknownIsa, isa))
	}
	o := newObject(p, p.alloc.next(), kind)
	o.applyDefaults()
	ensure(p.store.register(o))
	return o
}

// GenerateUUID hands out a fresh identifier that no registered object
// uses and that no earlier call has returned.
func (p *Project) GenerateUUID() string {
	return p.alloc.next()
}

func (p *Project) mustOwn(o *Object) {
	if o.proj != p {
		panic(fmt.Errorf("xcodeproj: object %v belongs to a different project", o))
	}
}

// MainGroup returns the root file group of the project.
func (p *Project) MainGroup() *Object {
	return p.root.Ref("mainGroup")
}

// Targets returns the project's targets in document order.
func (p *Project) Targets() []*Object {
	return p.root.Refs("targets")
}

// TargetNamed returns the target with the given name, or nil.
func (p *Project) TargetNamed(name string) *Object {
	for _, t := range p.Targets() {
		if t.AttrString("name") == name {
			return t
		}
	}
	return nil
}

// Files returns every file reference of the project, in registration
// order.
func (p *Project) Files() []*Object {
	return p.store.byIsa("PBXFileReference")
}

// Products returns the children of the product reference group, or nil
// when the project has none.
func (p *Project) Products() []*Object {
	g := p.root.Ref("productRefGroup")
	if g == nil {
		return nil
	}
	return g.Refs("children")
}

// GroupAtPath resolves a slash-separated path of display names starting
// at the main group, returning the group it leads to or nil. Empty path
// components are skipped, so "/Sources" and "Sources" are the same path.
func (p *Project) GroupAtPath(path string) *Object {
	g := p.MainGroup()
	if g == nil {
		return nil
	}
	for _, comp := range strings.Split(path, "/") {
		if comp == "" {
			continue
		}
		g = childGroupNamed(g, comp)
		if g == nil {
			return nil
		}
	}
	return g
}

func childGroupNamed(g *Object, name string) *Object {
	for _, child := range g.Refs("children") {
		if child.kind.isToMany("children") && child.DisplayName() == name {
			return child
		}
	}
	return nil
}

// Equal reports whether two projects serialize to exactly the same
// document, identifiers included. Use ProjectDiff or TreeFingerprint for
// identifier-insensitive comparisons.
func (p *Project) Equal(q *Project) bool {
	return reflect.DeepEqual(p.ToHash(), q.ToHash())
}
