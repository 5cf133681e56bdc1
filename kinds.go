package xcodeproj

import (
	"fmt"
	"slices"
	"strings"
)

// Kind describes an object class: which attributes hold references to
// other objects (and whether one or many), and the attribute values a
// freshly created object of the class starts with. Everything the core
// knows about a class lives here; the graph code itself never branches on
// class names.
type Kind struct {
	Name     string
	ToOne    []string
	ToMany   []string
	Defaults map[string]any
}

func (k *Kind) isToOne(name string) bool  { return slices.Contains(k.ToOne, name) }
func (k *Kind) isToMany(name string) bool { return slices.Contains(k.ToMany, name) }

func (k *Kind) mustToOne(name string) {
	if !k.isToOne(name) {
		panic(fmt.Errorf("xcodeproj: %s has no to-one reference attribute %q", k.Name, name))
	}
}

func (k *Kind) mustToMany(name string) {
	if !k.isToMany(name) {
		panic(fmt.Errorf("xcodeproj: %s has no to-many reference attribute %q", k.Name, name))
	}
}

func (k *Kind) mustScalar(name string) {
	if name == "isa" {
		panic(fmt.Errorf("xcodeproj: the isa attribute of %s cannot be set directly", k.Name))
	}
	if k.isToOne(name) || k.isToMany(name) {
		panic(fmt.Errorf("xcodeproj: %s.%s is a reference attribute, use SetRef or AppendRef", k.Name, name))
	}
}

// Catalog maps class names to their Kind descriptors. Projects resolve
// every isa tag they encounter through their catalog; DefaultCatalog
// covers the classes Xcode writes, and a custom catalog can extend it.
type Catalog struct {
	kinds map[string]*Kind
}

func NewCatalog(kinds ...*Kind) *Catalog {
	c := &Catalog{kinds: make(map[string]*Kind, len(kinds))}
	for _, k := range kinds {
		c.Register(k)
	}
	return c
}

// Register adds a kind to the catalog. Panics on a duplicate class name
// or on an attribute declared both to-one and to-many.
func (c *Catalog) Register(k *Kind) {
	if k.Name == "" {
		panic("xcodeproj: kind with empty name")
	}
	if _, ok := c.kinds[k.Name]; ok {
		panic(fmt.Errorf("xcodeproj: kind already registered: %s", k.Name))
	}
	for _, name := range k.ToOne {
		if k.isToMany(name) {
			panic(fmt.Errorf("xcodeproj: %s.%s declared both to-one and to-many", k.Name, name))
		}
	}
	c.kinds[k.Name] = k
}

// Kind returns the descriptor for a class name, or nil when the catalog
// does not know the class.
func (c *Catalog) Kind(name string) *Kind {
	return c.kinds[name]
}

// Kinds returns the registered kinds sorted by class name.
func (c *Catalog) Kinds() []*Kind {
	out := make([]*Kind, 0, len(c.kinds))
	for _, k := range c.kinds {
		out = append(out, k)
	}
	slices.SortFunc(out, func(a, b *Kind) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// DefaultCatalog covers the object classes found in project documents
// written by Xcode 3.2 through current releases.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

var defaultCatalog = NewCatalog(
	// Document root.
	&Kind{
		Name:   "PBXProject",
		ToOne:  []string{"buildConfigurationList", "mainGroup", "productRefGroup"},
		ToMany: []string{"targets", "packageReferences"},
		Defaults: map[string]any{
			"attributes":             map[string]any{},
			"compatibilityVersion":   "Xcode 3.2",
			"developmentRegion":      "en",
			"hasScannedForEncodings": "0",
			"knownRegions":           []any{"en", "Base"},
			"projectDirPath":         "",
			"projectRoot":            "",
			"targets":                []any{},
		},
	},

	// Groups and file references.
	&Kind{
		Name:     "PBXGroup",
		ToMany:   []string{"children"},
		Defaults: map[string]any{"children": []any{}, "sourceTree": "<group>"},
	},
	&Kind{
		Name:     "PBXVariantGroup",
		ToMany:   []string{"children"},
		Defaults: map[string]any{"children": []any{}, "sourceTree": "<group>"},
	},
	&Kind{
		Name:     "XCVersionGroup",
		ToOne:    []string{"currentVersion"},
		ToMany:   []string{"children"},
		Defaults: map[string]any{"children": []any{}, "sourceTree": "<group>"},
	},
	&Kind{
		Name:     "PBXFileReference",
		Defaults: map[string]any{"sourceTree": "SOURCE_ROOT", "includeInIndex": "1"},
	},
	&Kind{
		Name:  "PBXReferenceProxy",
		ToOne: []string{"remoteRef"},
	},

	// Targets.
	&Kind{
		Name:   "PBXNativeTarget",
		ToOne:  []string{"buildConfigurationList", "productReference"},
		ToMany: []string{"buildPhases", "buildRules", "dependencies", "packageProductDependencies"},
		Defaults: map[string]any{
			"buildPhases":  []any{},
			"buildRules":   []any{},
			"dependencies": []any{},
		},
	},
	&Kind{
		Name:   "PBXAggregateTarget",
		ToOne:  []string{"buildConfigurationList"},
		ToMany: []string{"buildPhases", "dependencies"},
		Defaults: map[string]any{
			"buildPhases":  []any{},
			"dependencies": []any{},
		},
	},
	&Kind{
		Name:   "PBXLegacyTarget",
		ToOne:  []string{"buildConfigurationList"},
		ToMany: []string{"buildPhases", "dependencies"},
		Defaults: map[string]any{
			"buildPhases":  []any{},
			"dependencies": []any{},
		},
	},
	&Kind{
		Name:  "PBXTargetDependency",
		ToOne: []string{"target", "targetProxy"},
	},
	// containerPortal and remoteGlobalIDString stay plain identifier
	// strings: proxies reference across documents, and treating them as
	// live references would tie object lifetime to remote state.
	&Kind{
		Name: "PBXContainerItemProxy",
	},

	// Build phases.
	&Kind{
		Name:     "PBXSourcesBuildPhase",
		ToMany:   []string{"files"},
		Defaults: buildPhaseDefaults(),
	},
	&Kind{
		Name:     "PBXFrameworksBuildPhase",
		ToMany:   []string{"files"},
		Defaults: buildPhaseDefaults(),
	},
	&Kind{
		Name:     "PBXResourcesBuildPhase",
		ToMany:   []string{"files"},
		Defaults: buildPhaseDefaults(),
	},
	&Kind{
		Name:     "PBXHeadersBuildPhase",
		ToMany:   []string{"files"},
		Defaults: buildPhaseDefaults(),
	},
	&Kind{
		Name:     "PBXRezBuildPhase",
		ToMany:   []string{"files"},
		Defaults: buildPhaseDefaults(),
	},
	&Kind{
		Name:   "PBXCopyFilesBuildPhase",
		ToMany: []string{"files"},
		Defaults: mergeDefaults(buildPhaseDefaults(), map[string]any{
			"dstPath":          "",
			"dstSubfolderSpec": "16",
		}),
	},
	&Kind{
		Name:   "PBXShellScriptBuildPhase",
		ToMany: []string{"files"},
		Defaults: mergeDefaults(buildPhaseDefaults(), map[string]any{
			"inputPaths":  []any{},
			"outputPaths": []any{},
			"shellPath":   "/bin/sh",
			"shellScript": "",
		}),
	},
	&Kind{
		Name: "PBXBuildRule",
	},
	&Kind{
		Name:  "PBXBuildFile",
		ToOne: []string{"fileRef", "productRef"},
	},

	// Build configurations.
	&Kind{
		Name:     "XCConfigurationList",
		ToMany:   []string{"buildConfigurations"},
		Defaults: map[string]any{"defaultConfigurationIsVisible": "0"},
	},
	&Kind{
		Name:     "XCBuildConfiguration",
		ToOne:    []string{"baseConfigurationReference"},
		Defaults: map[string]any{"buildSettings": map[string]any{}},
	},

	// Swift packages.
	&Kind{
		Name: "XCRemoteSwiftPackageReference",
	},
	&Kind{
		Name: "XCLocalSwiftPackageReference",
	},
	&Kind{
		Name:  "XCSwiftPackageProductDependency",
		ToOne: []string{"package"},
	},
)

func buildPhaseDefaults() map[string]any {
	return map[string]any{
		"buildActionMask":                    "2147483647",
		"files":                              []any{},
		"runOnlyForDeploymentPostprocessing": "0",
	}
}

func mergeDefaults(base, extra map[string]any) map[string]any {
	for k, v := range extra {
		base[k] = v
	}
	return base
}
