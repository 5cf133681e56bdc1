package xcodeproj

import (
	"fmt"
	"path"
	"slices"
	"strings"
)

// Product types understood by NewTarget.
const (
	ProductTypeApplication    = "com.apple.product-type.application"
	ProductTypeFramework      = "com.apple.product-type.framework"
	ProductTypeStaticLibrary  = "com.apple.product-type.library.static"
	ProductTypeDynamicLibrary = "com.apple.product-type.library.dynamic"
	ProductTypeTool           = "com.apple.product-type.tool"
	ProductTypeBundle         = "com.apple.product-type.bundle"
	ProductTypeUnitTestBundle = "com.apple.product-type.bundle.unit-test"
	ProductTypeUITestBundle   = "com.apple.product-type.bundle.ui-testing"
	ProductTypeAppExtension   = "com.apple.product-type.app-extension"
)

// Platform names accepted by NewTarget.
const (
	PlatformMacOS   = "macos"
	PlatformIOS     = "ios"
	PlatformTVOS    = "tvos"
	PlatformWatchOS = "watchos"
)

var sdkRoots = map[string]string{
	PlatformMacOS:   "macosx",
	PlatformIOS:     "iphoneos",
	PlatformTVOS:    "appletvos",
	PlatformWatchOS: "watchos",
}

type productInfo struct {
	fileType string
	prefix   string
	ext      string
}

var productInfos = map[string]productInfo{
	ProductTypeApplication:    {"wrapper.application", "", ".app"},
	ProductTypeFramework:      {"wrapper.framework", "", ".framework"},
	ProductTypeStaticLibrary:  {"archive.ar", "lib", ".a"},
	ProductTypeDynamicLibrary: {"compiled.mach-o.dylib", "lib", ".dylib"},
	ProductTypeTool:           {"compiled.mach-o.executable", "", ""},
	ProductTypeBundle:         {"wrapper.cfbundle", "", ".bundle"},
	ProductTypeUnitTestBundle: {"wrapper.cfbundle", "", ".xctest"},
	ProductTypeUITestBundle:   {"wrapper.cfbundle", "", ".xctest"},
	ProductTypeAppExtension:   {"wrapper.app-extension", "", ".appex"},
}

var fileTypesByExt = map[string]string{
	".a":          "archive.ar",
	".bundle":     "wrapper.cfbundle",
	".c":          "sourcecode.c.c",
	".cc":         "sourcecode.cpp.cpp",
	".cpp":        "sourcecode.cpp.cpp",
	".dylib":      "compiled.mach-o.dylib",
	".framework":  "wrapper.framework",
	".h":          "sourcecode.c.h",
	".hpp":        "sourcecode.cpp.h",
	".json":       "text.json",
	".m":          "sourcecode.c.objc",
	".md":         "net.daringfireball.markdown",
	".mm":         "sourcecode.cpp.objcpp",
	".plist":      "text.plist.xml",
	".png":        "image.png",
	".storyboard": "file.storyboard",
	".strings":    "text.plist.strings",
	".swift":      "sourcecode.swift",
	".xcassets":   "folder.assetcatalog",
	".xib":        "file.xib",
}

// NewGroup creates a group named name under parent, or under the main
// group when parent is nil.
func (p *Project) NewGroup(parent *Object, name string) *Object {
	if parent == nil {
		parent = p.MainGroup()
	}
	p.mustOwn(parent)
	g := p.NewObject("PBXGroup")
	g.SetAttr("name", name)
	parent.AppendRef("children", g)
	return g
}

// NewFileReference creates a file reference for the given path under
// parent, or under the main group when parent is nil. The file type is
// guessed from the extension; the source tree keeps the class default,
// so the path is project-relative.
func (p *Project) NewFileReference(parent *Object, filePath string) *Object {
	if parent == nil {
		parent = p.MainGroup()
	}
	p.mustOwn(parent)
	f := p.NewObject("PBXFileReference")
	f.SetAttr("path", filePath)
	if t := fileTypesByExt[strings.ToLower(path.Ext(filePath))]; t != "" {
		f.SetAttr("lastKnownFileType", t)
	}
	parent.AppendRef("children", f)
	return f
}

// FileReferenceForPath returns the first file reference whose path
// attribute equals path, or nil.
func (p *Project) FileReferenceForPath(path string) *Object {
	for _, f := range p.Files() {
		if f.AttrString("path") == path {
			return f
		}
	}
	return nil
}

// FrameworksGroup returns the main group's Frameworks subgroup, creating
// an empty one when the project has none yet.
func (p *Project) FrameworksGroup() *Object {
	main := p.MainGroup()
	if g := childGroupNamed(main, "Frameworks"); g != nil {
		return g
	}
	g := p.NewObject("PBXGroup")
	g.SetAttr("name", "Frameworks")
	main.AppendRef("children", g)
	return g
}

// NewTarget creates a native target building a product of the given type
// for the given platform, wired the way Xcode sets a fresh target up:
// Release and Debug configurations carrying the platform SDKROOT, empty
// sources, frameworks and resources phases, and a product reference
// placed in the Products group. The target is appended to the project's
// target list. ErrMissingSDK is returned for an unknown platform.
func (p *Project) NewTarget(name, productType, platform string) (*Object, error) {
	sdk, ok := sdkRoots[platform]
	if !ok {
		return nil, fmt.Errorf("%w: no SDK known for platform %q", ErrMissingSDK, platform)
	}
	info, ok := productInfos[productType]
	if !ok {
		return nil, fmt.Errorf("xcodeproj: unknown product type %q", productType)
	}

	target := p.NewObject("PBXNativeTarget")
	target.SetAttr("name", name)
	target.SetAttr("productName", name)
	target.SetAttr("productType", productType)

	configList := p.NewObject("XCConfigurationList")
	configList.SetAttr("defaultConfigurationName", "Release")
	for _, cfgName := range []string{"Release", "Debug"} {
		cfg := p.NewObject("XCBuildConfiguration")
		cfg.SetAttr("name", cfgName)
		cfg.SetAttr("buildSettings", map[string]any{
			"PRODUCT_NAME": "$(TARGET_NAME)",
			"SDKROOT":      sdk,
		})
		configList.AppendRef("buildConfigurations", cfg)
	}
	target.SetRef("buildConfigurationList", configList)

	for _, isa := range []string{"PBXSourcesBuildPhase", "PBXFrameworksBuildPhase", "PBXResourcesBuildPhase"} {
		target.AppendRef("buildPhases", p.NewObject(isa))
	}

	product := p.NewObject("PBXFileReference")
	product.SetAttr("explicitFileType", info.fileType)
	product.SetAttr("includeInIndex", "0")
	product.SetAttr("path", info.prefix+name+info.ext)
	product.SetAttr("sourceTree", "BUILT_PRODUCTS_DIR")
	target.SetRef("productReference", product)
	if g := p.root.Ref("productRefGroup"); g != nil {
		g.AppendRef("children", product)
	}

	p.root.AppendRef("targets", target)
	return target, nil
}

// BuildPhase returns the target's first build phase of the given class,
// creating and appending an empty one when the target has none.
func (p *Project) BuildPhase(target *Object, isa string) *Object {
	p.mustOwn(target)
	for _, ph := range target.Refs("buildPhases") {
		if ph.kind.Name == isa {
			return ph
		}
	}
	ph := p.NewObject(isa)
	target.AppendRef("buildPhases", ph)
	return ph
}

// AddSystemFramework adds name.framework from the active SDK to the
// target: a file reference under the Frameworks group and a build file
// in the target's frameworks phase. The SDK comes from the target's
// SDKROOT build setting, falling back to the project's; without either
// the framework's location cannot be determined and ErrMissingSDK is
// returned. Adding a framework the target already links is a no-op. The
// file reference is returned either way.
func (p *Project) AddSystemFramework(target *Object, name string) (*Object, error) {
	p.mustOwn(target)
	if sdk := target.BuildSetting("SDKROOT"); sdk == "" {
		if sdk = p.root.BuildSetting("SDKROOT"); sdk == "" {
			return nil, fmt.Errorf("%w: no SDKROOT build setting on target %q or the project", ErrMissingSDK, target.AttrString("name"))
		}
	}

	frameworkPath := "System/Library/Frameworks/" + name + ".framework"
	ref := p.FileReferenceForPath(frameworkPath)
	if ref == nil {
		ref = p.NewObject("PBXFileReference")
		ref.SetAttr("lastKnownFileType", "wrapper.framework")
		ref.SetAttr("path", frameworkPath)
		ref.SetAttr("sourceTree", "SDKROOT")
		p.FrameworksGroup().AppendRef("children", ref)
	}

	phase := p.BuildPhase(target, "PBXFrameworksBuildPhase")
	for _, bf := range phase.Refs("files") {
		if bf.Ref("fileRef") == ref {
			return ref, nil
		}
	}
	bf := p.NewObject("PBXBuildFile")
	bf.SetRef("fileRef", ref)
	phase.AppendRef("files", bf)
	return ref, nil
}

// BuildSetting looks up a build setting across the object's
// configuration list and returns the first configuration's value for it,
// or "". The receiver is normally a target or the root project object;
// anything without a configuration list yields "".
func (o *Object) BuildSetting(key string) string {
	if !o.kind.isToOne("buildConfigurationList") {
		return ""
	}
	list := o.Ref("buildConfigurationList")
	if list == nil {
		return ""
	}
	for _, cfg := range list.Refs("buildConfigurations") {
		if settings, ok := cfg.Attr("buildSettings").(map[string]any); ok {
			if v, ok := settings[key].(string); ok && v != "" {
				return v
			}
		}
	}
	return ""
}

// Sort orders the document for stable diffs: each group's children go
// subgroups first, then files, alphabetically by display name within
// each half, and the project's targets are ordered by name. Build phases
// and configuration lists keep their document order.
func (p *Project) Sort() {
	for _, o := range p.store.all() {
		if o.kind.isToMany("children") {
			sortChildren(o.toMany["children"])
		}
	}
	if p.root.kind.isToMany("targets") {
		slices.SortStableFunc(p.root.toMany["targets"], func(a, b *Object) int {
			return strings.Compare(a.AttrString("name"), b.AttrString("name"))
		})
	}
}

func sortChildren(children []*Object) {
	slices.SortStableFunc(children, func(a, b *Object) int {
		ag, bg := a.kind.isToMany("children"), b.kind.isToMany("children")
		if ag != bg {
			if ag {
				return -1
			}
			return 1
		}
		return strings.Compare(strings.ToLower(a.DisplayName()), strings.ToLower(b.DisplayName()))
	})
}
