package xcworkspace

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sampleManifest = `<?xml version="1.0" encoding="UTF-8"?>
<Workspace
   version = "1.0">
   <FileRef
      location = "group:App/App.xcodeproj">
   </FileRef>
   <Group
      location = "group:Modules"
      name = "Modules">
      <FileRef
         location = "group:Core/Core.xcodeproj">
      </FileRef>
      <FileRef
         location = "absolute:/opt/shared/Shared.xcodeproj">
      </FileRef>
   </Group>
   <FileRef
      location = "group:README.md">
   </FileRef>
</Workspace>
`

func TestParse(t *testing.T) {
	w := must(Parse([]byte(sampleManifest)))
	deepEqual(t, w.Version, "1.0")
	deepEqual(t, len(w.Items), 3)
	deepEqual(t, w.Items[0].XMLName.Local, "FileRef")
	deepEqual(t, w.Items[1].XMLName.Local, "Group")
	deepEqual(t, w.Items[1].Name, "Modules")
	deepEqual(t, len(w.Items[1].Children), 2)
	deepEqual(t, w.Items[1].Children[1].Location, "absolute:/opt/shared/Shared.xcodeproj")
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse([]byte("<Workspace version='1.0'"))
	if err == nil {
		t.Errorf("** got nil error, wanted one")
	}
}

func TestProjectPathsWithoutFilePath(t *testing.T) {
	w := must(Parse([]byte(sampleManifest)))
	deepEqual(t, w.ProjectPaths(), []string{
		"App/App.xcodeproj",
		"Modules/Core/Core.xcodeproj",
		"/opt/shared/Shared.xcodeproj",
	})
}

func TestProjectPathsResolveAgainstBundleParent(t *testing.T) {
	dir := t.TempDir()
	bundle := filepath.Join(dir, "Demo.xcworkspace")
	isnilerr(t, os.Mkdir(bundle, 0o755))
	isnilerr(t, os.WriteFile(filepath.Join(bundle, "contents.xcworkspacedata"), []byte(sampleManifest), 0o644))

	w := must(Load(bundle))
	deepEqual(t, w.ProjectPaths(), []string{
		filepath.Join(dir, "App/App.xcodeproj"),
		filepath.Join(dir, "Modules/Core/Core.xcodeproj"),
		"/opt/shared/Shared.xcodeproj",
	})
}

func TestSelfLocation(t *testing.T) {
	// The project.xcworkspace inside an .xcodeproj bundle points back at
	// its container with a self: location.
	w := must(Parse([]byte(`<Workspace version="1.0"><FileRef location="self:"></FileRef></Workspace>`)))
	w.path = "/code/App.xcodeproj/project.xcworkspace/contents.xcworkspacedata"
	deepEqual(t, w.ProjectPaths(), []string{"/code/App.xcodeproj"})
}

func TestRoundTrip(t *testing.T) {
	w := must(Parse([]byte(sampleManifest)))
	data := must(w.Data())
	if !strings.HasPrefix(string(data), "<?xml") {
		t.Errorf("** missing XML header in %q", data)
	}

	w2 := must(Parse(data))
	deepEqual(t, w2.Version, w.Version)
	deepEqual(t, w2.Items, w.Items)
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	bundle := filepath.Join(dir, "Built.xcworkspace")

	// Save creates the bundle directory on its own.
	w := New(bundle)
	w.AddProject("group:App/App.xcodeproj")
	w.Items = append(w.Items, Group("Libs", "group:Libs",
		FileRef("group:Core/Core.xcodeproj")))
	isnilerr(t, w.Save())

	w2 := must(Load(bundle))
	deepEqual(t, w2.ProjectPaths(), []string{
		filepath.Join(dir, "App/App.xcodeproj"),
		filepath.Join(dir, "Libs/Core/Core.xcodeproj"),
	})
}

func TestSaveAsCreatesBundle(t *testing.T) {
	w := must(Parse([]byte(sampleManifest)))
	bundle := filepath.Join(t.TempDir(), "out", "Copy.xcworkspace")
	isnilerr(t, w.SaveAs(bundle))

	w2 := must(Load(bundle))
	deepEqual(t, w2.Items, w.Items)
	deepEqual(t, w.Path(), "")
}

func TestSaveWithoutPath(t *testing.T) {
	w := must(Parse([]byte(sampleManifest)))
	if err := w.Save(); err == nil {
		t.Errorf("** got nil error, wanted one")
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "Nope.xcworkspace"))
	if err == nil {
		t.Errorf("** got nil error, wanted one")
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func deepEqual[T any](t testing.TB, a, e T) {
	if !reflect.DeepEqual(a, e) {
		t.Helper()
		t.Errorf("** got %v, wanted %v", a, e)
	}
}

func isnilerr(t testing.TB, err error) {
	if err != nil {
		t.Helper()
		t.Errorf("** got error %v, wanted none", err)
	}
}
