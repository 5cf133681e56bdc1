package projindex

import (
	"fmt"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/andreyvit/xcodeproj"
)

func TestIndexPutGet(t *testing.T) {
	ix := setup(t)

	e := &Entry{
		Path:            "/code/App.xcodeproj/project.pbxproj",
		RootID:          "ABC000000000000000000001",
		ArchiveVersion:  1,
		ObjectVersion:   46,
		ObjectCount:     22,
		Targets:         []string{"App", "AppTests"},
		Fingerprint:     0xDEADBEEF,
		TreeFingerprint: 0xFEEDFACE,
		IndexedAt:       1700000000,
	}
	isnilerr(t, ix.Put(e))

	got := must(ix.Get(e.Path))
	deepEqual(t, got, e)

	isnil(t, must(ix.Get("/code/Other.xcodeproj/project.pbxproj")))
}

func TestIndexPutReplaces(t *testing.T) {
	ix := setup(t)

	isnilerr(t, ix.Put(&Entry{Path: "/a", ObjectCount: 10}))
	isnilerr(t, ix.Put(&Entry{Path: "/a", ObjectCount: 20}))

	deepEqual(t, must(ix.Get("/a")).ObjectCount, 20)
	deepEqual(t, must(ix.Count()), 1)
}

func TestIndexPutRequiresPath(t *testing.T) {
	ix := setup(t)
	if err := ix.Put(&Entry{}); err == nil {
		t.Errorf("** got nil error, wanted one")
	}
}

func TestIndexAllSortsByPath(t *testing.T) {
	ix := setup(t)
	isnilerr(t, ix.Put(&Entry{Path: "/c", ObjectCount: 3}))
	isnilerr(t, ix.Put(&Entry{Path: "/a", ObjectCount: 1}))
	isnilerr(t, ix.Put(&Entry{Path: "/b", ObjectCount: 2}))

	all := must(ix.All())
	var paths []string
	for _, e := range all {
		paths = append(paths, e.Path)
	}
	deepEqual(t, paths, []string{"/a", "/b", "/c"})
}

func TestIndexDelete(t *testing.T) {
	ix := setup(t)
	isnilerr(t, ix.Put(&Entry{Path: "/a", ObjectCount: 1}))

	isnilerr(t, ix.Delete("/a"))
	isnil(t, must(ix.Get("/a")))
	deepEqual(t, must(ix.Count()), 0)

	// Deleting what is not there is fine.
	isnilerr(t, ix.Delete("/a"))
}

func TestIndexPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.db")

	ix := must(Open(path, Options{IsTesting: true}))
	isnilerr(t, ix.Put(&Entry{Path: "/a", ObjectCount: 7}))
	ix.Close()

	ix2 := must(Open(path, Options{IsTesting: true}))
	t.Cleanup(ix2.Close)
	e := must(ix2.Get("/a"))
	isnonnil(t, e)
	deepEqual(t, e.ObjectCount, 7)
}

func TestEntryForProject(t *testing.T) {
	p := xcodeproj.New("/code/Demo.xcodeproj", xcodeproj.Options{UUIDGenerator: seq()})
	_, err := p.NewTarget("Demo", xcodeproj.ProductTypeApplication, xcodeproj.PlatformMacOS)
	isnilerr(t, err)

	e := EntryForProject(p)
	deepEqual(t, e.Path, filepath.Join("/code/Demo.xcodeproj", "project.pbxproj"))
	deepEqual(t, e.RootID, p.Root().ID())
	deepEqual(t, e.ArchiveVersion, 1)
	deepEqual(t, e.ObjectVersion, 46)
	deepEqual(t, e.ObjectCount, p.ObjectCount())
	deepEqual(t, e.Targets, []string{"Demo"})
	deepEqual(t, e.TreeFingerprint, p.TreeFingerprint())
	if e.IndexedAt == 0 {
		t.Errorf("** IndexedAt not set")
	}
}

func setup(t testing.TB) *Index {
	t.Helper()
	ix := must(Open(filepath.Join(t.TempDir(), "projects.db"), Options{IsTesting: true}))
	t.Cleanup(ix.Close)
	return ix
}

func seq() xcodeproj.UUIDGenerator {
	var n int
	return func(count int) []string {
		out := make([]string, count)
		for i := range out {
			n++
			out[i] = fmt.Sprintf("AA%022d", n)
		}
		return out
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

func isnil[T any](t testing.TB, a *T) {
	if a != nil {
		t.Helper()
		t.Errorf("** got %v, wanted nil", a)
	}
}

func isnonnil[T any](t testing.TB, a *T) {
	if a == nil {
		t.Helper()
		t.Errorf("** got nil %T, wanted non-nil", a)
	}
}

func isnilerr(t testing.TB, err error) {
	if err != nil {
		t.Helper()
		t.Errorf("** got error %v, wanted none", err)
	}
}
