package xcodeproj

import "testing"

// buildTwin constructs the same small project content regardless of the
// identifier generator, so tests can compare structurally equal projects
// with disjoint identifiers.
func buildTwin(gen UUIDGenerator) *Project {
	p := New("", Options{UUIDGenerator: gen})
	target := must(p.NewTarget("App", ProductTypeApplication, PlatformMacOS))
	g := p.NewGroup(nil, "Sources")
	f := p.NewFileReference(g, "main.swift")
	bf := p.NewObject("PBXBuildFile")
	bf.SetRef("fileRef", f)
	p.BuildPhase(target, "PBXSourcesBuildPhase").AppendRef("files", bf)
	must(p.AddSystemFramework(target, "Cocoa"))
	return p
}

func TestTreeHashIgnoresIdentifiers(t *testing.T) {
	a := buildTwin(seqIDs("AA"))
	b := buildTwin(seqIDs("BB"))

	deepEqual(t, a.TreeHash(), b.TreeHash())
	deepEqual(t, a.TreeFingerprint(), b.TreeFingerprint())
	if d := ProjectDiff(a, b, "a", "b"); d != nil {
		t.Errorf("** got diff %v, wanted none", d)
	}

	// The full documents still differ, identifier by identifier.
	if a.Equal(b) {
		t.Errorf("** documents with disjoint identifiers compare equal")
	}
	if a.Fingerprint() == b.Fingerprint() {
		t.Errorf("** identical fingerprints despite disjoint identifiers")
	}
}

func TestTreeHashShape(t *testing.T) {
	p := loadSample(t)
	tree := p.TreeHash()

	deepEqual(t, tree["archiveVersion"], "1")
	deepEqual(t, tree["objectVersion"], "46")

	root := tree["rootObject"].(map[string]any)
	deepEqual(t, root["isa"], "PBXProject")
	deepEqual(t, root["displayName"], "PBXProject")

	main := root["mainGroup"].(map[string]any)
	children := main["children"].([]any)
	deepEqual(t, len(children), 3)
	sources := children[0].(map[string]any)
	deepEqual(t, sources["displayName"], "Sources")
	deepEqual(t, len(sources["children"].([]any)), 3)

	// A shared object is inlined once per reference path: the product
	// file appears under the Products group and under the target.
	targets := root["targets"].([]any)
	target := targets[0].(map[string]any)
	product := target["productReference"].(map[string]any)
	deepEqual(t, product["displayName"], "Sample.app")
	products := root["productRefGroup"].(map[string]any)
	deepEqual(t, products["children"].([]any)[0].(map[string]any)["displayName"], "Sample.app")
}

func TestTreeHashCutsCycles(t *testing.T) {
	p := New("", Options{UUIDGenerator: seqIDs("AA")})
	target := must(p.NewTarget("App", ProductTypeApplication, PlatformMacOS))
	dep := p.NewObject("PBXTargetDependency")
	dep.SetRef("target", target)
	target.AppendRef("dependencies", dep)

	tree := p.TreeHash()
	root := tree["rootObject"].(map[string]any)
	tt := root["targets"].([]any)[0].(map[string]any)
	dd := tt["dependencies"].([]any)[0].(map[string]any)
	deepEqual(t, dd["isa"], "PBXTargetDependency")

	// Re-entering the target on the same path collapses to an empty
	// dictionary instead of recursing forever.
	deepEqual[any](t, dd["target"], map[string]any{})

	// The projection stays deterministic with the cycle in place.
	deepEqual(t, p.TreeFingerprint(), p.TreeFingerprint())
}

func TestFingerprintTracksMutations(t *testing.T) {
	p := loadSample(t)
	f1 := p.Fingerprint()
	t1 := p.TreeFingerprint()
	deepEqual(t, p.Fingerprint(), f1)

	p.GroupAtPath("Sources").SetAttr("name", "Src")
	if p.Fingerprint() == f1 {
		t.Errorf("** fingerprint unchanged after a mutation")
	}
	if p.TreeFingerprint() == t1 {
		t.Errorf("** tree fingerprint unchanged after a visible mutation")
	}
}
