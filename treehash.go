package xcodeproj

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// TreeHash returns the identifier-insensitive projection of the
// document: the version stamps normalized to decimal strings, the
// classes dictionary, and the root object's tree with every reference
// inlined in place of its identifier. Two projects that differ only in
// object identifiers produce equal trees.
func (p *Project) TreeHash() map[string]any {
	av, _ := versionInt(p.archiveVersion)
	ov, _ := versionInt(p.objectVersion)
	return map[string]any{
		"archiveVersion": strconv.Itoa(av),
		"classes":        copyValue(p.classes),
		"objectVersion":  strconv.Itoa(ov),
		"rootObject":     p.root.treeHash(make(map[*Object]bool)),
	}
}

// Fingerprint digests the full document, identifiers included, into a
// 64-bit value. Equal documents fingerprint identically regardless of
// map iteration order.
func (p *Project) Fingerprint() uint64 {
	return fingerprintValue(p.ToHash())
}

// TreeFingerprint digests the identifier-insensitive projection, so two
// structurally equal projects match even after identifier reassignment.
func (p *Project) TreeFingerprint() uint64 {
	return fingerprintValue(p.TreeHash())
}

func fingerprintValue(v any) uint64 {
	d := xxhash.New()
	enc := msgpack.GetEncoder()
	enc.ResetDict(d, nil)
	enc.SetSortMapKeys(true)
	err := enc.Encode(v)
	msgpack.PutEncoder(enc)
	if err != nil {
		panic(fmt.Errorf("xcodeproj: failed to encode document for fingerprinting: %w", err))
	}
	return d.Sum64()
}
