package xcodeproj

import (
	"fmt"
	"path"
	"slices"
)

// Object is a single entry of a project document: an attribute bag with a
// fixed identifier and class. Scalar attributes (strings, arrays of
// strings, nested dictionaries) are held verbatim; attributes that the
// object's Kind declares as references are held as live pointers to other
// objects of the same project and must only be mutated through SetRef,
// AppendRef, InsertRef and RemoveRef so that the referrer ledger stays
// consistent.
type Object struct {
	proj   *Project
	id     string
	kind   *Kind
	attrs  map[string]any
	toOne  map[string]*Object
	toMany map[string][]*Object

	// Distinct objects currently referencing this one, insertion order.
	// The root object additionally carries the document referrer bit,
	// which never goes away while the project exists.
	referrers   []*Object
	docReferrer bool
}

func newObject(p *Project, id string, kind *Kind) *Object {
	return &Object{
		proj:   p,
		id:     id,
		kind:   kind,
		attrs:  make(map[string]any),
		toOne:  make(map[string]*Object),
		toMany: make(map[string][]*Object),
	}
}

func (o *Object) ID() string        { return o.id }
func (o *Object) Isa() string       { return o.kind.Name }
func (o *Object) Kind() *Kind       { return o.kind }
func (o *Object) Project() *Project { return o.proj }

func (o *Object) String() string {
	return fmt.Sprintf("%s(%s, %q)", o.kind.Name, o.id, o.DisplayName())
}

// DisplayName is the human-facing name of the object: its name attribute,
// else the base name of its path attribute, else its class name. Group
// path lookup matches against display names.
func (o *Object) DisplayName() string {
	if v, ok := o.attrs["name"].(string); ok && v != "" {
		return v
	}
	if v, ok := o.attrs["path"].(string); ok && v != "" {
		return path.Base(v)
	}
	return o.kind.Name
}

// Attr returns a scalar attribute, or nil when absent. Dictionary and
// array values are returned live; mutating them mutates the object.
func (o *Object) Attr(name string) any {
	return o.attrs[name]
}

// AttrString returns a string-valued attribute, or "" when absent or not
// a string.
func (o *Object) AttrString(name string) string {
	v, _ := o.attrs[name].(string)
	return v
}

// SetAttr sets a scalar attribute. Panics if name is the isa tag or a
// declared reference attribute of the object's class; references must go
// through SetRef and friends.
func (o *Object) SetAttr(name string, value any) {
	o.kind.mustScalar(name)
	o.attrs[name] = value
}

// RemoveAttr deletes a scalar attribute. Same restrictions as SetAttr.
func (o *Object) RemoveAttr(name string) {
	o.kind.mustScalar(name)
	delete(o.attrs, name)
}

// Ref returns the target of a to-one reference attribute, or nil when
// unset. Panics if the object's class does not declare name as to-one.
func (o *Object) Ref(name string) *Object {
	o.kind.mustToOne(name)
	return o.toOne[name]
}

// SetRef points a to-one reference attribute at target, detaching the
// previous target if any. A nil target clears the attribute. The old
// target keeps this object as a referrer while another attribute still
// points at it.
func (o *Object) SetRef(name string, target *Object) {
	o.kind.mustToOne(name)
	old := o.toOne[name]
	if old == target {
		return
	}
	if target != nil {
		o.proj.mustOwn(target)
		o.toOne[name] = target
		target.AddReferrer(o)
	} else {
		delete(o.toOne, name)
	}
	if old != nil && !o.references(old) {
		old.RemoveReferrer(o)
	}
}

// Refs returns a copy of a to-many reference attribute's target list.
// Panics if the object's class does not declare name as to-many.
func (o *Object) Refs(name string) []*Object {
	o.kind.mustToMany(name)
	return slices.Clone(o.toMany[name])
}

// AppendRef appends target to a to-many reference attribute.
func (o *Object) AppendRef(name string, target *Object) {
	o.InsertRef(name, len(o.toMany[name]), target)
}

// InsertRef inserts target at position i of a to-many reference
// attribute.
func (o *Object) InsertRef(name string, i int, target *Object) {
	o.kind.mustToMany(name)
	o.proj.mustOwn(nonNil(target))
	o.toMany[name] = slices.Insert(o.toMany[name], i, target)
	target.AddReferrer(o)
}

// RemoveRef removes every occurrence of target from a to-many reference
// attribute. This object leaves target's referrer set only once none of
// its attributes reference target; removing the last referrer of a
// non-root object drops it from the project.
func (o *Object) RemoveRef(name string, target *Object) {
	o.kind.mustToMany(name)
	list := o.toMany[name]
	n := len(list)
	list = slices.DeleteFunc(list, func(t *Object) bool { return t == target })
	if len(list) == n {
		return
	}
	o.toMany[name] = list
	if !o.references(target) {
		target.RemoveReferrer(o)
	}
}

// references reports whether any reference attribute of o currently
// points at target.
func (o *Object) references(target *Object) bool {
	for _, t := range o.toOne {
		if t == target {
			return true
		}
	}
	for _, list := range o.toMany {
		if slices.Contains(list, target) {
			return true
		}
	}
	return false
}

// Referrers returns the distinct objects currently referencing this one,
// in the order the references were first established. The document
// referrer of the root object is not an Object and is not included.
func (o *Object) Referrers() []*Object {
	return slices.Clone(o.referrers)
}

// ReferrerCount counts distinct referrers, including the document
// referrer of the root object.
func (o *Object) ReferrerCount() int {
	n := len(o.referrers)
	if o.docReferrer {
		n++
	}
	return n
}

// AddReferrer records that from holds a reference to this object.
// Idempotent: a source appears in the referrer set at most once no matter
// how many attributes of it point here.
func (o *Object) AddReferrer(from *Object) {
	nonNil(from)
	if slices.Contains(o.referrers, from) {
		return
	}
	o.referrers = append(o.referrers, from)
}

// RemoveReferrer records that from no longer holds any reference to this
// object. When the referrer set becomes empty and this is not the root,
// the object is removed from the project's store.
func (o *Object) RemoveReferrer(from *Object) {
	i := slices.Index(o.referrers, from)
	if i < 0 {
		return
	}
	o.referrers = slices.Delete(o.referrers, i, i+1)
	if len(o.referrers) == 0 && !o.docReferrer {
		o.proj.store.remove(o.id)
	}
}

// RemoveFromProject unconditionally removes the object: every referrer
// drops its references to it, and the object releases its own outgoing
// references, recursively pruning targets left without referrers. This
// is the whole-subtree removal operation; plain detachment via RemoveRef
// or SetRef never cascades. Panics on the root object, which cannot be
// removed while the project exists.
func (o *Object) RemoveFromProject() {
	if o.docReferrer {
		panic("xcodeproj: cannot remove the root object")
	}
	for _, from := range o.Referrers() {
		from.removeAllRefsTo(o)
	}
	o.releaseOutgoing()
	// A never-attached object has no referrers to begin with, so the
	// ledger never fires; drop it from the store directly.
	o.proj.store.remove(o.id)
}

// releaseOutgoing drops every outgoing reference of a removed object.
// A target pruned by losing its last referrer gets the same treatment,
// cascading down the subtree. Objects on a reference cycle keep each
// other alive; such cycles are only dropped by a reload, which walks
// from the root.
func (o *Object) releaseOutgoing() {
	targets := make([]*Object, 0, len(o.toOne)+len(o.toMany))
	for name, t := range o.toOne {
		delete(o.toOne, name)
		targets = append(targets, t)
	}
	for name, list := range o.toMany {
		delete(o.toMany, name)
		targets = append(targets, list...)
	}
	for _, t := range dedupObjects(targets) {
		wasRegistered := o.proj.store.contains(t.id)
		t.RemoveReferrer(o)
		if wasRegistered && !o.proj.store.contains(t.id) {
			t.releaseOutgoing()
		}
	}
}

// removeAllRefsTo erases target from every reference attribute of o and
// detaches o from target's referrer set.
func (o *Object) removeAllRefsTo(target *Object) {
	touched := false
	for name, t := range o.toOne {
		if t == target {
			delete(o.toOne, name)
			touched = true
		}
	}
	for name, list := range o.toMany {
		n := len(list)
		list = slices.DeleteFunc(list, func(t *Object) bool { return t == target })
		if len(list) != n {
			o.toMany[name] = list
			touched = true
		}
	}
	if touched {
		target.RemoveReferrer(o)
	}
}

// applyDefaults configures a factory-created object with its class
// defaults. The load path never calls this: a loaded object must carry
// exactly the attributes of its document bag.
func (o *Object) applyDefaults() {
	for k, v := range o.kind.Defaults {
		if o.kind.isToMany(k) {
			o.toMany[k] = []*Object{}
		} else {
			o.attrs[k] = copyValue(v)
		}
	}
}

// flatten converts the object back to a document attribute bag:
// isa tag, scalar attributes verbatim, references as identifiers.
func (o *Object) flatten() map[string]any {
	bag := make(map[string]any, 1+len(o.attrs)+len(o.toOne)+len(o.toMany))
	bag["isa"] = o.kind.Name
	for k, v := range o.attrs {
		bag[k] = copyValue(v)
	}
	for k, target := range o.toOne {
		bag[k] = target.id
	}
	for k, list := range o.toMany {
		ids := make([]any, len(list))
		for i, target := range list {
			ids[i] = target.id
		}
		bag[k] = ids
	}
	return bag
}

// treeHash is the identifier-insensitive projection: referenced objects
// are inlined in place of their identifiers, and a displayName entry is
// added for diff readability. Shared objects repeat once per reference
// path. A reference cycle is cut by emitting an empty dictionary at the
// point of re-entry, keeping the output finite and deterministic.
func (o *Object) treeHash(onPath map[*Object]bool) map[string]any {
	if onPath[o] {
		return map[string]any{}
	}
	onPath[o] = true
	defer delete(onPath, o)

	h := make(map[string]any, 2+len(o.attrs)+len(o.toOne)+len(o.toMany))
	h["isa"] = o.kind.Name
	h["displayName"] = o.DisplayName()
	for k, v := range o.attrs {
		h[k] = copyValue(v)
	}
	for k, target := range o.toOne {
		h[k] = target.treeHash(onPath)
	}
	for k, list := range o.toMany {
		trees := make([]any, len(list))
		for i, target := range list {
			trees[i] = target.treeHash(onPath)
		}
		h[k] = trees
	}
	return h
}

func dedupObjects(list []*Object) []*Object {
	out := make([]*Object, 0, len(list))
	for _, o := range list {
		if !slices.Contains(out, o) {
			out = append(out, o)
		}
	}
	return out
}
