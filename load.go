package xcodeproj

import (
	"fmt"
	"sort"
)

// Document version ceilings. A document whose versions exceed these was
// written by a newer Xcode than this package understands, and loading it
// fails rather than risk silently dropping structure.
const (
	LastKnownArchiveVersion = 1
	LastKnownObjectVersion  = 56

	// DefaultObjectVersion is what freshly created projects declare,
	// corresponding to compatibilityVersion "Xcode 3.2".
	DefaultObjectVersion = 46
)

// loader materializes the object graph out of a decoded document,
// walking references from the root. Objects register before their
// references resolve so that cycles terminate.
type loader struct {
	proj *Project
	bags map[string]map[string]any
	objs map[string]*Object
}

func (p *Project) loadData(data []byte) error {
	doc, format, err := p.codec.DecodeDocument(data)
	if err != nil {
		return err
	}
	p.format = format
	return p.loadDocument(doc)
}

func (p *Project) loadDocument(doc map[string]any) error {
	av, _ := versionInt(doc["archiveVersion"])
	ov, _ := versionInt(doc["objectVersion"])
	if av > LastKnownArchiveVersion || ov > LastKnownObjectVersion {
		return fmt.Errorf("%w: archiveVersion %d, objectVersion %d", ErrUnsupportedVersion, av, ov)
	}
	p.archiveVersion = doc["archiveVersion"]
	p.objectVersion = doc["objectVersion"]
	if classes, ok := doc["classes"].(map[string]any); ok {
		p.classes = classes
	} else {
		p.classes = map[string]any{}
	}

	rootID, _ := doc["rootObject"].(string)
	if rootID == "" {
		return fmt.Errorf("%w: document declares no rootObject", ErrMissingRootObject)
	}
	rawObjects, ok := doc["objects"].(map[string]any)
	if !ok {
		return fmt.Errorf("xcodeproj: document has no objects dictionary")
	}

	l := &loader{
		proj: p,
		bags: make(map[string]map[string]any, len(rawObjects)),
		objs: make(map[string]*Object, len(rawObjects)),
	}
	for id, raw := range rawObjects {
		bag, ok := raw.(map[string]any)
		if !ok {
			return fmt.Errorf("xcodeproj: object %s is not a dictionary", id)
		}
		l.bags[id] = bag
	}
	if _, ok := l.bags[rootID]; !ok {
		return fmt.Errorf("%w: rootObject %s not present in objects", ErrMissingRootObject, rootID)
	}

	root, err := l.object(rootID)
	if err != nil {
		return err
	}
	p.root = root
	root.docReferrer = true

	if dropped := len(l.bags) - len(l.objs); dropped > 0 {
		p.logger.Debug("dropped objects unreachable from the project root",
			"path", p.path, "count", dropped)
	}
	return nil
}

// object returns the materialized object for id, building it from its
// bag on first request.
func (l *loader) object(id string) (*Object, error) {
	if o, ok := l.objs[id]; ok {
		return o, nil
	}
	bag, ok := l.bags[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDanglingReference, id)
	}
	isa, _ := bag["isa"].(string)
	if isa == "" {
		return nil, fmt.Errorf("xcodeproj: object %s carries no isa tag", id)
	}
	kind := l.proj.catalog.Kind(isa)
	if kind == nil {
		return nil, fmt.Errorf("%w: %s (object %s)", ErrUnknownIsa, isa, id)
	}

	o := newObject(l.proj, id, kind)
	l.objs[id] = o
	if err := l.proj.store.register(o); err != nil {
		return nil, err
	}
	if err := l.configure(o, bag); err != nil {
		return nil, err
	}
	return o, nil
}

// configure fills an object from its bag: reference attributes resolve
// to live objects, everything else is carried over verbatim. A loaded
// object gets exactly the attributes of its bag; class defaults apply
// only to factory-created objects.
func (l *loader) configure(o *Object, bag map[string]any) error {
	keys := make([]string, 0, len(bag))
	for k := range bag {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := bag[k]
		switch {
		case k == "isa":
			// Already consumed picking the kind.
		case o.kind.isToOne(k):
			id, ok := v.(string)
			if !ok {
				return fmt.Errorf("xcodeproj: %s.%s of object %s is not an object identifier", o.kind.Name, k, o.id)
			}
			target, err := l.object(id)
			if err != nil {
				return err
			}
			o.toOne[k] = target
			target.AddReferrer(o)
		case o.kind.isToMany(k):
			ids, ok := v.([]any)
			if !ok {
				return fmt.Errorf("xcodeproj: %s.%s of object %s is not an identifier list", o.kind.Name, k, o.id)
			}
			list := make([]*Object, 0, len(ids))
			for _, el := range ids {
				id, ok := el.(string)
				if !ok {
					return fmt.Errorf("xcodeproj: %s.%s of object %s holds a non-identifier element", o.kind.Name, k, o.id)
				}
				target, err := l.object(id)
				if err != nil {
					return err
				}
				list = append(list, target)
				target.AddReferrer(o)
			}
			o.toMany[k] = list
		default:
			o.attrs[k] = v
		}
	}
	return nil
}
