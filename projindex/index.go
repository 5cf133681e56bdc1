/*
Package projindex keeps a persistent catalog of project bundles: one
entry per project file, carrying the version stamps, target names and
content fingerprints captured when the project was last indexed. Tools
that operate across many projects use it to answer "what is here and
what changed" without re-parsing every document.

The catalog is a single Bolt database with msgpack-encoded entries keyed
by project file path. Writes go through short-lived transactions; an
Index handle is safe for concurrent use.
*/
package projindex

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"go.etcd.io/bbolt"

	"github.com/andreyvit/xcodeproj"
)

var projectsBucket = []byte("projects")

// Entry describes one indexed project bundle.
type Entry struct {
	Path            string   `msgpack:"p"`
	RootID          string   `msgpack:"r"`
	ArchiveVersion  int      `msgpack:"av"`
	ObjectVersion   int      `msgpack:"ov"`
	ObjectCount     int      `msgpack:"n"`
	Targets         []string `msgpack:"t"`
	Fingerprint     uint64   `msgpack:"f"`
	TreeFingerprint uint64   `msgpack:"tf"`
	IndexedAt       int64    `msgpack:"at"` // Unix seconds
}

// EntryForProject summarizes a loaded project for the catalog.
func EntryForProject(p *xcodeproj.Project) *Entry {
	var targets []string
	for _, t := range p.Targets() {
		targets = append(targets, t.AttrString("name"))
	}
	return &Entry{
		Path:            p.Path(),
		RootID:          p.Root().ID(),
		ArchiveVersion:  p.ArchiveVersion(),
		ObjectVersion:   p.ObjectVersion(),
		ObjectCount:     p.ObjectCount(),
		Targets:         targets,
		Fingerprint:     p.Fingerprint(),
		TreeFingerprint: p.TreeFingerprint(),
		IndexedAt:       time.Now().Unix(),
	}
}

type Index struct {
	bdb    *bbolt.DB
	logger *slog.Logger
}

type Options struct {
	Logger    *slog.Logger // nil means slog.Default()
	IsTesting bool
}

// Open opens or creates a catalog database at the given path.
func Open(path string, opt Options) (*Index, error) {
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	bopt := *bbolt.DefaultOptions
	bopt.Timeout = 10 * time.Second
	if opt.IsTesting {
		bopt.NoSync = true
		bopt.NoFreelistSync = true
	}

	bdb, err := bbolt.Open(path, 0o666, &bopt)
	if err != nil {
		return nil, fmt.Errorf("projindex: %w", err)
	}
	err = bdb.Update(func(btx *bbolt.Tx) error {
		_, err := btx.CreateBucketIfNotExists(projectsBucket)
		return err
	})
	if err != nil {
		bdb.Close()
		return nil, fmt.Errorf("projindex: %w", err)
	}
	return &Index{bdb: bdb, logger: opt.Logger}, nil
}

func (ix *Index) Path() string {
	return ix.bdb.Path()
}

func (ix *Index) Close() {
	err := ix.bdb.Close()
	if err != nil {
		panic(fmt.Errorf("projindex: closing: %w", err))
	}
}

// Put stores an entry, replacing any previous entry for the same path.
func (ix *Index) Put(e *Entry) error {
	if e.Path == "" {
		return fmt.Errorf("projindex: entry has no path")
	}
	data, err := encodeEntry(e)
	if err != nil {
		return fmt.Errorf("projindex: %w", err)
	}
	err = ix.bdb.Update(func(btx *bbolt.Tx) error {
		return btx.Bucket(projectsBucket).Put([]byte(e.Path), data)
	})
	if err != nil {
		return fmt.Errorf("projindex: %w", err)
	}
	ix.logger.Debug("indexed project", "path", e.Path, "objects", e.ObjectCount)
	return nil
}

// Get returns the entry for a project file path, or nil when the path
// has not been indexed.
func (ix *Index) Get(path string) (*Entry, error) {
	var e *Entry
	err := ix.bdb.View(func(btx *bbolt.Tx) error {
		data := btx.Bucket(projectsBucket).Get([]byte(path))
		if data == nil {
			return nil
		}
		var err error
		e, err = decodeEntry(data)
		if err != nil {
			return fmt.Errorf("projindex: entry %q: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// All returns every entry, ordered by project file path.
func (ix *Index) All() ([]*Entry, error) {
	var out []*Entry
	err := ix.bdb.View(func(btx *bbolt.Tx) error {
		c := btx.Bucket(projectsBucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			e, err := decodeEntry(v)
			if err != nil {
				return fmt.Errorf("projindex: entry %q: %w", k, err)
			}
			out = append(out, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the entry for a path. Deleting an unindexed path is
// not an error.
func (ix *Index) Delete(path string) error {
	err := ix.bdb.Update(func(btx *bbolt.Tx) error {
		return btx.Bucket(projectsBucket).Delete([]byte(path))
	})
	if err != nil {
		return fmt.Errorf("projindex: %w", err)
	}
	return nil
}

// Count reports the number of indexed projects.
func (ix *Index) Count() (int, error) {
	var n int
	err := ix.bdb.View(func(btx *bbolt.Tx) error {
		n = btx.Bucket(projectsBucket).Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("projindex: %w", err)
	}
	return n, nil
}

func encodeEntry(e *Entry) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.GetEncoder()
	enc.Reset(&buf)
	enc.SetSortMapKeys(true)
	err := enc.Encode(e)
	msgpack.PutEncoder(enc)
	if err != nil {
		return nil, fmt.Errorf("cannot encode entry for %s: %w", e.Path, err)
	}
	return buf.Bytes(), nil
}

func decodeEntry(data []byte) (*Entry, error) {
	var r bytes.Reader
	r.Reset(data)
	dec := msgpack.GetDecoder()
	dec.Reset(&r)
	e := new(Entry)
	err := dec.Decode(e)
	msgpack.PutDecoder(dec)
	if err != nil {
		return nil, err
	}
	return e, nil
}
