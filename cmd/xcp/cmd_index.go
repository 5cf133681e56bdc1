package main

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/andreyvit/xcodeproj"
	"github.com/andreyvit/xcodeproj/projindex"
	"github.com/andreyvit/xcodeproj/xcworkspace"
)

func runIndex(cmd *cobra.Command, args []string) {
	ix := openIndex()
	defer ix.Close()

	for _, bundle := range discoverProjects(args[0]) {
		p, err := xcodeproj.Open(bundle, xcodeproj.Options{})
		if err != nil {
			log.Printf("xcp: skipping %s: %v", bundle, err)
			continue
		}
		if err := ix.Put(projindex.EntryForProject(p)); err != nil {
			log.Fatalf("xcp: %v", err)
		}
		fmt.Printf("indexed %s\n", bundle)
	}
}

func runStatus(cmd *cobra.Command, args []string) {
	ix := openIndex()
	defer ix.Close()

	for _, bundle := range discoverProjects(args[0]) {
		p, err := xcodeproj.Open(bundle, xcodeproj.Options{})
		if err != nil {
			log.Printf("xcp: skipping %s: %v", bundle, err)
			continue
		}
		e, err := ix.Get(p.Path())
		if err != nil {
			log.Fatalf("xcp: %v", err)
		}
		switch {
		case e == nil:
			fmt.Printf("new       %s\n", bundle)
		case e.TreeFingerprint != p.TreeFingerprint():
			fmt.Printf("changed   %s\n", bundle)
		default:
			fmt.Printf("unchanged %s\n", bundle)
		}
	}
}

func runList(cmd *cobra.Command, args []string) {
	ix := openIndex()
	defer ix.Close()

	entries, err := ix.All()
	if err != nil {
		log.Fatalf("xcp: %v", err)
	}
	for _, e := range entries {
		fmt.Printf("%s\n", e.Path)
		fmt.Printf("  targets: %s\n", strings.Join(e.Targets, ", "))
		fmt.Printf("  objects: %d, fingerprint: %016x, indexed: %s\n",
			e.ObjectCount, e.TreeFingerprint, time.Unix(e.IndexedAt, 0).Format(time.RFC3339))
	}
}

// discoverProjects finds .xcodeproj bundles under root, following
// workspace manifests to projects they reference (which may live outside
// root). Bundles are reported once each, in discovery order.
func discoverProjects(root string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(bundle string) {
		bundle = filepath.Clean(bundle)
		if !seen[bundle] {
			seen[bundle] = true
			out = append(out, bundle)
		}
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".xcodeproj":
			add(path)
			return fs.SkipDir
		case ".xcworkspace":
			w, err := xcworkspace.Load(path)
			if err != nil {
				log.Printf("xcp: skipping %s: %v", path, err)
			} else {
				for _, bundle := range w.ProjectPaths() {
					add(bundle)
				}
			}
			return fs.SkipDir
		}
		return nil
	})
	if err != nil {
		log.Fatalf("xcp: %v", err)
	}
	return out
}

func openIndex() *projindex.Index {
	path := dbPath
	if path == "" {
		cacheDir, err := os.UserCacheDir()
		if err != nil {
			log.Fatalf("xcp: %v", err)
		}
		path = filepath.Join(cacheDir, "xcp", "projects.db")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Fatalf("xcp: %v", err)
	}
	ix, err := projindex.Open(path, projindex.Options{})
	if err != nil {
		log.Fatalf("xcp: %v", err)
	}
	return ix
}
