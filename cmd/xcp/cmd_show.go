package main

import (
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andreyvit/xcodeproj"
)

func runShow(cmd *cobra.Command, args []string) {
	p := openProject(args[0])
	fmt.Printf("%s\n", p.Path())
	fmt.Printf("  format:          %s\n", p.Format())
	fmt.Printf("  archive version: %d\n", p.ArchiveVersion())
	fmt.Printf("  object version:  %d\n", p.ObjectVersion())
	fmt.Printf("  objects:         %d\n", p.ObjectCount())
	fmt.Printf("  fingerprint:     %016x\n", p.TreeFingerprint())

	fmt.Printf("targets:\n")
	for _, t := range p.Targets() {
		fmt.Printf("  %s (%s)\n", t.AttrString("name"), t.AttrString("productType"))
	}

	fmt.Printf("groups:\n")
	printGroupTree(p.MainGroup(), 1)
}

func runTargets(cmd *cobra.Command, args []string) {
	p := openProject(args[0])
	for _, t := range p.Targets() {
		fmt.Printf("%s\n", t.AttrString("name"))
	}
}

func runSort(cmd *cobra.Command, args []string) {
	p := openProject(args[0])
	p.Sort()
	if err := p.Save(); err != nil {
		log.Fatalf("xcp: %v", err)
	}
	fmt.Printf("sorted %s\n", p.Path())
}

func printGroupTree(o *xcodeproj.Object, depth int) {
	fmt.Printf("%s%s\n", strings.Repeat("  ", depth), o.DisplayName())
	if !slices.Contains(o.Kind().ToMany, "children") {
		return
	}
	for _, child := range o.Refs("children") {
		printGroupTree(child, depth+1)
	}
}

func openProject(path string) *xcodeproj.Project {
	p, err := xcodeproj.Open(path, xcodeproj.Options{})
	if err != nil {
		log.Fatalf("xcp: %v", err)
	}
	return p
}
