package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/andreyvit/xcodeproj"
)

func runCompare(cmd *cobra.Command, args []string) {
	a := openProject(args[0])
	b := openProject(args[1])

	d := xcodeproj.ProjectDiff(a, b, args[0], args[1])
	if d == nil {
		fmt.Println("projects are equivalent")
		return
	}

	out, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		log.Fatalf("xcp: %v", err)
	}
	fmt.Println(string(out))
	os.Exit(1)
}
