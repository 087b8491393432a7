package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/lrsetup/cmd/lrsetup"
	"github.com/arthur-debert/lrsetup/internal/version"
)

func main() {
	rootCmd := lrsetup.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "LRSETUP",
		Section: "1",
		Source:  "lrsetup " + version.Version,
		Manual:  "lrsetup manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
