package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/lrsetup/cmd/lrsetup"
	"github.com/arthur-debert/lrsetup/pkg/ui/styles"
)

func main() {
	rootCmd := lrsetup.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.Render(styles.Error, fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
