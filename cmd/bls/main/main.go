package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/bls/cmd/bls"
	"github.com/arthur-debert/bls/pkg/ui/styles"
)

func main() {
	rootCmd := bls.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.Render("Error", fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
