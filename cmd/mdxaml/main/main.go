package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/mdxaml/cmd/mdxaml"
	"github.com/arthur-debert/mdxaml/pkg/errors"
	"github.com/arthur-debert/mdxaml/pkg/ui/styles"
)

func main() {
	rootCmd := mdxaml.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := styles.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		if errors.IsFatal(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
