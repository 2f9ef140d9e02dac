package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/enderchest/cmd/enderchest"
	"github.com/arthur-debert/enderchest/pkg/ui/styles"
)

func main() {
	rootCmd := enderchest.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := styles.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
