// Command sasm assembles a text program into the machine's flat
// binary image.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jamsch0/uni-project-svm/asm"
)

func main() {
	var output string

	root := &cobra.Command{
		Use:   "sasm <input.sasm>",
		Short: "Assemble a program into the machine's binary instruction format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			src, err := os.ReadFile(input) // #nosec G304 -- CLI-provided path
			if err != nil {
				return err
			}

			image, err := asm.Assemble(input, string(src))
			if err != nil {
				return err
			}

			outPath := output
			if outPath == "" {
				outPath = strings.TrimSuffix(input, ".sasm")
			}
			return os.WriteFile(outPath, image, 0644) // #nosec G306 -- program image, not a secret
		},
	}
	root.Flags().StringVarP(&output, "output", "o", "", "output file path")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "sasm: %v\n", err)
		os.Exit(1)
	}
}
