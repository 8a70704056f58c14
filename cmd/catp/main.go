package main

import (
	"fmt"
	"os"

	"github.com/pcuci/catp/internal/cli"
	"github.com/pcuci/catp/pkg/style"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.Error("%v", err))
		os.Exit(1)
	}
}
