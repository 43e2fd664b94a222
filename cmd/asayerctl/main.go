package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "asayerctl: %v\n", err)
		os.Exit(1)
	}
}
