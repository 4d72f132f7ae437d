package main

import (
	"fmt"
	"os"

	_ "github.com/brimdata/zcol/cmd/zcol/cat"
	_ "github.com/brimdata/zcol/cmd/zcol/create"
	"github.com/brimdata/zcol/cmd/zcol/root"
	_ "github.com/brimdata/zcol/cmd/zcol/streams"
	_ "github.com/brimdata/zcol/cmd/zcol/types"
)

func main() {
	if err := root.Zcol.ExecRoot(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
