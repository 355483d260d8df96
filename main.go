package main

import (
	"os"

	"github.com/emurenMRz/list-unsubscribe/internal/cli"
)

func main() {
	p := &cli.Program{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	os.Exit(p.Run(os.Args[1:]))
}
