// Command vinexcheck reports compile errors for patterns passed on argv.
// It is a linter, not a REPL: it exits nonzero if any pattern fails to
// compile and prints nothing for patterns that succeed unless -v is set.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/vinex/vinex"
)

func main() {
	caseInsensitive := flag.Bool("i", false, "compile patterns case-insensitively")
	verbose := flag.Bool("v", false, "print a line for every pattern, including ones that compile cleanly")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: vinexcheck [-i] [-v] pattern [pattern...]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	var opts []vinex.CompileOption
	if *caseInsensitive {
		opts = append(opts, vinex.CaseInsensitive())
	}

	log.SetFlags(0)
	log.SetPrefix("vinexcheck: ")

	failed := 0
	for _, pattern := range flag.Args() {
		if _, err := vinex.Compile(pattern, opts...); err != nil {
			log.Printf("%s: %v", pattern, err)
			failed++
			continue
		}
		if *verbose {
			fmt.Printf("%s: ok\n", pattern)
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}
