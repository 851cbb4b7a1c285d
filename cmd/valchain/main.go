// Command valchain renders, flattens and describes violation reports
// produced by the valchain library.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	a := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := a.root().Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		// flag and argument errors from cobra
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}
