// Command kovocab builds a Korean vocabulary list from subtitle
// translations.
//
//	kovocab extract -i episode01.csv -o vocab.csv
//	kovocab extract -i episode02.csv --state ~/.kovocab.state -f json
//	kovocab strip --trace 무서워요 학교에서도
//
// Every flag can also be set in $HOME/.kovocab.yaml or through a
// KOVOCAB_* environment variable (KOVOCAB_MAX_SENTENCES=3).
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "kovocab: %v\n", err)
		os.Exit(1)
	}
}
