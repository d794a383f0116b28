// cmreport renders confusion-matrix reports.
//
// Usage:
//
//	cmreport report -f <labels.yaml|json> [-o <out>] [--format png|pdf|svg|ascii|markdown|csv]
//	cmreport demo [--config run.yaml] [--samples N] [--classes K] [--seed S] [-o <out>]
//	cmreport version
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
