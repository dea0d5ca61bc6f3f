// Package main is the entry point for the matchreport CLI tool, which loads
// football event tables and builds pass networks and KPI reports.
package main

import "github.com/frasere/matchreport/cmd"

func main() {
	cmd.Execute()
}
