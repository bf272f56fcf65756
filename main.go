// Command shipwright plans package installs, removals, and exports for a
// source-based package manager's feature graph.
package main

import "github.com/papapumpkin/shipwright/cmd"

func main() {
	cmd.Execute()
}
