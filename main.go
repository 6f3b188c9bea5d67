package main

import "github.com/nx-tools/nxgraph/cmd"

func main() {
	cmd.Execute()
}
