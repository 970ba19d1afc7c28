package main

import "github.com/deploymenttheory/go-opkeychain/cmd"

func main() {
	cmd.Execute()
}
