// Command shelter manages the local pets catalog.
package main

import "github.com/mesh-intelligence/shelter/internal/cli"

func main() {
	cli.Execute()
}
