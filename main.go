// omapedit edits ordered maps stored as literals, JSON or msgpack.
package main

import "github.com/rgolang/omapedit/cli"

var version = "dev"

func main() {
	cli.Execute(version)
}
