package main

import (
	"github.com/knobase/kb/cmd"
)

func main() {
	cmd.Execute()
}
