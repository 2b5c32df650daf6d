package main

import (
	"github.com/mkuran/framelink/cmd"
)

func main() {
	cmd.Execute()
}
