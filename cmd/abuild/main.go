package main

import (
	"github.com/stefanreuther/accidental-build/cmd/abuild/internal"
)

func main() {
	internal.Execute()
}
