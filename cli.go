//go:build cli
// +build cli

package main

import (
	_ "shopfront.GO/custom"

	"shopfront.GO/cmd"
	"shopfront.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
