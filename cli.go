//go:build cli
// +build cli

package main

import (
	_ "restaurant.GO/custom"

	"restaurant.GO/cmd"
	"restaurant.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
