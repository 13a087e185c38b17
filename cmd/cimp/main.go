// Package main is the entry point for the cimp CLI client.
package main

import (
	"github.com/donaldgifford/ebay-catalog-importer/cmd/cimp/cmd"
)

func main() {
	cmd.Execute()
}
