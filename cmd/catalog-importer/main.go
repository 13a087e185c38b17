// Package main is the entry point for the catalog importer service.
package main

import (
	"os"

	"github.com/donaldgifford/ebay-catalog-importer/cmd/catalog-importer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
