// Command schematic generates the JSON Schema documents of the demo catalog
// in examples/appconfig. Projects build the same binary over their own
// catalog with cli.Execute.
package main

import (
	"os"

	"github.com/reoring/schematic/cli"
	"github.com/reoring/schematic/examples/appconfig"
)

func main() {
	os.Exit(cli.Execute(appconfig.Catalog()))
}
