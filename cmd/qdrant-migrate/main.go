// Command qdrant-migrate copies collections, their payload indexes and all
// points from one Qdrant server to another.
//
//	qdrant-migrate --source-host old.internal --dest-host new.internal \
//	    --collections articles,users --on-collision Recreate
package main

import (
	"fmt"
	"os"

	"go.uber.org/fx"
)

func main() {
	cfg, err := LoadConfig(os.Args[1:])
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "qdrant-migrate: %v\n", err)
		os.Exit(exitConfig)
	}

	fx.New(appOptions(cfg, dial)).Run()
}
