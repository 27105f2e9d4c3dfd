// Package main is a command line tool for exercising the differential drive kinematic model.
package main

import (
	"os"

	"go.viam.com/diffdrive/logging"
)

func main() {
	err := newApp(os.Stdout, os.Stderr).Run(os.Args)
	logger := logging.Global()
	if err != nil {
		logger.Errorf("%v", err)
	}
	//nolint:errcheck
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
