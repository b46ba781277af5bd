package main

import (
	"github.com/sirupsen/logrus"

	"github.com/trjordan/glance/cmd"
)

// init configures the initial logging level for Glance.
//
// It sets logrus to InfoLevel by default, ensuring basic operational
// logs are visible unless overridden by flags like --verbose or
// --log-level in cmd.
func init() {
	logrus.SetLevel(logrus.InfoLevel)
}

// main serves as the entry point for the Glance service.
//
// It delegates execution to the cmd package, which handles CLI setup,
// flag parsing through the extensible registry, and the image API.
func main() {
	cmd.Execute()
}
