// Command ormcli is the thin CLI front end for the relorm CORE: it
// loads a configuration file, registers its tables against a
// relation.Registry, and prints the SQL the CORE emits for a couple of
// canned operations. It owns no CORE semantics of its own.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logrus.WithError(err).Error("ormcli failed")
		os.Exit(1)
	}
}
