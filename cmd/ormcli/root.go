package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/relormdb/relorm/config"
	"github.com/relormdb/relorm/idl"
	"github.com/relormdb/relorm/relation"
)

const envPrefix = "ORMCLI"

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "ormcli",
		Short: "Inspect and exercise a relorm schema registry from the command line",
		Long: `ormcli loads an ORM configuration file, registers its tables against a
schema registry, and runs one of a small number of canned CORE
operations against it, printing the generated PostgreSQL SQL.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)

	root.PersistentFlags().StringVar(&configPath, "config", "ormcli.yaml", "path to the ORM configuration file")

	root.AddCommand(newDDLCommand(&configPath))
	root.AddCommand(newQueryCommand(&configPath))

	return root
}

// loadRegistry builds a Registry against demoPool (ormcli's built-in
// demo schema, since this CLI has no real .proto loader) and populates
// it from the configuration file at path.
func loadRegistry(path string) (*relation.Registry, error) {
	reg := relation.NewRegistry(demoPool())
	loader := config.NewLoader(path)
	if err := loader.Populate(reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// demoPool is the fixed IDL descriptor pool ormcli demonstrates
// against: a single message matching the "simple_message" example
// carried through the CORE's own tests and spec.md's seed scenario.
func demoPool() *idl.StaticPool {
	return idl.NewStaticPool(demoMessage)
}
