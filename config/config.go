// Package config is the ambient loader that turns an on-disk ORM
// configuration file into calls against a *relation.Registry. It is
// explicitly not part of the CORE: the CORE never opens a file or
// reads an environment variable, and this package is the external
// collaborator that does both on the CORE's behalf.
package config

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/relormdb/relorm/ormerr"
	"github.com/relormdb/relorm/relation"
)

// File is the on-disk shape of the ORM configuration: a list of table
// entries matching relation.TableConfig's JSON/YAML tags.
type File struct {
	Tables []TableEntry `yaml:"tables" mapstructure:"tables"`
}

// TableEntry mirrors relation.TableConfig with the struct tags YAML
// and viper decoding need.
type TableEntry struct {
	TableNumber       uint32 `yaml:"table_number" mapstructure:"table_number"`
	SnakeCase         string `yaml:"snake_case" mapstructure:"snake_case"`
	CamelCase         string `yaml:"camel_case" mapstructure:"camel_case"`
	Scheme            string `yaml:"scheme" mapstructure:"scheme"`
	CustomTypeHandler bool   `yaml:"custom_type_handler" mapstructure:"custom_type_handler"`
}

func (t TableEntry) toTableConfig() relation.TableConfig {
	return relation.TableConfig{
		TableNumber:       t.TableNumber,
		SnakeCase:         t.SnakeCase,
		CamelCase:         t.CamelCase,
		Scheme:            t.Scheme,
		CustomTypeHandler: t.CustomTypeHandler,
	}
}

// Loader reads an ORM configuration file, applies ORM_-prefixed
// environment overrides through viper, and drives Registry.RegisterRoot
// for every table it finds. Callers that want hot reload call Watch.
type Loader struct {
	v    *viper.Viper
	path string
	log  *logrus.Entry
}

// NewLoader returns a Loader bound to the configuration file at path.
// The format (YAML or JSON) is inferred from the file extension by
// viper; ORM_ prefixed environment variables override any matching key
// ("ORM_TABLES" has no single-value meaning, but nested overrides like
// "ORM_TABLES.0.SNAKE_CASE" follow viper's usual AutomaticEnv rules).
func NewLoader(path string) *Loader {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("ORM")
	v.AutomaticEnv()

	return &Loader{v: v, path: path, log: logrus.WithField("component", "config")}
}

// Load parses the configuration file into a File, independent of the
// registry. Exposed separately from Populate so callers can inspect or
// validate the raw table list before committing it.
func (l *Loader) Load() (*File, error) {
	if err := l.v.ReadInConfig(); err != nil {
		return nil, ormerr.Wrap(ormerr.LoadFailure, l.path, err, "reading config file")
	}

	var f File
	if err := l.v.Unmarshal(&f); err != nil {
		return nil, ormerr.Wrap(ormerr.LoadFailure, l.path, err, "decoding config into table list")
	}
	return &f, nil
}

// Populate loads the configuration and registers every table it names
// against reg, stopping at the first registration failure (mirroring
// RegisterRoot's own all-or-nothing-per-call semantics; tables already
// registered from earlier entries in the same file stay registered).
func (l *Loader) Populate(reg *relation.Registry) error {
	f, err := l.Load()
	if err != nil {
		return err
	}

	// traceID ties every "registering table" line from this Populate
	// call together in a shared log stream, the way a request id would
	// across an RPC's log lines — useful once Watch starts firing
	// Populate repeatedly over the process lifetime.
	traceID := uuid.NewString()
	log := l.log.WithField("trace_id", traceID)

	for _, entry := range f.Tables {
		log.WithFields(logrus.Fields{
			"table_number": entry.TableNumber,
			"snake_case":   entry.SnakeCase,
			"scheme":       entry.Scheme,
		}).Info("registering table")

		if err := reg.RegisterRoot(entry.toTableConfig()); err != nil {
			return err
		}
	}
	return nil
}

// Watch installs an fsnotify watcher on the configuration file and
// calls Populate again, against a cleared reg, every time the file
// changes on disk. It blocks until ctx-equivalent stop channel closes
// or the watcher errors out; callers typically run it in its own
// goroutine. Populate failures are logged, not returned, since a bad
// edit mid-watch should not crash the long-running process that
// started the watch.
func (l *Loader) Watch(reg *relation.Registry, stop <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return ormerr.Wrap(ormerr.LoadFailure, l.path, err, "starting config file watcher")
	}
	defer watcher.Close()

	if err := watcher.Add(l.path); err != nil {
		return ormerr.Wrap(ormerr.LoadFailure, l.path, err, "watching config file")
	}

	for {
		select {
		case <-stop:
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			l.log.WithField("event", event.Op.String()).Info("config file changed, reloading")
			reg.Clear()
			if err := l.Populate(reg); err != nil {
				l.log.WithError(err).Error("config reload failed, registry holds only the tables registered before the failure")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			l.log.WithError(err).Error("config watcher error")
		}
	}
}

// WriteYAML serializes f to path using gopkg.in/yaml.v3, the format
// velox's own tooling writes its generated configuration in.
func WriteYAML(path string, f *File) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return ormerr.Wrap(ormerr.LoadFailure, path, err, "encoding config as YAML")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ormerr.Wrap(ormerr.LoadFailure, path, err, "writing config file")
	}
	return nil
}

// String renders a compact summary, useful in log lines.
func (f *File) String() string {
	return fmt.Sprintf("config.File{%d tables}", len(f.Tables))
}
