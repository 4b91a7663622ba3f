// Where: cli/internal/manifest/schema.go
// What: Embedded schema documents and the schema version.
// Why: Compile each manifest schema once and expose the revision.
package manifest

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const (
	assemblySchemaName = "cloud-assembly.schema.json"
	assetSchemaName    = "assets.schema.json"
	integSchemaName    = "integ.schema.json"
)

var (
	compileOnce    sync.Once
	compileErr     error
	compiledByName map[string]*jsonschema.Schema

	revisionOnce sync.Once
	revisionErr  error
	revision     int
)

// MinimumCLIVersion, when non-empty, is stamped into every saved
// manifest as minimumCliVersion. Wiring may set it at startup; an empty
// value removes the field on save.
var MinimumCLIVersion string

type revisionFile struct {
	Revision int `json:"revision"`
}

// Version returns the schema version carried by manifests this tool
// writes. The embedded revision integer is the major component; minor
// and patch are always zero on the producing side.
func Version() string {
	revisionOnce.Do(func() {
		data, err := schemaFS.ReadFile("schemas/version.json")
		if err != nil {
			revisionErr = err
			return
		}
		var file revisionFile
		if err := json.Unmarshal(data, &file); err != nil {
			revisionErr = fmt.Errorf("parse schemas/version.json: %w", err)
			return
		}
		revision = file.Revision
	})
	if revisionErr != nil {
		// The revision file is embedded at build time; a bad one is a
		// packaging bug, not a runtime condition.
		panic(revisionErr)
	}
	return fmt.Sprintf("%d.0.0", revision)
}

func compileSchemas() {
	compiler := jsonschema.NewCompiler()
	names := []string{assemblySchemaName, assetSchemaName, integSchemaName}
	for _, name := range names {
		data, err := schemaFS.ReadFile("schemas/" + name)
		if err != nil {
			compileErr = err
			return
		}
		if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
			compileErr = fmt.Errorf("add schema %s: %w", name, err)
			return
		}
	}
	compiledByName = make(map[string]*jsonschema.Schema, len(names))
	for _, name := range names {
		sch, err := compiler.Compile(name)
		if err != nil {
			compileErr = fmt.Errorf("compile schema %s: %w", name, err)
			return
		}
		compiledByName[name] = sch
	}
}

func loadSchema(name string) (*jsonschema.Schema, error) {
	compileOnce.Do(compileSchemas)
	if compileErr != nil {
		return nil, compileErr
	}
	return compiledByName[name], nil
}

// AssemblySchema returns the compiled assembly manifest schema.
func AssemblySchema() (*jsonschema.Schema, error) {
	return loadSchema(assemblySchemaName)
}

// AssetSchema returns the compiled asset manifest schema.
func AssetSchema() (*jsonschema.Schema, error) {
	return loadSchema(assetSchemaName)
}

// IntegSchema returns the compiled integ manifest schema.
func IntegSchema() (*jsonschema.Schema, error) {
	return loadSchema(integSchemaName)
}
