// Where: cli/internal/manifest/io.go
// What: Load/save for the three manifest kinds.
// Why: One seam for version stamping, validation, and the casing patch.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// PatchFunc transforms a manifest document before write or after read.
type PatchFunc func(map[string]any) map[string]any

// SaveAssemblyManifest validates and writes an assembly manifest. The
// version and minimumCliVersion fields are always stamped with the
// current tool's values; caller-supplied values are discarded. Stack
// tags are rewritten to the capitalized wire casing on the way out.
func SaveAssemblyManifest(m *AssemblyManifest, path string) error {
	sch, err := AssemblySchema()
	if err != nil {
		return err
	}
	return saveManifest(m, path, sch, PatchStackTagsOnWrite)
}

// LoadAssemblyManifest reads, patches, and validates an assembly
// manifest. Stack tags are rewritten to the object-model casing before
// validation.
func LoadAssemblyManifest(path string, opts ValidateOptions) (*AssemblyManifest, error) {
	sch, err := AssemblySchema()
	if err != nil {
		return nil, err
	}
	obj, err := loadManifest(path, sch, PatchStackTagsOnRead, opts)
	if err != nil {
		return nil, err
	}
	var m AssemblyManifest
	if err := decodeObject(obj, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveAssetManifest validates and writes an asset manifest.
func SaveAssetManifest(m *AssetManifest, path string) error {
	sch, err := AssetSchema()
	if err != nil {
		return err
	}
	return saveManifest(m, path, sch, nil)
}

// LoadAssetManifest reads and validates an asset manifest. The
// to-object-model patch runs on read so any stack-tag shaped payload is
// normalized; asset manifests carry no artifacts, so this is usually a
// no-op beyond key cleanup.
func LoadAssetManifest(path string, opts ValidateOptions) (*AssetManifest, error) {
	sch, err := AssetSchema()
	if err != nil {
		return nil, err
	}
	obj, err := loadManifest(path, sch, PatchStackTagsOnRead, opts)
	if err != nil {
		return nil, err
	}
	var m AssetManifest
	if err := decodeObject(obj, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveIntegManifest validates and writes an integ manifest.
func SaveIntegManifest(m *IntegManifest, path string) error {
	sch, err := IntegSchema()
	if err != nil {
		return err
	}
	return saveManifest(m, path, sch, nil)
}

// LoadIntegManifest reads and validates an integ manifest. TestCases is
// guaranteed non-nil: the schema keeps the field optional for
// compatibility, but the public contract does not.
func LoadIntegManifest(path string, opts ValidateOptions) (*IntegManifest, error) {
	sch, err := IntegSchema()
	if err != nil {
		return nil, err
	}
	obj, err := loadManifest(path, sch, nil, opts)
	if err != nil {
		return nil, err
	}
	var m IntegManifest
	if err := decodeObject(obj, &m); err != nil {
		return nil, err
	}
	if m.TestCases == nil {
		m.TestCases = map[string]TestCase{}
	}
	return &m, nil
}

// SaveManifest writes an assembly manifest.
//
// Deprecated: use SaveAssemblyManifest.
func SaveManifest(m *AssemblyManifest, path string) error {
	return SaveAssemblyManifest(m, path)
}

// LoadManifest reads an assembly manifest.
//
// Deprecated: use LoadAssemblyManifest.
func LoadManifest(path string, opts ValidateOptions) (*AssemblyManifest, error) {
	return LoadAssemblyManifest(path, opts)
}

// saveManifest builds a fresh document from the manifest with forced
// version fields, validates it, applies the pre-write patch, and writes
// it atomically. The patch runs after validation so the serialized form
// itself is never schema-checked.
func saveManifest(m any, path string, sch *jsonschema.Schema, prewrite PatchFunc) error {
	obj, err := toObject(m)
	if err != nil {
		return err
	}
	obj["version"] = Version()
	if MinimumCLIVersion != "" {
		obj["minimumCliVersion"] = MinimumCLIVersion
	} else {
		delete(obj, "minimumCliVersion")
	}
	if err := Validate(obj, sch, ValidateOptions{}); err != nil {
		return err
	}
	if prewrite != nil {
		obj = prewrite(obj)
	}

	data, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(path, append(data, '\n'))
}

// loadManifest reads a manifest document, applies the post-read patch,
// and validates. A parse failure includes the raw content so malformed
// manifests are diagnosable from the error alone.
func loadManifest(path string, sch *jsonschema.Schema, postread PatchFunc, opts ValidateOptions) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w, content: %s", path, err, raw)
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("manifest %s is not a JSON object, content: %s", path, raw)
	}
	if postread != nil {
		obj = postread(obj)
	}
	if err := Validate(obj, sch, opts); err != nil {
		return nil, err
	}
	return obj, nil
}

func toObject(m any) (map[string]any, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeObject(obj map[string]any, target any) error {
	data, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

// writeFileAtomic writes via a temp file in the target directory and
// renames it into place, so readers never observe a partial manifest.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".manifest-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
