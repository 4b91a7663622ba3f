// Where: cli/internal/manifest/validator.go
// What: Manifest validation: version gate, schema check, property hook.
// Why: Gate cross-version compatibility before trusting manifest content.
package manifest

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// VersionMismatchPrefix is the fixed sentinel prefixing every
// version-gate failure. External tooling pattern-matches this exact
// literal to present its own "please upgrade" messaging; never alter
// or localize it.
const VersionMismatchPrefix = "Cloud assembly schema version mismatch"

// VersionMismatchError reports a manifest written by tooling with a
// newer major schema version than this tool supports.
type VersionMismatchError struct {
	SupportedMajor uint64
	Found          string
	MinimumCLI     string
}

func (e *VersionMismatchError) Error() string {
	msg := fmt.Sprintf("%s: maximum schema version supported is %d.x.x, but found %s",
		VersionMismatchPrefix, e.SupportedMajor, e.Found)
	if e.MinimumCLI != "" {
		msg += fmt.Sprintf(". A newer CLI (>= %s) is necessary to interact with this app", e.MinimumCLI)
	}
	return msg
}

// PropertyHook inspects every property of the candidate document during
// validation. Returning an error fails the validation.
type PropertyHook func(name string, value any) error

// ValidateOptions tunes manifest validation.
type ValidateOptions struct {
	// SkipVersionCheck disables the major-version compatibility gate.
	SkipVersionCheck bool
	// SkipEnumCheck discards schema failures on the enum keyword so
	// manifests referencing enum values from a newer minor version
	// still pass.
	SkipEnumCheck bool
	// Hook replaces the default per-property hook. Nil means
	// ForbidRoleOptionsHook.
	Hook PropertyHook
}

// Validate checks the candidate document against the version gate, the
// given schema, and the per-property hook. A nil return asserts the
// candidate matches the target manifest shape.
func Validate(doc map[string]any, sch *jsonschema.Schema, opts ValidateOptions) error {
	if !opts.SkipVersionCheck {
		if err := checkVersion(doc); err != nil {
			return err
		}
	}
	if err := validateSchema(doc, sch, opts.SkipEnumCheck); err != nil {
		return err
	}
	hook := opts.Hook
	if hook == nil {
		hook = ForbidRoleOptionsHook
	}
	return walkProperties(doc, hook)
}

// checkVersion implements the one-directional compatibility gate: a
// reader rejects manifests whose major version exceeds its own, and
// accepts everything else.
func checkVersion(doc map[string]any) error {
	local, err := semver.StrictNewVersion(Version())
	if err != nil {
		return fmt.Errorf("invalid schema version %q: %w", Version(), err)
	}
	raw, _ := doc["version"].(string)
	found, err := semver.StrictNewVersion(raw)
	if err != nil {
		return fmt.Errorf("invalid manifest version %q: %w", raw, err)
	}
	if found.Major() > local.Major() {
		mismatch := &VersionMismatchError{SupportedMajor: local.Major(), Found: raw}
		if min, ok := doc["minimumCliVersion"].(string); ok {
			mismatch.MinimumCLI = min
		}
		return mismatch
	}
	return nil
}

func validateSchema(doc any, sch *jsonschema.Schema, skipEnum bool) error {
	err := sch.Validate(doc)
	if err == nil {
		return nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return err
	}

	leaves := collectLeaves(verr, nil)
	if skipEnum {
		kept := leaves[:0]
		for _, leaf := range leaves {
			if keyword(leaf.KeywordLocation) == "enum" {
				continue
			}
			kept = append(kept, leaf)
		}
		leaves = kept
	}
	if len(leaves) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("manifest does not match schema:")
	for _, leaf := range leaves {
		fmt.Fprintf(&b, "\n  #%s: %s", leaf.InstanceLocation, leaf.Message)
	}
	return errors.New(b.String())
}

// collectLeaves flattens the nested cause tree into its leaf failures.
func collectLeaves(err *jsonschema.ValidationError, out []*jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(err.Causes) == 0 {
		return append(out, err)
	}
	for _, cause := range err.Causes {
		out = collectLeaves(cause, out)
	}
	return out
}

func keyword(location string) string {
	if i := strings.LastIndex(location, "/"); i >= 0 {
		return location[i+1:]
	}
	return location
}

// ForbidRoleOptionsHook rejects RoleArn and ExternalId inside any
// property named assumeRoleAdditionalOptions, wherever it appears.
// Those settings must only be supplied through the dedicated manifest
// fields. Every other property name passes.
func ForbidRoleOptionsHook(name string, value any) error {
	if name != "assumeRoleAdditionalOptions" {
		return nil
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	for _, forbidden := range []string{"RoleArn", "ExternalId"} {
		if _, found := obj[forbidden]; found {
			return fmt.Errorf("assumeRoleAdditionalOptions must not contain %s; use the dedicated manifest field instead", forbidden)
		}
	}
	return nil
}

func walkProperties(v any, hook PropertyHook) error {
	switch value := v.(type) {
	case map[string]any:
		names := make([]string, 0, len(value))
		for name := range value {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := hook(name, value[name]); err != nil {
				return err
			}
			if err := walkProperties(value[name], hook); err != nil {
				return err
			}
		}
	case []any:
		for _, item := range value {
			if err := walkProperties(item, hook); err != nil {
				return err
			}
		}
	}
	return nil
}
