// Where: cli/internal/manifest/patch.go
// What: Structural patch for stack-tag key casing.
// Why: Reconcile capitalized wire form with the lower-cased object model.
package manifest

// TagTransform rewrites a single stack-tag pair.
type TagTransform func(tag map[string]any) map[string]any

// PatchStackTagsOnRead rewrites stack-tag payloads from the disk casing
// {Key, Value} to the object-model casing {key, value} and strips
// absent keys. Applied after parsing and before validation.
func PatchStackTagsOnRead(obj map[string]any) map[string]any {
	patchStackTags(obj, func(tag map[string]any) map[string]any {
		return map[string]any{
			"key":   tag["Key"],
			"value": tag["Value"],
		}
	})
	stripNilKeys(obj)
	return obj
}

// PatchStackTagsOnWrite rewrites stack-tag payloads to the capitalized
// disk casing expected by the deployment engine. Tolerant of input that
// is already capitalized; applying it twice is a no-op.
func PatchStackTagsOnWrite(obj map[string]any) map[string]any {
	patchStackTags(obj, func(tag map[string]any) map[string]any {
		key := tag["key"]
		if key == nil {
			key = tag["Key"]
		}
		value := tag["value"]
		if value == nil {
			value = tag["Value"]
		}
		return map[string]any{
			"Key":   key,
			"Value": value,
		}
	})
	stripNilKeys(obj)
	return obj
}

// patchStackTags walks artifacts, skips non-stack artifacts, and
// applies fn to each tag of every stack-tags metadata entry. Every
// other entry is left untouched. The walk is deliberately scoped to
// exactly this one payload shape.
func patchStackTags(root map[string]any, fn TagTransform) {
	artifacts, ok := root["artifacts"].(map[string]any)
	if !ok {
		return
	}
	for _, candidate := range artifacts {
		artifact, ok := candidate.(map[string]any)
		if !ok || artifact["type"] != ArtifactTypeCloudFormationStack {
			continue
		}
		metadata, ok := artifact["metadata"].(map[string]any)
		if !ok {
			continue
		}
		for _, candidateEntries := range metadata {
			entries, ok := candidateEntries.([]any)
			if !ok {
				continue
			}
			for _, candidateEntry := range entries {
				entry, ok := candidateEntry.(map[string]any)
				if !ok || entry["type"] != MetadataTypeStackTags {
					continue
				}
				data, ok := entry["data"].([]any)
				if !ok {
					continue
				}
				patched := make([]any, 0, len(data))
				for _, candidateTag := range data {
					if tag, ok := candidateTag.(map[string]any); ok {
						patched = append(patched, fn(tag))
					} else {
						patched = append(patched, candidateTag)
					}
				}
				entry["data"] = patched
			}
		}
	}
}

// stripNilKeys removes object keys whose value is absent, recursively.
// Keeps serialized output deterministic and free of placeholder keys
// left behind by the shallow-merge construction.
func stripNilKeys(v any) {
	switch value := v.(type) {
	case map[string]any:
		for key, item := range value {
			if item == nil {
				delete(value, key)
				continue
			}
			stripNilKeys(item)
		}
	case []any:
		for _, item := range value {
			stripNilKeys(item)
		}
	}
}
