// Where: cli/internal/manifest/patch_test.go
// What: Tests for the stack-tag casing patch.
// Why: Read and write patches must be exact inverses and idempotent.
package manifest

import (
	"reflect"
	"testing"
)

func stackTagsDoc(tags []any) map[string]any {
	return map[string]any{
		"version": Version(),
		"artifacts": map[string]any{
			"stack": map[string]any{
				"type": ArtifactTypeCloudFormationStack,
				"metadata": map[string]any{
					"/stack": []any{
						map[string]any{
							"type": MetadataTypeStackTags,
							"data": tags,
						},
					},
				},
			},
		},
	}
}

func tagsOf(t *testing.T, doc map[string]any) []any {
	t.Helper()
	artifacts := doc["artifacts"].(map[string]any)
	stack := artifacts["stack"].(map[string]any)
	metadata := stack["metadata"].(map[string]any)
	entries := metadata["/stack"].([]any)
	entry := entries[0].(map[string]any)
	return entry["data"].([]any)
}

func TestPatchOnReadLowercases(t *testing.T) {
	doc := stackTagsDoc([]any{
		map[string]any{"Key": "env", "Value": "prod"},
	})

	got := tagsOf(t, PatchStackTagsOnRead(doc))
	want := []any{map[string]any{"key": "env", "value": "prod"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected tags after read patch: %#v", got)
	}
}

func TestPatchOnWriteCapitalizes(t *testing.T) {
	doc := stackTagsDoc([]any{
		map[string]any{"key": "env", "value": "prod"},
	})

	got := tagsOf(t, PatchStackTagsOnWrite(doc))
	want := []any{map[string]any{"Key": "env", "Value": "prod"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected tags after write patch: %#v", got)
	}
}

func TestPatchOnWriteIdempotent(t *testing.T) {
	doc := stackTagsDoc([]any{
		map[string]any{"Key": "env", "Value": "prod"},
	})

	once := PatchStackTagsOnWrite(doc)
	twice := PatchStackTagsOnWrite(once)
	want := []any{map[string]any{"Key": "env", "Value": "prod"}}
	if !reflect.DeepEqual(tagsOf(t, twice), want) {
		t.Fatalf("write patch is not idempotent: %#v", tagsOf(t, twice))
	}
}

func TestPatchRoundTrip(t *testing.T) {
	doc := stackTagsDoc([]any{
		map[string]any{"key": "team", "value": "infra"},
	})

	roundTripped := PatchStackTagsOnRead(PatchStackTagsOnWrite(doc))
	want := []any{map[string]any{"key": "team", "value": "infra"}}
	if !reflect.DeepEqual(tagsOf(t, roundTripped), want) {
		t.Fatalf("round trip altered tags: %#v", tagsOf(t, roundTripped))
	}
}

func TestPatchSkipsNonStackArtifacts(t *testing.T) {
	doc := map[string]any{
		"version": Version(),
		"artifacts": map[string]any{
			"tree": map[string]any{
				"type": ArtifactTypeTree,
				"metadata": map[string]any{
					"/tree": []any{
						map[string]any{
							"type": MetadataTypeStackTags,
							"data": []any{map[string]any{"Key": "env", "Value": "prod"}},
						},
					},
				},
			},
		},
	}

	PatchStackTagsOnRead(doc)

	artifacts := doc["artifacts"].(map[string]any)
	tree := artifacts["tree"].(map[string]any)
	metadata := tree["metadata"].(map[string]any)
	entry := metadata["/tree"].([]any)[0].(map[string]any)
	got := entry["data"].([]any)[0].(map[string]any)
	if _, patched := got["key"]; patched {
		t.Fatalf("non-stack artifact was patched: %#v", got)
	}
}

func TestPatchSkipsOtherMetadataEntries(t *testing.T) {
	doc := stackTagsDoc(nil)
	artifacts := doc["artifacts"].(map[string]any)
	stack := artifacts["stack"].(map[string]any)
	stack["metadata"] = map[string]any{
		"/stack": []any{
			map[string]any{
				"type": "aws:cdk:logicalId",
				"data": "SomeResource",
			},
		},
	}

	PatchStackTagsOnRead(doc)

	metadata := stack["metadata"].(map[string]any)
	entry := metadata["/stack"].([]any)[0].(map[string]any)
	if entry["data"] != "SomeResource" {
		t.Fatalf("unrelated metadata entry was altered: %#v", entry)
	}
}

func TestPatchStripsAbsentKeys(t *testing.T) {
	doc := stackTagsDoc([]any{
		map[string]any{"Key": "env"},
	})

	got := tagsOf(t, PatchStackTagsOnRead(doc))
	tag := got[0].(map[string]any)
	if _, present := tag["value"]; present {
		t.Fatalf("expected absent value to be stripped: %#v", tag)
	}
	if tag["key"] != "env" {
		t.Fatalf("expected key to survive: %#v", tag)
	}
}
