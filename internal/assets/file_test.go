// Where: cli/internal/assets/file_test.go
// What: Tests for the file asset handler.
package assets

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stackbound/cloud-assembly/cli/internal/manifest"
	"github.com/stackbound/cloud-assembly/cli/internal/ports"
)

type fakeStore struct {
	exists    bool
	existsErr error
	uploads   []struct {
		Bucket, Key, LocalPath string
	}
}

func (f *fakeStore) ObjectExists(_ context.Context, _, _ string) (bool, error) {
	return f.exists, f.existsErr
}

func (f *fakeStore) Upload(_ context.Context, bucket, key, localPath, _ string) error {
	f.uploads = append(f.uploads, struct {
		Bucket, Key, LocalPath string
	}{bucket, key, localPath})
	return nil
}

func newFileTestHost(store *fakeStore, runner *fakeRunner, events *eventRecorder) *HandlerHost {
	return &HandlerHost{
		Token:  NewToken(),
		Events: events,
		Runner: runner,
		Store: func(_ context.Context, _ manifest.FileDestination) (ports.ObjectStore, error) {
			return store, nil
		},
	}
}

func fileDest() manifest.FileDestination {
	return manifest.FileDestination{BucketName: "assets-bucket", ObjectKey: "abc123.zip"}
}

func TestFileBuildAndPublish(t *testing.T) {
	store := &fakeStore{}
	events := &eventRecorder{}
	host := newFileTestHost(store, &fakeRunner{}, events)
	workDir := t.TempDir()
	h := NewFileHandler("abc123", manifest.FileSource{Path: "bundle.zip"}, fileDest(), workDir, host)

	ctx := context.Background()
	if err := h.Build(ctx); err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := h.Publish(ctx); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(store.uploads) != 1 {
		t.Fatalf("expected one upload, got %d", len(store.uploads))
	}
	upload := store.uploads[0]
	if upload.Bucket != "assets-bucket" || upload.Key != "abc123.zip" {
		t.Fatalf("unexpected upload target: %+v", upload)
	}
	if upload.LocalPath != filepath.Join(workDir, "bundle.zip") {
		t.Fatalf("unexpected local path: %s", upload.LocalPath)
	}
	uploads := events.ofType(ports.EventUpload)
	if len(uploads) != 1 || !strings.Contains(uploads[0].Message, "s3://assets-bucket/abc123.zip") {
		t.Fatalf("expected one upload event, got %v", events.events)
	}
}

func TestFilePublishSkippedWhenObjectExists(t *testing.T) {
	store := &fakeStore{exists: true}
	host := newFileTestHost(store, &fakeRunner{}, &eventRecorder{})
	h := NewFileHandler("abc123", manifest.FileSource{Path: "bundle.zip"}, fileDest(), t.TempDir(), host)

	ctx := context.Background()
	if !h.IsPublished(ctx) {
		t.Fatalf("expected published")
	}
	if err := h.Publish(ctx); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(store.uploads) != 0 {
		t.Fatalf("expected no upload for an existing object")
	}
}

func TestFileIsPublishedNeverFails(t *testing.T) {
	store := &fakeStore{existsErr: errors.New("denied")}
	events := &eventRecorder{}
	host := newFileTestHost(store, &fakeRunner{}, events)
	h := NewFileHandler("abc123", manifest.FileSource{Path: "bundle.zip"}, fileDest(), t.TempDir(), host)

	if h.IsPublished(context.Background()) {
		t.Fatalf("expected false on probe failure")
	}
	if len(events.ofType(ports.EventDebug)) != 1 {
		t.Fatalf("expected one debug event, got %v", events.events)
	}
}

func TestFileExecutableSourceNamesOutput(t *testing.T) {
	store := &fakeStore{}
	runner := &fakeRunner{out: "/tmp/built.zip\n"}
	host := newFileTestHost(store, runner, &eventRecorder{})
	h := NewFileHandler("abc123", manifest.FileSource{Executable: []string{"./package.sh"}}, fileDest(), t.TempDir(), host)

	ctx := context.Background()
	if err := h.Build(ctx); err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := h.Publish(ctx); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(store.uploads) != 1 || store.uploads[0].LocalPath != "/tmp/built.zip" {
		t.Fatalf("expected trimmed executable output as local path, got %+v", store.uploads)
	}
}

func TestFileCancellationIsSilent(t *testing.T) {
	store := &fakeStore{}
	host := newFileTestHost(store, &fakeRunner{}, &eventRecorder{})
	host.Token.Abort()
	h := NewFileHandler("abc123", manifest.FileSource{Path: "bundle.zip"}, fileDest(), t.TempDir(), host)

	ctx := context.Background()
	if err := h.Build(ctx); err != nil {
		t.Fatalf("expected silent success, got %v", err)
	}
	if err := h.Publish(ctx); err != nil {
		t.Fatalf("expected silent success, got %v", err)
	}
	if len(store.uploads) != 0 {
		t.Fatalf("expected no uploads after abort")
	}
}
