// Where: cli/internal/manifest/manifest.go
// What: Object model for assembly, asset, and integ manifests.
// Why: Typed view over the on-disk manifest documents.
package manifest

import "encoding/json"

// Artifact types understood by this tool. Only the CloudFormation stack
// kind participates in the stack-tag patch.
const (
	ArtifactTypeCloudFormationStack = "aws:cloudformation:stack"
	ArtifactTypeAssetManifest       = "cdk:asset-manifest"
	ArtifactTypeTree                = "cdk:tree"
)

// MetadataTypeStackTags marks metadata entries whose data payload is a
// list of stack tags.
const MetadataTypeStackTags = "aws:cdk:stack-tags"

// AssemblyManifest is the root descriptor of a synthesized assembly.
type AssemblyManifest struct {
	Version           string                      `json:"version"`
	MinimumCliVersion string                      `json:"minimumCliVersion,omitempty"`
	Artifacts         map[string]ArtifactManifest `json:"artifacts,omitempty"`
}

// ArtifactManifest describes one deployable artifact inside an assembly.
type ArtifactManifest struct {
	Type         string                     `json:"type"`
	Environment  string                     `json:"environment,omitempty"`
	Dependencies []string                   `json:"dependencies,omitempty"`
	DisplayName  string                     `json:"displayName,omitempty"`
	Properties   *ArtifactProperties        `json:"properties,omitempty"`
	Metadata     map[string][]MetadataEntry `json:"metadata,omitempty"`
}

// ArtifactProperties holds the per-type artifact settings. Role
// credentials must go through the dedicated assumeRole* fields; the
// validator rejects RoleArn/ExternalId smuggled into the options bag.
type ArtifactProperties struct {
	TemplateFile                      string            `json:"templateFile,omitempty"`
	File                              string            `json:"file,omitempty"`
	StackName                         string            `json:"stackName,omitempty"`
	TerminationProtection             bool              `json:"terminationProtection,omitempty"`
	Parameters                        map[string]string `json:"parameters,omitempty"`
	Tags                              map[string]string `json:"tags,omitempty"`
	AssumeRoleArn                     string            `json:"assumeRoleArn,omitempty"`
	AssumeRoleExternalId              string            `json:"assumeRoleExternalId,omitempty"`
	AssumeRoleAdditionalOptions       map[string]any    `json:"assumeRoleAdditionalOptions,omitempty"`
	RequiresBootstrapStackVersion     int               `json:"requiresBootstrapStackVersion,omitempty"`
	BootstrapStackVersionSsmParameter string            `json:"bootstrapStackVersionSsmParameter,omitempty"`
}

// MetadataEntry is one metadata record attached to a logical path.
type MetadataEntry struct {
	Type  string   `json:"type"`
	Data  any      `json:"data,omitempty"`
	Trace []string `json:"trace,omitempty"`
}

// StackTag is a key/value pair attached to a deployed stack. The object
// model uses lower-cased field names; the serialized form capitalizes
// them (see patch.go).
type StackTag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// StackTags decodes the entry's data payload as a list of stack tags.
// The second return is false when the entry is not a stack-tag entry or
// the payload does not have the expected shape.
func (e MetadataEntry) StackTags() ([]StackTag, bool) {
	if e.Type != MetadataTypeStackTags || e.Data == nil {
		return nil, false
	}
	raw, err := json.Marshal(e.Data)
	if err != nil {
		return nil, false
	}
	var tags []StackTag
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil, false
	}
	return tags, true
}

// AssetManifest lists the assets produced by a synthesis step.
type AssetManifest struct {
	Version      string                      `json:"version"`
	DockerImages map[string]DockerImageAsset `json:"dockerImages,omitempty"`
	Files        map[string]FileAsset        `json:"files,omitempty"`
}

// DockerImageAsset is a container image to build and publish.
type DockerImageAsset struct {
	Source       DockerImageSource                 `json:"source"`
	Destinations map[string]DockerImageDestination `json:"destinations"`
}

// DockerImageSource describes how to produce the local image. Directory
// and Executable are mutually exclusive; directory wins when both are
// set.
type DockerImageSource struct {
	Directory          string              `json:"directory,omitempty"`
	DockerFile         string              `json:"dockerFile,omitempty"`
	DockerBuildArgs    map[string]string   `json:"dockerBuildArgs,omitempty"`
	DockerBuildSecrets map[string]string   `json:"dockerBuildSecrets,omitempty"`
	DockerBuildSSH     string              `json:"dockerBuildSsh,omitempty"`
	DockerBuildTarget  string              `json:"dockerBuildTarget,omitempty"`
	NetworkMode        string              `json:"networkMode,omitempty"`
	Platform           string              `json:"platform,omitempty"`
	DockerOutputs      []string            `json:"dockerOutputs,omitempty"`
	CacheFrom          []DockerCacheOption `json:"cacheFrom,omitempty"`
	CacheTo            *DockerCacheOption  `json:"cacheTo,omitempty"`
	CacheDisabled      bool                `json:"cacheDisabled,omitempty"`
	Executable         []string            `json:"executable,omitempty"`
}

// DockerCacheOption is a buildx-style cache source or target.
type DockerCacheOption struct {
	Type   string            `json:"type"`
	Params map[string]string `json:"params,omitempty"`
}

// DockerImageDestination is the registry location an image is pushed
// to. RepositoryName and Region may carry account/region placeholder
// tokens resolved at publish time.
type DockerImageDestination struct {
	RepositoryName              string         `json:"repositoryName"`
	ImageTag                    string         `json:"imageTag"`
	Region                      string         `json:"region,omitempty"`
	AssumeRoleArn               string         `json:"assumeRoleArn,omitempty"`
	AssumeRoleExternalId        string         `json:"assumeRoleExternalId,omitempty"`
	AssumeRoleAdditionalOptions map[string]any `json:"assumeRoleAdditionalOptions,omitempty"`
}

// FileAsset is a file to upload to an object store.
type FileAsset struct {
	Source       FileSource                 `json:"source"`
	Destinations map[string]FileDestination `json:"destinations"`
}

// FileSource describes how to produce the local file.
type FileSource struct {
	Path       string   `json:"path,omitempty"`
	Packaging  string   `json:"packaging,omitempty"`
	Executable []string `json:"executable,omitempty"`
}

// FileDestination is the object-store location a file is uploaded to.
type FileDestination struct {
	BucketName                  string         `json:"bucketName"`
	ObjectKey                   string         `json:"objectKey"`
	Region                      string         `json:"region,omitempty"`
	AssumeRoleArn               string         `json:"assumeRoleArn,omitempty"`
	AssumeRoleExternalId        string         `json:"assumeRoleExternalId,omitempty"`
	AssumeRoleAdditionalOptions map[string]any `json:"assumeRoleAdditionalOptions,omitempty"`
}

// IntegManifest describes an integration test suite. TestCases is never
// nil after a successful load even though the schema keeps the field
// optional for compatibility.
type IntegManifest struct {
	Version       string              `json:"version"`
	TestCases     map[string]TestCase `json:"testCases"`
	EnableLookups bool                `json:"enableLookups,omitempty"`
	SynthContext  map[string]string   `json:"synthContext,omitempty"`
}

// TestCase is a single integration test case.
type TestCase struct {
	Stacks              []string `json:"stacks"`
	StackUpdateWorkflow *bool    `json:"stackUpdateWorkflow,omitempty"`
	DiffAssets          bool     `json:"diffAssets,omitempty"`
	AllowDestroy        []string `json:"allowDestroy,omitempty"`
	Regions             []string `json:"regions,omitempty"`
}
