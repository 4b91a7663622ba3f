// Where: cli/internal/engine/auth.go
// What: Registry auth encoding for push handles.
// Why: ECR tokens must travel as the X-Registry-Auth header payload.
package engine

import "github.com/docker/docker/api/types/registry"

// EncodeRegistryAuth packs credentials into the encoded auth payload
// the Docker API expects on push.
func EncodeRegistryAuth(username, password, server string) (string, error) {
	return registry.EncodeAuthConfig(registry.AuthConfig{
		Username:      username,
		Password:      password,
		ServerAddress: server,
	})
}
