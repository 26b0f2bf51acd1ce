package drivetab

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// EnvCredentials is the environment variable holding the full JSON text of a
// service-account key.
const EnvCredentials = "GOOGLE_DRIVE_CREDENTIALS"

// Credentials holds a service-account key used to authenticate against the
// Drive API. Construct it once and pass it to NewService; the resulting
// drive.Service is the only process-lifetime resource and is reused
// read-only across calls.
type Credentials struct {
	key []byte
}

// CredentialsFromJSON creates Credentials from the JSON text of a
// service-account key.
func CredentialsFromJSON(key []byte) (Credentials, error) {
	if !json.Valid(key) {
		return Credentials{}, fmt.Errorf("service account key is not valid JSON")
	}
	return Credentials{key: append([]byte{}, key...)}, nil
}

// CredentialsFromEnv creates Credentials from the GOOGLE_DRIVE_CREDENTIALS
// environment variable.
func CredentialsFromEnv() (Credentials, error) {
	key := os.Getenv(EnvCredentials)
	if key == "" {
		return Credentials{}, fmt.Errorf("missing environment variable %s", EnvCredentials)
	}
	return CredentialsFromJSON([]byte(key))
}

// NewService creates an authenticated drive.Service from the credentials,
// with the full Drive scope. The files and folders to access must be shared
// with the service account.
func NewService(ctx context.Context, credentials Credentials) (*drive.Service, error) {
	config, err := google.JWTConfigFromJSON(credentials.key, drive.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account key: %w", err)
	}
	service, err := drive.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return service, nil
}
