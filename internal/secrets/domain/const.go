package domain

const (
	// ExampleSecretName is the built-in declaration present on every install.
	ExampleSecretName = "EXAMPLE_SECRET"

	// MaxNameLength bounds Secret.Name in characters. It matches the MySQL name column.
	MaxNameLength = 255

	// MaxNoteLength bounds Secret.Note in characters.
	MaxNoteLength = 100

	// DefaultEnvPrefix is prepended to a secret name to form its override variable.
	DefaultEnvPrefix = "SECRETS_"

	// MaxSetAttempts bounds retries when concurrent writers race for the same version number.
	MaxSetAttempts = 5
)

// EnvVariable returns the override variable name for a secret.
func EnvVariable(prefix, name string) string {
	return prefix + name
}
