package domain

// Declaration announces that a secret name exists and what it is for.
// Declarations are metadata only and never carry values.
type Declaration struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// ObtainURL and ObtainLabel point administrators at where the value can be created.
	ObtainURL   string `json:"obtain_url,omitempty"`
	ObtainLabel string `json:"obtain_label,omitempty"`
}

// ExampleDeclaration is always appended to the catalog so a fresh install has something to show.
var ExampleDeclaration = Declaration{
	Name:        ExampleSecretName,
	Description: "An example secret",
}

// EnvironmentSecret is a declared secret whose value comes from an override variable.
type EnvironmentSecret struct {
	Declaration Declaration
	// Variable is the environment variable name supplying the value.
	Variable string
}

// StoredSecret is the latest stored version for a name, without its ciphertext.
type StoredSecret struct {
	// Declaration is nil for names that are stored but no longer declared.
	Declaration *Declaration
	Secret      *Secret
}

// Listing partitions the known secrets by where their value comes from.
type Listing struct {
	Environment []EnvironmentSecret
	Stored      []StoredSecret
	Unset       []Declaration
}

// SecretDetail describes a single name for the admin edit view.
type SecretDetail struct {
	Name        string
	Declaration *Declaration
	// EnvironmentVariable is the override variable name; EnvironmentSet reports if it holds a value.
	EnvironmentVariable string
	EnvironmentSet      bool
	Latest              *Secret
}
