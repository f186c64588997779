package model

// RepositorySecrets is the persisted secret list of one repository
type RepositorySecrets struct {
	Repository string   `yaml:"repository"`
	Secrets    []Secret `yaml:"secrets"`
}

// RepositorySyncRecords is the persisted ledger of one repository
type RepositorySyncRecords struct {
	Repository string       `yaml:"repository"`
	Records    []SyncRecord `yaml:"records"`
}

// SecretsConfig is the snapshot persisted for one profile.
// Repository keyed sections are lists so the file keeps insertion order.
type SecretsConfig struct {
	// Token is the GitHub token used for remote calls
	Token string `yaml:"token,omitempty"`

	// IncludeRepositories is the explicit allow-list; non-empty means set
	IncludeRepositories []string `yaml:"include_repositories,omitempty"`

	// ExcludeRepositories is subtracted from the remote list when no allow-list is set
	ExcludeRepositories []string `yaml:"exclude_repositories,omitempty"`

	GlobalSecrets     []Secret                `yaml:"global_secrets,omitempty"`
	RepositorySecrets []RepositorySecrets     `yaml:"repository_secrets,omitempty"`
	LastSynced        []RepositorySyncRecords `yaml:"repository_secrets_last_synced,omitempty"`
}
