package domain

// MetadataVersion is the newest project metadata version this build understands.
const MetadataVersion = 1

// ProjectMetadata is the small per-project record kept next to the store.
// The core reads only Version; the rest belongs to user interfaces.
type ProjectMetadata struct {
	Version int             `toml:"version"`
	UI      UISettings      `toml:"ui"`
	Project ProjectSettings `toml:"project"`
}

// UISettings holds display preferences.
type UISettings struct {
	Theme    string `toml:"theme"`
	FontSize int    `toml:"font_size"`
}

// ProjectSettings holds project-wide policy flags.
type ProjectSettings struct {
	ImmutableDocs bool `toml:"immutable_docs"`
}

// DefaultProjectMetadata returns the metadata written for a new project.
func DefaultProjectMetadata() ProjectMetadata {
	return ProjectMetadata{
		Version: MetadataVersion,
		UI: UISettings{
			Theme:    "light",
			FontSize: 12,
		},
		Project: ProjectSettings{
			ImmutableDocs: true,
		},
	}
}
