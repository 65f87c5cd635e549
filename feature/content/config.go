package content

// Config holds configuration for the content pipeline.
type Config struct {
	// Enabled toggles the HTTP surface of the feature.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// CoursesDir is the directory of authored course files, one JSON file per
	// course with the course key as the file stem.
	CoursesDir string `mapstructure:"courses_dir" default:"content/courses"`
	// BundlesFile is the authored bundles file. Optional.
	BundlesFile string `mapstructure:"bundles_file" default:"content/bundles.json"`
	// IconsFile is the authored icons file. Optional.
	IconsFile string `mapstructure:"icons_file" default:"content/icons.json"`
	// WriteBack rewrites course files in canonical form after a successful
	// apply, so generated ids and formatting land back in the authoring files.
	WriteBack bool `mapstructure:"write_back" default:"true"`
}
