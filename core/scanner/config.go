package scanner

// Config holds configuration for the local mods directory.
type Config struct {
	// Dir is the game's mods directory containing mod-list.json and archives.
	Dir string `mapstructure:"dir" default:"./mods" validate:"required"`
	// IgnoreFile lists mod names to skip, one per line. Created on first use.
	IgnoreFile string `mapstructure:"ignore_file" default:"./mods-ignore.txt"`
	// DownloadDir receives downloaded archives. Defaults to Dir when empty.
	DownloadDir string `mapstructure:"download_dir" default:""`
}

// Target returns the directory downloads are written to.
func (c Config) Target() string {
	if c.DownloadDir != "" {
		return c.DownloadDir
	}
	return c.Dir
}
