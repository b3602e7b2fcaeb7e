package config

// GameConfig selects the world new games start from
type GameConfig struct {
	// Path to a YAML world document; empty uses the built-in world
	WorldFile string `mapstructure:"world_file"`

	// Name given to new saves when the command line does not set one
	SaveName string `mapstructure:"save_name" validate:"required,max=64"`
}
