package world

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/spacecolony-go/internal/domain/shared"
	"github.com/andrescamacho/spacecolony-go/internal/infrastructure/config"
)

//go:embed default_world.yaml
var defaultWorld []byte

// DefaultDocument returns the raw built-in world
func DefaultDocument() []byte {
	return append([]byte(nil), defaultWorld...)
}

// Default parses the built-in world
func Default() (*Definition, error) {
	return Parse(defaultWorld)
}

// ReadDocument returns the raw world document at path, or the built-in
// world when path is empty
func ReadDocument(path string) ([]byte, error) {
	if path == "" {
		return DefaultDocument(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, shared.NewConfigurationError(fmt.Sprintf("failed to read world file %s: %v", path, err))
	}
	return data, nil
}

// Parse decodes and validates a world document. Unknown fields, schema
// violations and structural problems are all configuration errors.
func Parse(data []byte) (*Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, shared.NewConfigurationError("world document is empty")
		}
		return nil, shared.NewConfigurationError(fmt.Sprintf("failed to decode world: %v", err))
	}

	if err := config.NewValidator().Validate(&def); err != nil {
		return nil, shared.NewConfigurationError(fmt.Sprintf("invalid world %q: %v", def.Name, err))
	}

	// Catalog and graph construction run the domain checks the tags cannot
	// express (duplicate ids, dangling edges, effect tables the placement forbids)
	if _, err := def.Catalog(); err != nil {
		return nil, err
	}
	if _, err := def.RulesOrDefault(); err != nil {
		return nil, err
	}
	if _, _, err := def.assemble(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Load reads and parses the world at path, or the built-in world when path
// is empty
func Load(path string) (*Definition, []byte, error) {
	data, err := ReadDocument(path)
	if err != nil {
		return nil, nil, err
	}
	def, err := Parse(data)
	if err != nil {
		return nil, nil, err
	}
	return def, data, nil
}
