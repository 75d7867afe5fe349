// Command schemagen writes the JSON schemas of trackhue's YAML files.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/macropower/trackhue/api/v1beta1/settings"
	"github.com/macropower/trackhue/pkg/project"
	"github.com/macropower/trackhue/pkg/yaml"
)

var errUnknownKind = errors.New("unknown kind")

// kinds maps a schema name to a zero value of the type it describes.
var kinds = map[string]any{
	"settings": &settings.Settings{},
	"project":  &project.Document{},
}

var (
	kind    = flag.String("kind", "settings", "Schema to generate, one of: "+strings.Join(kindNames(), ", "))
	outFile = flag.String("o", "schema.json", "Output file for the generated schema")
)

func main() {
	flag.Parse()

	jsData, err := generate(*kind)
	if err != nil {
		log.Fatalf("generate JSON schema: %v", err)
	}

	err = os.WriteFile(*outFile, jsData, 0o600)
	if err != nil {
		log.Fatalf("write schema file: %v", err)
	}
}

func generate(name string) ([]byte, error) {
	v, ok := kinds[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errUnknownKind, name)
	}

	b, err := yaml.GenerateSchema(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return b, nil
}

func kindNames() []string {
	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}
