package main

import (
	"fmt"

	"github.com/osse101/MagicGarden_Go/internal/catalog"
	"github.com/osse101/MagicGarden_Go/internal/validation"
)

type ValidateCatalogCommand struct{}

func (c *ValidateCatalogCommand) Name() string {
	return "validate-catalog"
}

func (c *ValidateCatalogCommand) Description() string {
	return "Check a content catalog file against the schema and cross references"
}

func (c *ValidateCatalogCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: validate-catalog <path>")
	}
	PrintHeader("Validating " + args[0])

	summary, err := validateCatalog(validation.NewSchemaValidator(), args[0])
	if err != nil {
		return err
	}
	PrintSuccess("%s", summary)
	return nil
}

func validateCatalog(v validation.SchemaValidator, path string) (string, error) {
	if err := v.ValidateFile(path, validation.SchemaCatalog); err != nil {
		return "", err
	}
	cat, err := catalog.Load(path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("catalog OK: %d residents, %d recipes", len(cat.ResidentIDs()), len(cat.Recipes())), nil
}
