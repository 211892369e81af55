package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/yx043749/beaver-farm/internal/model"
)

//go:embed data/catalog.yaml
var defaultCatalog []byte

// Catalog holds the immutable crop and recipe reference tables
type Catalog struct {
	crops   []model.CropDefinition
	recipes []model.RecipeDefinition

	cropIndex   map[string]int
	recipeIndex map[string]int
}

// document is the on-disk YAML layout
type document struct {
	Crops   []model.CropDefinition   `yaml:"crops"`
	Recipes []model.RecipeDefinition `yaml:"recipes"`
}

// Default returns the catalog bundled with the binary
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultCatalog))
}

// LoadFile loads a catalog from a YAML file
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load parses and validates a YAML catalog
func Load(r io.Reader) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidCatalog, err)
	}

	return New(doc.Crops, doc.Recipes)
}

// New builds a catalog from in-memory definitions (useful for testing)
func New(crops []model.CropDefinition, recipes []model.RecipeDefinition) (*Catalog, error) {
	c := &Catalog{
		crops:       make([]model.CropDefinition, 0, len(crops)),
		recipes:     make([]model.RecipeDefinition, 0, len(recipes)),
		cropIndex:   make(map[string]int, len(crops)),
		recipeIndex: make(map[string]int, len(recipes)),
	}

	for _, crop := range crops {
		if err := validateCrop(crop); err != nil {
			return nil, err
		}
		if _, dup := c.cropIndex[crop.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate crop %q", model.ErrInvalidCatalog, crop.ID)
		}
		c.cropIndex[crop.ID] = len(c.crops)
		c.crops = append(c.crops, crop)
	}

	for _, recipe := range recipes {
		if err := c.validateRecipe(recipe); err != nil {
			return nil, err
		}
		if _, dup := c.recipeIndex[recipe.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate recipe %q", model.ErrInvalidCatalog, recipe.ID)
		}
		c.recipeIndex[recipe.ID] = len(c.recipes)
		c.recipes = append(c.recipes, cloneRecipe(recipe))
	}

	return c, nil
}

// Crop returns the definition for a crop ID
func (c *Catalog) Crop(id string) (model.CropDefinition, bool) {
	idx, ok := c.cropIndex[id]
	if !ok {
		return model.CropDefinition{}, false
	}
	return c.crops[idx], true
}

// Recipe returns the definition for a recipe ID
func (c *Catalog) Recipe(id string) (model.RecipeDefinition, bool) {
	idx, ok := c.recipeIndex[id]
	if !ok {
		return model.RecipeDefinition{}, false
	}
	return cloneRecipe(c.recipes[idx]), true
}

// CropName returns the display name of a crop, falling back to its ID
func (c *Catalog) CropName(id string) string {
	if crop, ok := c.Crop(id); ok {
		return crop.Name
	}
	return id
}

// Crops returns all crop definitions in catalog order
func (c *Catalog) Crops() []model.CropDefinition {
	return slices.Clone(c.crops)
}

// Recipes returns all recipe definitions in catalog order
func (c *Catalog) Recipes() []model.RecipeDefinition {
	result := make([]model.RecipeDefinition, len(c.recipes))
	for i, r := range c.recipes {
		result[i] = cloneRecipe(r)
	}
	return result
}

func validateCrop(crop model.CropDefinition) error {
	switch {
	case crop.ID == "":
		return fmt.Errorf("%w: crop without id", model.ErrInvalidCatalog)
	case crop.Name == "":
		return fmt.Errorf("%w: crop %q has no name", model.ErrInvalidCatalog, crop.ID)
	case crop.GrowthTime < 1:
		return fmt.Errorf("%w: crop %q growth_time must be at least 1", model.ErrInvalidCatalog, crop.ID)
	case crop.HarvestAmount < 1:
		return fmt.Errorf("%w: crop %q harvest_amount must be at least 1", model.ErrInvalidCatalog, crop.ID)
	}
	return nil
}

func (c *Catalog) validateRecipe(recipe model.RecipeDefinition) error {
	switch {
	case recipe.ID == "":
		return fmt.Errorf("%w: recipe without id", model.ErrInvalidCatalog)
	case recipe.Name == "":
		return fmt.Errorf("%w: recipe %q has no name", model.ErrInvalidCatalog, recipe.ID)
	case recipe.Difficulty < 1 || recipe.Difficulty > 5:
		return fmt.Errorf("%w: recipe %q difficulty must be 1-5", model.ErrInvalidCatalog, recipe.ID)
	case len(recipe.Ingredients) == 0:
		return fmt.Errorf("%w: recipe %q has no ingredients", model.ErrInvalidCatalog, recipe.ID)
	}

	seen := make(map[string]struct{}, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		if _, ok := c.cropIndex[ing.CropID]; !ok {
			return fmt.Errorf("%w: recipe %q uses unknown crop %q", model.ErrInvalidCatalog, recipe.ID, ing.CropID)
		}
		if _, dup := seen[ing.CropID]; dup {
			return fmt.Errorf("%w: recipe %q lists crop %q twice", model.ErrInvalidCatalog, recipe.ID, ing.CropID)
		}
		if ing.Quantity < 1 {
			return fmt.Errorf("%w: recipe %q needs a positive quantity of %q", model.ErrInvalidCatalog, recipe.ID, ing.CropID)
		}
		seen[ing.CropID] = struct{}{}
	}
	return nil
}

func cloneRecipe(r model.RecipeDefinition) model.RecipeDefinition {
	r.Ingredients = slices.Clone(r.Ingredients)
	r.Hints = slices.Clone(r.Hints)
	r.Clues = slices.Clone(r.Clues)
	return r
}
