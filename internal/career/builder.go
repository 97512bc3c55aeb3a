package career

import "fmt"

// Build validates the seed archetypes and returns the catalog together with its
// feature matrix. Row i of the matrix is archetype i encoded against the full
// catalog, itself included.
func Build(seed []Archetype) (*Catalog, FeatureMatrix, error) {
	for i, a := range seed {
		if err := validateArchetype(i, a); err != nil {
			return nil, nil, err
		}
	}

	catalog := NewCatalog(seed)
	matrix, err := EncodeCatalog(catalog)
	if err != nil {
		return nil, nil, err
	}

	return catalog, matrix, nil
}

// EncodeCatalog encodes every archetype of the catalog against the catalog itself.
func EncodeCatalog(c *Catalog) (FeatureMatrix, error) {
	matrix := make(FeatureMatrix, c.Len())
	for i := range matrix {
		row, err := Encode(c.items[i].Profile(), c)
		if err != nil {
			return nil, fmt.Errorf("encoding archetype #%d: %w", i, err)
		}
		matrix[i] = row
	}
	return matrix, nil
}

func validateArchetype(i int, a Archetype) error {
	field := ""
	switch {
	case a.Career == "":
		field = "career"
	case a.Mentor == "":
		field = "mentor"
	case a.Skills == nil:
		field = "skills"
	case a.Interests == nil:
		field = "interests"
	case a.Education == "":
		field = "education"
	case a.Experience == "":
		field = "experience"
	}

	if field != "" {
		return &InvalidArchetypeError{Index: i, Field: field}
	}
	return nil
}
