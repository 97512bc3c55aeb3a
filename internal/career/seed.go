package career

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Seed is the on-disk format of a seed file.
type Seed struct {
	Archetypes []Archetype `yaml:"archetypes"`
}

// DefaultSeed returns the built-in reference archetypes.
func DefaultSeed() []Archetype {
	return []Archetype{
		{
			Skills:     []string{"Python", "Java"},
			Interests:  []string{"AI", "Data Science"},
			Education:  "BSc CS",
			Experience: "2 years",
			Career:     "Data Scientist",
			Mentor:     "Dr. AI Expert",
		},
		{
			Skills:     []string{"Excel", "SQL"},
			Interests:  []string{"Finance", "Analytics"},
			Education:  "MBA",
			Experience: "5 years",
			Career:     "Financial Analyst",
			Mentor:     "Finance Guru",
		},
		{
			Skills:     []string{"JavaScript", "React"},
			Interests:  []string{"Web Development"},
			Education:  "BSc CS",
			Experience: "3 years",
			Career:     "Web Developer",
			Mentor:     "Web Dev Pro",
		},
	}
}

// LoadSeedFile reads archetypes from a YAML seed file. An empty path yields the
// built-in seed.
func LoadSeedFile(path string) ([]Archetype, error) {
	if path == "" {
		return DefaultSeed(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file %q: %w", path, err)
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing seed file %q: %w", path, err)
	}

	if len(seed.Archetypes) == 0 {
		return nil, fmt.Errorf("seed file %q: %w", path, ErrEmptyCatalog)
	}

	return seed.Archetypes, nil
}
