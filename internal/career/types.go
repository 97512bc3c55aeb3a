package career

import "slices"

// Archetype is one labeled reference profile of the catalog.
type Archetype struct {
	Skills     []string `json:"skills" yaml:"skills"`
	Interests  []string `json:"interests" yaml:"interests"`
	Education  string   `json:"education" yaml:"education"`
	Experience string   `json:"experience" yaml:"experience"`
	Career     string   `json:"career" yaml:"career"`
	Mentor     string   `json:"mentor" yaml:"mentor"`
}

// Profile returns the attributes of the archetype viewed as a query profile.
func (a Archetype) Profile() Profile {
	return Profile{
		Skills:     a.Skills,
		Interests:  a.Interests,
		Education:  a.Education,
		Experience: a.Experience,
	}
}

func (a Archetype) clone() Archetype {
	a.Skills = cloneSet(a.Skills)
	a.Interests = cloneSet(a.Interests)
	return a
}

// Profile is a query input.
//
// A nil Skills or Interests slice means the field was not supplied, while a
// non-nil empty slice is an explicit empty set. Empty Education or Experience
// means the field was not supplied.
type Profile struct {
	Skills     []string `json:"skills"`
	Interests  []string `json:"interests"`
	Education  string   `json:"education"`
	Experience string   `json:"experience"`
}

// WithEmptyDefaults returns a copy of the profile where absent skills and
// interests are replaced by empty sets. Categorical fields are left as is.
func (p Profile) WithEmptyDefaults() Profile {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Interests == nil {
		p.Interests = []string{}
	}
	return p
}

// Validate reports the first absent field as an *InvalidProfileError.
func (p Profile) Validate() error {
	switch {
	case p.Skills == nil:
		return &InvalidProfileError{Field: "skills"}
	case p.Interests == nil:
		return &InvalidProfileError{Field: "interests"}
	case p.Education == "":
		return &InvalidProfileError{Field: "education"}
	case p.Experience == "":
		return &InvalidProfileError{Field: "experience"}
	}
	return nil
}

// Catalog is an ordered, read-only list of archetypes. The position of an
// archetype is its identity and matches its row in the feature matrix.
type Catalog struct {
	items []Archetype
}

// NewCatalog copies the provided archetypes into a new catalog.
func NewCatalog(archetypes []Archetype) *Catalog {
	items := make([]Archetype, len(archetypes))
	for i, a := range archetypes {
		items[i] = a.clone()
	}
	return &Catalog{items: items}
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// At returns a copy of the archetype at position i.
func (c *Catalog) At(i int) Archetype {
	return c.items[i].clone()
}

// Archetypes returns a copy of the catalog contents in order.
func (c *Catalog) Archetypes() []Archetype {
	out := make([]Archetype, c.Len())
	for i := range out {
		out[i] = c.At(i)
	}
	return out
}

// Educations returns the distinct education values in catalog order.
func (c *Catalog) Educations() []string {
	return c.distinct(func(a Archetype) string { return a.Education })
}

// Experiences returns the distinct experience values in catalog order.
func (c *Catalog) Experiences() []string {
	return c.distinct(func(a Archetype) string { return a.Experience })
}

func (c *Catalog) distinct(field func(Archetype) string) []string {
	values := make([]string, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		v := field(c.items[i])
		if !slices.Contains(values, v) {
			values = append(values, v)
		}
	}
	return values
}

// FeatureVector is a binary encoding of a profile relative to a catalog.
type FeatureVector []uint8

// FeatureMatrix holds one FeatureVector per archetype, in catalog order.
type FeatureMatrix []FeatureVector

// Width returns the column count of the first row, or 0 for an empty matrix.
func (m FeatureMatrix) Width() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

func cloneSet(s []string) []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s)
}
