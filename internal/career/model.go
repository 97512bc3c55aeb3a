package career

// Recommendation is the outcome of matching a profile against a model.
type Recommendation struct {
	Career   string  `json:"career"`
	Mentor   string  `json:"mentor"`
	Index    int     `json:"-"`
	Distance float64 `json:"-"`
}

// Model is an immutable catalog together with its feature matrix.
// It is safe for concurrent use.
type Model struct {
	catalog *Catalog
	matrix  FeatureMatrix
}

// NewModel checks that the matrix has one row per archetype and that every row
// is as wide as the encoding of the catalog.
func NewModel(catalog *Catalog, matrix FeatureMatrix) (*Model, error) {
	if catalog.Len() == 0 {
		return nil, ErrEmptyCatalog
	}

	if len(matrix) != catalog.Len() {
		return nil, &InconsistentCatalogError{
			Archetypes: catalog.Len(),
			Rows:       len(matrix),
			Row:        -1,
		}
	}

	want := 4 * catalog.Len()
	rows := make(FeatureMatrix, len(matrix))
	for i, row := range matrix {
		if len(row) != want {
			return nil, &InconsistentCatalogError{
				Archetypes: catalog.Len(),
				Rows:       len(matrix),
				Row:        i,
				Width:      len(row),
				Want:       want,
			}
		}
		rows[i] = append(FeatureVector(nil), row...)
	}

	return &Model{catalog: catalog, matrix: rows}, nil
}

// BuildModel builds a model straight from seed archetypes.
func BuildModel(seed []Archetype) (*Model, error) {
	catalog, matrix, err := Build(seed)
	if err != nil {
		return nil, err
	}
	return NewModel(catalog, matrix)
}

func (m *Model) Catalog() *Catalog { return m.catalog }

func (m *Model) Len() int { return m.catalog.Len() }

// Recommend encodes the profile and returns the career and mentor of the
// nearest archetype.
func (m *Model) Recommend(p Profile) (Recommendation, error) {
	query, err := Encode(p, m.catalog)
	if err != nil {
		return Recommendation{}, err
	}

	n, err := Nearest(query, m.matrix)
	if err != nil {
		return Recommendation{}, err
	}

	a := m.catalog.items[n.Index]
	return Recommendation{
		Career:   a.Career,
		Mentor:   a.Mentor,
		Index:    n.Index,
		Distance: n.Distance,
	}, nil
}
