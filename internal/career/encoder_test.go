package career

import (
	"errors"
	"slices"
	"testing"
)

func TestEncode(t *testing.T) {
	t.Parallel()

	catalog := NewCatalog(DefaultSeed())

	tests := []struct {
		name    string
		profile Profile
		expect  FeatureVector
	}{
		{
			name: "data scientist profile",
			profile: Profile{
				Skills:     []string{"Python"},
				Interests:  []string{"AI"},
				Education:  "BSc CS",
				Experience: "2 years",
			},
			// shared education fires for both BSc CS archetypes
			expect: FeatureVector{1, 0, 0, 1, 0, 0, 1, 0, 1, 1, 0, 0},
		},
		{
			name: "overlap with several archetypes",
			profile: Profile{
				Skills:     []string{"SQL", "React", "Go"},
				Interests:  []string{"Analytics"},
				Education:  "MBA",
				Experience: "3 years",
			},
			expect: FeatureVector{0, 1, 1, 0, 1, 0, 0, 1, 0, 0, 0, 1},
		},
		{
			name: "explicit empty sets and unknown categories",
			profile: Profile{
				Skills:     []string{},
				Interests:  []string{},
				Education:  "PhD",
				Experience: "10 years",
			},
			expect: make(FeatureVector, 12),
		},
		{
			name: "matching is case sensitive",
			profile: Profile{
				Skills:     []string{"python"},
				Interests:  []string{"ai"},
				Education:  "bsc cs",
				Experience: "2 Years",
			},
			expect: make(FeatureVector, 12),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Encode(tt.profile, catalog)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(got, tt.expect) {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	t.Parallel()

	catalog := NewCatalog(DefaultSeed())
	profile := Profile{
		Skills:     []string{"Java", "Excel", "React", "Python"},
		Interests:  []string{"Finance", "AI"},
		Education:  "BSc CS",
		Experience: "5 years",
	}

	first, err := Encode(profile, catalog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 10; i++ {
		again, err := Encode(profile, catalog)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !slices.Equal(first, again) {
			t.Fatalf("encoding changed between calls: %v vs %v", first, again)
		}
	}
}

func TestEncodeDimension(t *testing.T) {
	t.Parallel()

	profile := Profile{Skills: []string{"Python"}, Interests: []string{}, Education: "MBA", Experience: "2 years"}

	for n := 0; n <= 3; n++ {
		catalog := NewCatalog(DefaultSeed()[:n])
		v, err := Encode(profile, catalog)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(v) != 4*n {
			t.Fatalf("expected %d dimensions for %d archetypes, got %d", 4*n, n, len(v))
		}
	}
}

func TestEncodeInvalidProfile(t *testing.T) {
	t.Parallel()

	valid := Profile{Skills: []string{"Go"}, Interests: []string{"AI"}, Education: "MBA", Experience: "2 years"}

	tests := []struct {
		name   string
		mutate func(p *Profile)
		field  string
	}{
		{name: "missing skills", mutate: func(p *Profile) { p.Skills = nil }, field: "skills"},
		{name: "missing interests", mutate: func(p *Profile) { p.Interests = nil }, field: "interests"},
		{name: "missing education", mutate: func(p *Profile) { p.Education = "" }, field: "education"},
		{name: "missing experience", mutate: func(p *Profile) { p.Experience = "" }, field: "experience"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := valid
			tt.mutate(&p)

			_, err := Encode(p, NewCatalog(DefaultSeed()))
			if !errors.Is(err, ErrInvalidProfile) {
				t.Fatalf("expected ErrInvalidProfile, got %v", err)
			}

			var invalid *InvalidProfileError
			if !errors.As(err, &invalid) || invalid.Field != tt.field {
				t.Fatalf("expected field %q, got %v", tt.field, err)
			}
		})
	}
}

func TestWithEmptyDefaults(t *testing.T) {
	t.Parallel()

	p := Profile{Education: "MBA", Experience: "5 years"}.WithEmptyDefaults()
	if p.Skills == nil || p.Interests == nil {
		t.Fatalf("expected empty sets, got %+v", p)
	}

	v, err := Encode(p, NewCatalog(DefaultSeed()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expect := FeatureVector{0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 1, 0}
	if !slices.Equal(v, expect) {
		t.Fatalf("expected %v, got %v", expect, v)
	}

	if _, err := Encode(Profile{Skills: []string{}}.WithEmptyDefaults(), NewCatalog(DefaultSeed())); !errors.Is(err, ErrInvalidProfile) {
		t.Fatalf("expected categorical fields to stay required, got %v", err)
	}
}
