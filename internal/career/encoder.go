package career

// Encode maps a profile to a binary feature vector relative to the catalog.
//
// The vector holds four blocks of len(catalog) indicators, in this order:
// skills, interests, education, experience. Indicator i of the set blocks is 1
// when the profile shares at least one value with archetype i. Indicator i of
// the categorical blocks is 1 when the profile value equals the value of
// archetype i, so archetypes sharing a category all fire.
//
// Absent profile fields are rejected with an *InvalidProfileError. Use
// Profile.WithEmptyDefaults to treat absent sets as empty.
func Encode(p Profile, c *Catalog) (FeatureVector, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	n := c.Len()
	v := make(FeatureVector, 4*n)

	skills := toSet(p.Skills)
	interests := toSet(p.Interests)

	for i := 0; i < n; i++ {
		a := &c.items[i]
		v[i] = indicator(intersects(skills, a.Skills))
		v[n+i] = indicator(intersects(interests, a.Interests))
		v[2*n+i] = indicator(p.Education == a.Education)
		v[3*n+i] = indicator(p.Experience == a.Experience)
	}

	return v, nil
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func intersects(set map[string]struct{}, values []string) bool {
	for _, v := range values {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}

func indicator(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
