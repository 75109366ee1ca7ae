package validate

// Regions returns the sixteen voivodeships of Poland as printed in the
// register.
func Regions() []string {
	return []string{
		"dolnośląskie",
		"kujawsko-pomorskie",
		"lubelskie",
		"lubuskie",
		"łódzkie",
		"małopolskie",
		"mazowieckie",
		"opolskie",
		"podkarpackie",
		"podlaskie",
		"pomorskie",
		"śląskie",
		"świętokrzyskie",
		"warmińsko-mazurskie",
		"wielkopolskie",
		"zachodniopomorskie",
	}
}

// regionSet is a set of normalized voivodeship names.
type regionSet map[string]struct{}

func newRegionSet(names []string) regionSet {
	set := make(regionSet, len(names))
	for _, n := range names {
		set[NormalizeRegion(n)] = struct{}{}
	}
	return set
}

func (s regionSet) contains(name string) bool {
	_, ok := s[NormalizeRegion(name)]
	return ok
}
