package vaccine

// Vaccine describes one vaccine and its recommended dose ages.
type Vaccine struct {
	ID          string
	Name        string
	Description string
	// RecommendedAges holds one age in months per dose, ascending.
	RecommendedAges []int
	Doses           int // len(RecommendedAges)
	Disease         string
}

// Based on the CDC recommended child and adolescent immunization schedule:
// https://www.cdc.gov/vaccines/schedules/hcp/imz/child-adolescent.html
var catalog = []Vaccine{
	{
		ID:              "hepb",
		Name:            "Hepatitis B",
		Description:     "Protects against hepatitis B virus infection",
		RecommendedAges: []int{0, 1, 6},
		Doses:           3,
		Disease:         "Hepatitis B",
	},
	{
		ID:              "dtap",
		Name:            "DTaP",
		Description:     "Protects against diphtheria, tetanus, and pertussis",
		RecommendedAges: []int{2, 4, 6, 15, 48},
		Doses:           5,
		Disease:         "Diphtheria, Tetanus, Pertussis",
	},
	{
		ID:              "hib",
		Name:            "Hib",
		Description:     "Protects against Haemophilus influenzae type b",
		RecommendedAges: []int{2, 4, 6, 12},
		Doses:           4,
		Disease:         "Haemophilus influenzae type b",
	},
	{
		ID:              "ipv",
		Name:            "IPV",
		Description:     "Protects against polio",
		RecommendedAges: []int{2, 4, 6, 48},
		Doses:           4,
		Disease:         "Polio",
	},
	{
		ID:              "pcv13",
		Name:            "PCV13",
		Description:     "Protects against pneumococcal disease",
		RecommendedAges: []int{2, 4, 6, 12},
		Doses:           4,
		Disease:         "Pneumococcal Disease",
	},
	{
		ID:              "rv",
		Name:            "RV",
		Description:     "Protects against rotavirus",
		RecommendedAges: []int{2, 4, 6},
		Doses:           3,
		Disease:         "Rotavirus",
	},
	{
		ID:              "mmr",
		Name:            "MMR",
		Description:     "Protects against measles, mumps, and rubella",
		RecommendedAges: []int{12, 48},
		Doses:           2,
		Disease:         "Measles, Mumps, Rubella",
	},
	{
		ID:              "var",
		Name:            "Varicella",
		Description:     "Protects against chickenpox",
		RecommendedAges: []int{12, 48},
		Doses:           2,
		Disease:         "Chickenpox",
	},
}

// Catalog returns a copy of the vaccine catalog in its canonical order.
func Catalog() []Vaccine {
	out := make([]Vaccine, len(catalog))
	for i, v := range catalog {
		out[i] = v.clone()
	}
	return out
}

// Lookup returns the catalog vaccine with the given id.
func Lookup(id string) (Vaccine, bool) {
	for _, v := range catalog {
		if v.ID == id {
			return v.clone(), true
		}
	}
	return Vaccine{}, false
}

// TotalDoses is the number of doses across the whole catalog, the upper
// bound on the length of any schedule.
func TotalDoses() int {
	n := 0
	for _, v := range catalog {
		n += v.Doses
	}
	return n
}

func (v Vaccine) clone() Vaccine {
	v.RecommendedAges = append([]int(nil), v.RecommendedAges...)
	return v
}
