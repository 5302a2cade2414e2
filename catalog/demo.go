package catalog

// Demo returns the four-city sample catalog with its hand-built index.
// Hong Kong is endorsed for museums but not indexed for them, and London is
// endorsed only for shark diving, which has no index entry at all.
func Demo() *File {
	return &File{
		Locations: []Entry{
			{Name: "Hong Kong", Endorsements: map[string]int64{"Walking": 1, "Food": 1, "Museum": 1}},
			{Name: "Toronto", Endorsements: map[string]int64{"Walking": 50, "Food": 50, "Museum": 1}},
			{Name: "Amsterdam", Endorsements: map[string]int64{"Museum": 1000}},
			{Name: "London", Endorsements: map[string]int64{"Shark Diving": 1}},
		},
		Index: map[string][]string{
			"Walking": {"Hong Kong", "Toronto"},
			"Food":    {"Hong Kong", "Toronto"},
			"Museum":  {"Toronto", "Amsterdam"},
		},
	}
}

// DemoQuery is the query the demo harness runs against Demo.
var DemoQuery = []string{"Walking", "Food"}
