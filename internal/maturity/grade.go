package maturity

// Grade is a letter band of the overall percentage
type Grade struct {
	Letter      string `json:"letter"`
	Min         int    `json:"min"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// Grades are ordered from best to worst; each band starts at Min inclusive
var Grades = []Grade{
	{Letter: "A", Min: 80, Color: "#16a34a", Description: "Mature compliance organisation; focus on continuous improvement."},
	{Letter: "B", Min: 60, Color: "#65a30d", Description: "Solid foundation with individual gaps to close."},
	{Letter: "C", Min: 40, Color: "#ca8a04", Description: "Partial coverage; several core processes are missing."},
	{Letter: "D", Min: 20, Color: "#ea580c", Description: "Early stage; significant regulatory exposure."},
	{Letter: "E", Min: 0, Color: "#dc2626", Description: "Little to no compliance infrastructure in place."},
}

// GradeFor returns the band of a percentage
func GradeFor(percentage int) Grade {
	for _, g := range Grades {
		if percentage >= g.Min {
			return g
		}
	}

	return Grades[len(Grades)-1]
}
