package catalog

// DefaultCategories is the starter catalog: the backend seeds it into an
// empty store and the client falls back to it when nothing could be loaded.
func DefaultCategories() []Category {
	return []Category{
		{ID: "1", Name: "Real Estate Fundamentals", Icon: "Home", Videos: []Video{}},
		{ID: "2", Name: "Marketing and Sales", Icon: "TrendingUp", Videos: []Video{}},
		{ID: "3", Name: "Regulations and Ethics", Icon: "BookOpen", Videos: []Video{}},
		{ID: "4", Name: "Finance and Economics", Icon: "PieChart", Videos: []Video{}},
		{ID: "5", Name: "Real Estate Technology", Icon: "Lightbulb", Videos: []Video{}},
		{ID: "6", Name: "Negotiation and Closing", Icon: "Award", Videos: []Video{}},
		{ID: "7", Name: "Personal Development", Icon: "User", Videos: []Video{}},
		{ID: "8", Name: "Property Valuation", Icon: "Building", Videos: []Video{}},
		{ID: "9", Name: "Customer Service", Icon: "Users", Videos: []Video{}},
	}
}
