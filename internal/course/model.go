package course

// Course is the stored entity as the service sees it, independent of backend.
type Course struct {
	ID    ID
	Title string
}

// View is the only shape of a course that leaves the service.
type View struct {
	ID    ID     `json:"id"`
	Title string `json:"title"`
}

func ToView(c Course) View {
	return View{ID: c.ID, Title: c.Title}
}

func ToViews(courses []Course) []View {
	views := make([]View, 0, len(courses))
	for _, c := range courses {
		views = append(views, ToView(c))
	}
	return views
}

// Input is the accepted body of create and update requests.
type Input struct {
	Title string `json:"title" validate:"min=3,max=15"`
}
