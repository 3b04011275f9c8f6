package dtos

type Experience struct {
	Role        string `json:"role"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"` // "Present" for current roles
	Description string `json:"description,omitempty"`
}

type Education struct {
	Degree      string `json:"degree"`
	School      string `json:"school"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description,omitempty"`
}

// CVSections are the repeated parts of a CV.
type CVSections struct {
	Experiences []Experience `json:"experiences"`
	Education   []Education  `json:"education"`
	Skills      []string     `json:"skills"`
}

type CVRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Title    string `json:"title"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Summary  string `json:"summary"`
	Template string `json:"template"`

	CVSections
}

type CVResponse struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Title    string `json:"title"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Summary  string `json:"summary"`
	Template string `json:"template"`
	Unlocked bool   `json:"unlocked"`

	CVSections
}

// ExtractedCV is what the AI extraction returns for an uploaded PDF.
type ExtractedCV struct {
	FullName string `json:"full_name"`
	Title    string `json:"title"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Summary  string `json:"summary"`

	CVSections
}
