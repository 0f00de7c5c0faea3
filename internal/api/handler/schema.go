package handler

import "time"

// envelope wraps every successful response body as {"data": ...}. Errors use
// the {"error": ...} envelope rendered by the central error handler.
type envelope struct {
	Data any `json:"data"`
}

// errorResponse documents the error envelope in swagger annotations.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth request types ---

type registerRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Avatar    *string `json:"avatar,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Location  *string `json:"location,omitempty"`
	Website   *string `json:"website,omitempty"`
	LinkedIn  *string `json:"linkedin,omitempty"`
	GitHub    *string `json:"github,omitempty"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8"`
}

// --- Portfolio request types ---

type experienceRequest struct {
	Company     string     `json:"company"`
	Role        string     `json:"role"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	IsCurrent   bool       `json:"is_current"`
}

type educationRequest struct {
	School      string     `json:"school"`
	Degree      string     `json:"degree"`
	Field       string     `json:"field"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	GPA         string     `json:"gpa,omitempty"`
	Description string     `json:"description"`
}

type projectRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	TechStack   []string   `json:"tech_stack"`
	Link        string     `json:"link"`
	GitHubLink  string     `json:"github_link"`
	ImageURL    string     `json:"image_url"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Featured    bool       `json:"featured"`
}

type createPortfolioRequest struct {
	Name       string              `json:"name"  validate:"required"`
	Title      string              `json:"title" validate:"required"`
	Bio        string              `json:"bio"`
	Email      string              `json:"email"`
	Phone      string              `json:"phone"`
	Location   string              `json:"location"`
	Website    string              `json:"website"`
	LinkedIn   string              `json:"linkedin"`
	GitHub     string              `json:"github"`
	Experience []experienceRequest `json:"experience"`
	Education  []educationRequest  `json:"education"`
	Projects   []projectRequest    `json:"projects"`
	Skills     []string            `json:"skills"`
	Template   string              `json:"template"`
}

type updatePortfolioRequest struct {
	Name       *string              `json:"name,omitempty"`
	Title      *string              `json:"title,omitempty"`
	Bio        *string              `json:"bio,omitempty"`
	Email      *string              `json:"email,omitempty"`
	Phone      *string              `json:"phone,omitempty"`
	Location   *string              `json:"location,omitempty"`
	Website    *string              `json:"website,omitempty"`
	LinkedIn   *string              `json:"linkedin,omitempty"`
	GitHub     *string              `json:"github,omitempty"`
	Experience *[]experienceRequest `json:"experience,omitempty"`
	Education  *[]educationRequest  `json:"education,omitempty"`
	Projects   *[]projectRequest    `json:"projects,omitempty"`
	Skills     *[]string            `json:"skills,omitempty"`
	Template   *string              `json:"template,omitempty"`
	IsPublic   *bool                `json:"is_public,omitempty"`
}

type enhanceRequest struct {
	PortfolioID string         `json:"portfolio_id" validate:"required"`
	Fields      []string       `json:"fields"`
	Context     map[string]any `json:"context"`
}
