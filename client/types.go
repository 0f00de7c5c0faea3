// Package client is the Go SDK for the devfolio API. It bundles three
// pieces: Client, the single point of contact with the backend;
// AuthManager, which tracks the authenticated user; and PortfolioCache,
// which keeps a local copy of the user's portfolios consistent with
// server mutations.
package client

import "time"

// User mirrors the API's user representation.
type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Avatar      string     `json:"avatar"`
	Bio         string     `json:"bio"`
	Phone       string     `json:"phone"`
	Location    string     `json:"location"`
	Website     string     `json:"website"`
	LinkedIn    string     `json:"linkedin"`
	GitHub      string     `json:"github"`
	IsVerified  bool       `json:"is_verified"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Portfolio mirrors the API's portfolio representation.
type Portfolio struct {
	ID         string       `json:"id"`
	UserID     string       `json:"user_id"`
	Name       string       `json:"name"`
	Title      string       `json:"title"`
	Bio        string       `json:"bio"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	Location   string       `json:"location"`
	Website    string       `json:"website"`
	LinkedIn   string       `json:"linkedin"`
	GitHub     string       `json:"github"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
	Projects   []Project    `json:"projects"`
	Skills     []string     `json:"skills"`
	Template   string       `json:"template"`
	IsPublic   bool         `json:"is_public"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

type Experience struct {
	Company     string     `json:"company"`
	Role        string     `json:"role"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	IsCurrent   bool       `json:"is_current"`
}

type Education struct {
	School      string     `json:"school"`
	Degree      string     `json:"degree"`
	Field       string     `json:"field"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	GPA         string     `json:"gpa,omitempty"`
	Description string     `json:"description"`
}

type Project struct {
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

// RegisterInput is the payload for Register.
type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ProfileUpdate is a partial profile update: nil fields are not sent.
type ProfileUpdate struct {
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

// CreatePortfolioInput is the payload for CreatePortfolio.
type CreatePortfolioInput struct {
	Name       string       `json:"name"`
	Title      string       `json:"title"`
	Bio        string       `json:"bio,omitempty"`
	Email      string       `json:"email,omitempty"`
	Phone      string       `json:"phone,omitempty"`
	Location   string       `json:"location,omitempty"`
	Website    string       `json:"website,omitempty"`
	LinkedIn   string       `json:"linkedin,omitempty"`
	GitHub     string       `json:"github,omitempty"`
	Experience []Experience `json:"experience,omitempty"`
	Education  []Education  `json:"education,omitempty"`
	Projects   []Project    `json:"projects,omitempty"`
	Skills     []string     `json:"skills,omitempty"`
	Template   string       `json:"template,omitempty"`
}

// UpdatePortfolioInput is a partial portfolio update: nil fields are not sent.
type UpdatePortfolioInput struct {
	Name       *string       `json:"name,omitempty"`
	Title      *string       `json:"title,omitempty"`
	Bio        *string       `json:"bio,omitempty"`
	Email      *string       `json:"email,omitempty"`
	Phone      *string       `json:"phone,omitempty"`
	Location   *string       `json:"location,omitempty"`
	Website    *string       `json:"website,omitempty"`
	LinkedIn   *string       `json:"linkedin,omitempty"`
	GitHub     *string       `json:"github,omitempty"`
	Experience *[]Experience `json:"experience,omitempty"`
	Education  *[]Education  `json:"education,omitempty"`
	Projects   *[]Project    `json:"projects,omitempty"`
	Skills     *[]string     `json:"skills,omitempty"`
	Template   *string       `json:"template,omitempty"`
	IsPublic   *bool         `json:"is_public,omitempty"`
}

// EnhanceInput is the payload for EnhancePortfolio.
type EnhanceInput struct {
	PortfolioID string         `json:"portfolio_id"`
	Fields      []string       `json:"fields,omitempty"`
	Context     map[string]any `json:"context,omitempty"`
}

// LoginResult carries the user and access token returned by login/register.
type LoginResult struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}

// Health is the liveness payload of GET /health.
type Health struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
