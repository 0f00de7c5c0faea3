package domain

import (
	"errors"
	"time"
)

var ErrPortfolioNotFound = errors.New("portfolio not found")
var ErrNotOwner = errors.New("portfolio belongs to a different user")

// Portfolio is the core aggregate: one resume/CV document owned by a user.
// Experience, Education and Project entries are embedded value objects with
// no identity of their own.
type Portfolio struct {
	ID         string       `json:"id" bson:"_id,omitempty"`
	UserID     string       `json:"user_id" bson:"user_id"`
	Name       string       `json:"name" bson:"name"`
	Title      string       `json:"title" bson:"title"`
	Bio        string       `json:"bio" bson:"bio"`
	Email      string       `json:"email" bson:"email"`
	Phone      string       `json:"phone" bson:"phone"`
	Location   string       `json:"location" bson:"location"`
	Website    string       `json:"website" bson:"website"`
	LinkedIn   string       `json:"linkedin" bson:"linkedin"`
	GitHub     string       `json:"github" bson:"github"`
	Experience []Experience `json:"experience" bson:"experience"`
	Education  []Education  `json:"education" bson:"education"`
	Projects   []Project    `json:"projects" bson:"projects"`
	Skills     []string     `json:"skills" bson:"skills"`
	Template   string       `json:"template" bson:"template"`
	IsPublic   bool         `json:"is_public" bson:"is_public"`
	CreatedAt  time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at" bson:"updated_at"`
}

// Experience is a single work entry. When IsCurrent is true, EndDate is
// expected absent and ignored by consumers.
type Experience struct {
	Company     string     `json:"company" bson:"company"`
	Role        string     `json:"role" bson:"role"`
	StartDate   time.Time  `json:"start_date" bson:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty" bson:"end_date,omitempty"`
	Description string     `json:"description" bson:"description"`
	Location    string     `json:"location" bson:"location"`
	IsCurrent   bool       `json:"is_current" bson:"is_current"`
}

// Education is a single study entry.
type Education struct {
	School      string     `json:"school" bson:"school"`
	Degree      string     `json:"degree" bson:"degree"`
	Field       string     `json:"field" bson:"field"`
	StartDate   time.Time  `json:"start_date" bson:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty" bson:"end_date,omitempty"`
	GPA         string     `json:"gpa,omitempty" bson:"gpa,omitempty"`
	Description string     `json:"description" bson:"description"`
}

// Project is a single showcased project.
type Project struct {
	Name        string     `json:"name" bson:"name"`
	Description string     `json:"description" bson:"description"`
	TechStack   []string   `json:"tech_stack" bson:"tech_stack"`
	Link        string     `json:"link" bson:"link"`
	GitHubLink  string     `json:"github_link" bson:"github_link"`
	ImageURL    string     `json:"image_url" bson:"image_url"`
	StartDate   time.Time  `json:"start_date" bson:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty" bson:"end_date,omitempty"`
	Featured    bool       `json:"featured" bson:"featured"`
}
