package handler

import (
	"github.com/devfolio/portfolio-system/internal/core/domain"
	"github.com/devfolio/portfolio-system/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createPortfolioRequest) ports.CreatePortfolioInput {
	return ports.CreatePortfolioInput{
		Name:       req.Name,
		Title:      req.Title,
		Bio:        req.Bio,
		Email:      req.Email,
		Phone:      req.Phone,
		Location:   req.Location,
		Website:    req.Website,
		LinkedIn:   req.LinkedIn,
		GitHub:     req.GitHub,
		Experience: toExperience(req.Experience),
		Education:  toEducation(req.Education),
		Projects:   toProjects(req.Projects),
		Skills:     req.Skills,
		Template:   req.Template,
	}
}

func toUpdateInput(req updatePortfolioRequest) ports.UpdatePortfolioInput {
	input := ports.UpdatePortfolioInput{
		Name:     req.Name,
		Title:    req.Title,
		Bio:      req.Bio,
		Email:    req.Email,
		Phone:    req.Phone,
		Location: req.Location,
		Website:  req.Website,
		LinkedIn: req.LinkedIn,
		GitHub:   req.GitHub,
		Skills:   req.Skills,
		Template: req.Template,
		IsPublic: req.IsPublic,
	}
	if req.Experience != nil {
		exp := toExperience(*req.Experience)
		input.Experience = &exp
	}
	if req.Education != nil {
		edu := toEducation(*req.Education)
		input.Education = &edu
	}
	if req.Projects != nil {
		projects := toProjects(*req.Projects)
		input.Projects = &projects
	}
	return input
}

func toExperience(reqs []experienceRequest) []domain.Experience {
	if reqs == nil {
		return nil
	}
	out := make([]domain.Experience, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, domain.Experience{
			Company:     r.Company,
			Role:        r.Role,
			StartDate:   r.StartDate,
			EndDate:     r.EndDate,
			Description: r.Description,
			Location:    r.Location,
			IsCurrent:   r.IsCurrent,
		})
	}
	return out
}

func toEducation(reqs []educationRequest) []domain.Education {
	if reqs == nil {
		return nil
	}
	out := make([]domain.Education, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, domain.Education{
			School:      r.School,
			Degree:      r.Degree,
			Field:       r.Field,
			StartDate:   r.StartDate,
			EndDate:     r.EndDate,
			GPA:         r.GPA,
			Description: r.Description,
		})
	}
	return out
}

func toProjects(reqs []projectRequest) []domain.Project {
	if reqs == nil {
		return nil
	}
	out := make([]domain.Project, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, domain.Project{
			Name:        r.Name,
			Description: r.Description,
			TechStack:   r.TechStack,
			Link:        r.Link,
			GitHubLink:  r.GitHubLink,
			ImageURL:    r.ImageURL,
			StartDate:   r.StartDate,
			EndDate:     r.EndDate,
			Featured:    r.Featured,
		})
	}
	return out
}
