package store

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Linda-Mensah/hire-link/internal/types"
)

// Catalog returns the job catalog read from the JSON file at path, or DefaultJobs
// when path is empty. The file holds an array of jobs; ids must be present and unique.
func Catalog(path string) ([]types.Job, error) {
	if path == "" {
		return DefaultJobs(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job catalog %s: %w", path, err)
	}

	var jobs []types.Job
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("failed to parse job catalog: %w", err)
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("job catalog %s is empty", path)
	}

	seen := make(map[string]bool, len(jobs))
	for i, job := range jobs {
		id := strings.TrimSpace(job.ID)
		if id == "" {
			return nil, fmt.Errorf("job catalog entry %d has no id", i)
		}
		if seen[id] {
			return nil, fmt.Errorf("job catalog has duplicate id %q", id)
		}
		seen[id] = true
		jobs[i].ID = id
	}
	return jobs, nil
}

// DefaultJobs is the built-in job catalog.
func DefaultJobs() []types.Job {
	return []types.Job{
		{
			ID:          "1",
			Title:       "Frontend Developer",
			Location:    "Remote",
			Description: "Build responsive and accessible user interfaces using modern web technologies.",
			Department:  "Engineering",
			SalaryRange: "$80,000 - $120,000",
			PostedDate:  "2024-01-15",
		},
		{
			ID:          "2",
			Title:       "UX Designer",
			Location:    "New York, NY",
			Description: "Create intuitive user experiences and beautiful interfaces.",
			Department:  "Design",
			SalaryRange: "$70,000 - $110,000",
			PostedDate:  "2024-01-10",
		},
		{
			ID:          "3",
			Title:       "Backend Engineer",
			Location:    "San Francisco, CA",
			Description: "Develop scalable server-side applications and APIs.",
			Department:  "Engineering",
			SalaryRange: "$90,000 - $140,000",
			PostedDate:  "2024-01-05",
		},
		{
			ID:          "4",
			Title:       "Product Manager",
			Location:    "Remote",
			Description: "Lead product strategy and work with cross-functional teams.",
			Department:  "Product",
			SalaryRange: "$100,000 - $150,000",
			PostedDate:  "2024-01-01",
		},
	}
}

// SeedCandidates returns the example candidates used when no valid state is stored.
func SeedCandidates() []types.Candidate {
	return []types.Candidate{
		{
			ID: "1",
			CandidateFields: types.CandidateFields{
				FullName:          "Alex Johnson",
				Email:             "alex@example.com",
				Phone:             "+1234567890",
				YearsOfExperience: 3,
				Skills:            []string{"React", "TypeScript", "Node.js"},
				PortfolioURL:      types.Some("https://alexjohnson.dev"),
			},
			ApplicationDate: time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
			Stage:           types.StageApplied,
			Score:           types.Some(4),
			Notes:           types.Some("Strong React skills, good communication"),
		},
		{
			ID: "2",
			CandidateFields: types.CandidateFields{
				FullName:          "Sam Smith",
				Email:             "sam@example.com",
				Phone:             "+1234567891",
				YearsOfExperience: 5,
				Skills:            []string{"UX Design", "Figma", "User Research"},
			},
			ApplicationDate: time.Date(2024, time.January, 12, 0, 0, 0, 0, time.UTC),
			Stage:           types.StageReviewed,
			Score:           types.Some(5),
			Notes:           types.Some("Excellent portfolio, senior level experience"),
		},
	}
}
