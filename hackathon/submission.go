package hackathon

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Vote is one user's vote for a hackathon submission. One vote per user
// per submission; the repo enforces it atomically.
type Vote struct {
	UserUUID uuid.UUID
	CastAt   time.Time
}

// Submission is a team's (or individual's) hackathon project entry.
// TotalVotes always equals the deduplicated vote-list length.
type Submission struct {
	UUID        uuid.UUID
	HackathonID uuid.UUID

	// exactly one of TeamID / UserUUID is set
	TeamID   *uuid.UUID
	UserUUID *uuid.UUID

	Title       string
	Description string
	RepoURL     string
	DemoURL     *string

	Votes      []Vote
	TotalVotes int

	CreatedAt time.Time
}

var githubRepoPattern = regexp.MustCompile(
	`^https://github\.com/[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?/[A-Za-z0-9._-]+/?$`)

// ValidRepoURL reports whether the url matches the GitHub repository
// pattern submissions are required to use.
func ValidRepoURL(url string) bool {
	return githubRepoPattern.MatchString(url)
}

func (s *Submission) HasVoteFrom(userUUID uuid.UUID) bool {
	for _, v := range s.Votes {
		if v.UserUUID == userUUID {
			return true
		}
	}
	return false
}
