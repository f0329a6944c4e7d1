package hackathon_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/develevate/backend/hackathon"
)

func TestDeriveHackathonStatus(t *testing.T) {
	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)
	judgingEnd := end.Add(24 * time.Hour)

	assert.Equal(t, hackathon.StatusUpcoming,
		hackathon.DeriveStatus(start.Add(-time.Minute), start, end, judgingEnd))
	assert.Equal(t, hackathon.StatusActive,
		hackathon.DeriveStatus(start, start, end, judgingEnd))
	assert.Equal(t, hackathon.StatusJudging,
		hackathon.DeriveStatus(end, start, end, judgingEnd))
	assert.Equal(t, hackathon.StatusEnded,
		hackathon.DeriveStatus(judgingEnd, start, end, judgingEnd))
}

func TestValidRepoURL(t *testing.T) {
	valid := []string{
		"https://github.com/gophers/whiteboard",
		"https://github.com/a/b",
		"https://github.com/my-org/my.repo-v2",
		"https://github.com/user/repo/",
	}
	for _, url := range valid {
		assert.True(t, hackathon.ValidRepoURL(url), url)
	}

	invalid := []string{
		"http://github.com/gophers/whiteboard",
		"https://gitlab.com/gophers/whiteboard",
		"https://github.com/gophers",
		"https://github.com/-org/repo",
		"https://github.com/org/repo/tree/main",
		"github.com/org/repo",
		"",
	}
	for _, url := range invalid {
		assert.False(t, hackathon.ValidRepoURL(url), url)
	}
}

func TestNewInviteCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := hackathon.NewInviteCode()
		assert.Len(t, code, 8)
		for _, c := range code {
			assert.True(t, strings.ContainsRune("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", c),
				"unexpected character %q in %s", c, code)
		}
		seen[code] = true
	}
	// 100 draws from a 36^8 space colliding would point at a broken rng
	assert.Greater(t, len(seen), 95)
}
