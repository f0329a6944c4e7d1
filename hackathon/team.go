package hackathon

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Team belongs to exactly one hackathon and carries a unique invite
// code that members join through.
type Team struct {
	UUID       uuid.UUID
	Name       string
	InviteCode string
	Members    []uuid.UUID
	CreatedAt  time.Time
}

func (t *Team) HasMember(userUUID uuid.UUID) bool {
	for _, m := range t.Members {
		if m == userUUID {
			return true
		}
	}
	return false
}

const inviteCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const inviteCodeLength = 8

// NewInviteCode generates a random invite code. Uniqueness within a
// hackathon is checked by the caller against the existing teams.
func NewInviteCode() string {
	var sb strings.Builder
	sb.Grow(inviteCodeLength)
	for i := 0; i < inviteCodeLength; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(inviteCodeCharset))))
		if err != nil {
			// crypto/rand failing means the platform is broken
			panic(err)
		}
		sb.WriteByte(inviteCodeCharset[n.Int64()])
	}
	return sb.String()
}
