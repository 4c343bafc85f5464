package service

import (
	"math/rand"

	"github.com/phrazzld/trello-manager/internal/domain"
)

// DefaultBugTitleToken is used in generated bug titles when none is configured.
const DefaultBugTitleToken = "RandomWord"

// bugTitleRange bounds the numeric suffix of generated bug titles.
const bugTitleRange = 1000

// TitleGenerator produces the title for a new bug card.
type TitleGenerator func() string

// NewBugTitleGenerator returns a generator producing Bug-<token>-<n> with n
// drawn uniformly from [0, 1000).
func NewBugTitleGenerator(token string) TitleGenerator {
	if token == "" {
		token = DefaultBugTitleToken
	}
	return func() string {
		return domain.BugTitle(token, rand.Intn(bugTitleRange))
	}
}
