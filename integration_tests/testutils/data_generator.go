package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"

	userdb "github.com/Black-And-White-Club/wordle-bot/app/modules/user/infrastructure/repositories"
	wordledb "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/repositories"
	"github.com/Black-And-White-Club/wordle-bot/internal/puzzledate"
)

// TestDataGenerator produces users and outcomes from a seeded faker so a
// failing run can be replayed.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	Seed  uint64
}

// NewTestDataGenerator creates a generator; without a seed the clock is used.
func NewTestDataGenerator(seed ...uint64) *TestDataGenerator {
	s := uint64(time.Now().UnixNano())
	if len(seed) > 0 {
		s = seed[0]
	}
	return &TestDataGenerator{faker: gofakeit.New(s), Seed: s}
}

// Snowflake returns a random Discord-style numeric id.
func (g *TestDataGenerator) Snowflake() string {
	return g.faker.Numerify("1###############")
}

// GenerateUsers creates count synced (non-placeholder) users.
func (g *TestDataGenerator) GenerateUsers(count int) []*userdb.User {
	users := make([]*userdb.User, count)
	for i := range users {
		username := g.faker.Username()
		users[i] = &userdb.User{
			UserID:     g.Snowflake(),
			Username:   username,
			GuildName:  g.faker.FirstName(),
			GlobalName: username,
		}
	}
	return users
}

// GenerateOutcomes gives every user a random outcome (or none) on each of
// days consecutive puzzle dates starting at start.
func (g *TestDataGenerator) GenerateOutcomes(users []*userdb.User, start time.Time, days int) []*wordledb.Outcome {
	var out []*wordledb.Outcome
	for d := 0; d < days; d++ {
		date := puzzledate.AddDays(start, d)
		for _, u := range users {
			if g.faker.Number(0, 3) == 0 {
				continue
			}
			o := &wordledb.Outcome{UserID: u.UserID, PuzzleDate: date}
			if g.faker.Number(0, 4) > 0 {
				score := g.faker.Number(1, 6)
				o.Solved = true
				o.Score = &score
			}
			out = append(out, o)
		}
	}
	return out
}
