package wordledomain

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Black-And-White-Club/wordle-bot/internal/puzzledate"
)

var (
	// optional decorative glyphs, a score of 1-6 or X, "/6:", then mentions.
	resultLineRe = regexp.MustCompile(`^\s*(?:[^\p{L}\p{N}\s]+\s*)?([1-6X])/6:\s*(.*)$`)

	// <@123> (or the legacy nickname form <@!123>) or a bare @name.
	identityRe = regexp.MustCompile(`<@!?(\d+)>|@([\p{L}\p{N}_.\-]+)`)

	announcementRe = regexp.MustCompile(`(?i)here are yesterday'?s results`)
)

// Mass mentions that can never name a player.
var ignoredNames = map[string]struct{}{
	"everyone": {},
	"here":     {},
}

// IdentityToken is one mention pulled from a result line. Exactly one of
// UserID and Name is set.
type IdentityToken struct {
	UserID string
	Name   string
}

func (t IdentityToken) String() string {
	if t.UserID != "" {
		return "<@" + t.UserID + ">"
	}
	return "@" + t.Name
}

// ResultGroup is one score line: every identity on it shares the score.
type ResultGroup struct {
	ScoreToken string
	Solved     bool
	// Score is nil iff the puzzle was not solved.
	Score      *int
	Identities []IdentityToken
}

// Announcement is the parsed form of one results post.
type Announcement struct {
	PuzzleDate time.Time
	Groups     []ResultGroup
}

// IdentityCount is the total number of mentions across all groups.
func (a Announcement) IdentityCount() int {
	n := 0
	for _, g := range a.Groups {
		n += len(g.Identities)
	}
	return n
}

// IsResultAnnouncement reports whether a message is the Wordle app's daily
// results post.
func IsResultAnnouncement(authorID string, isBot bool, content, appID string) bool {
	return isBot && authorID == appID && announcementRe.MatchString(content)
}

// ParseAnnouncement extracts the score groups from a results post. Lines that
// are not score lines are ignored, and a score line without mentions yields a
// group with no identities. The puzzle date is derived once from createdAt.
func ParseAnnouncement(content string, createdAt time.Time, loc *time.Location) Announcement {
	a := Announcement{PuzzleDate: puzzledate.FromMessage(createdAt, loc)}

	for _, line := range strings.Split(content, "\n") {
		g, ok := ParseResultLine(line)
		if !ok {
			continue
		}
		a.Groups = append(a.Groups, g)
	}
	return a
}

// ParseResultLine parses a single score line.
func ParseResultLine(line string) (ResultGroup, bool) {
	m := resultLineRe.FindStringSubmatch(strings.TrimRight(line, "\r"))
	if m == nil {
		return ResultGroup{}, false
	}

	g := ResultGroup{ScoreToken: m[1]}
	if m[1] != "X" {
		score, _ := strconv.Atoi(m[1])
		g.Solved = true
		g.Score = &score
	}
	g.Identities = ExtractIdentities(m[2])
	return g, true
}

// ExtractIdentities returns every mention in s in document order. Matches
// never overlap.
func ExtractIdentities(s string) []IdentityToken {
	var out []IdentityToken
	for _, m := range identityRe.FindAllStringSubmatch(s, -1) {
		if m[1] != "" {
			out = append(out, IdentityToken{UserID: m[1]})
			continue
		}

		name := strings.TrimRight(m[2], ".")
		if name == "" {
			continue
		}
		if _, skip := ignoredNames[name]; skip {
			continue
		}
		out = append(out, IdentityToken{Name: name})
	}
	return out
}
