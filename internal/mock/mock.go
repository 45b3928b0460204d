// ABOUTME: Deterministic demo-data synthesizer used when no credential is configured.
// ABOUTME: Selects from an embedded template pool by seed; ids and timestamps vary per call.
package mock

import (
	_ "embed"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/chirpsearch/chirp/internal/models"
)

//go:embed templates.yaml
var templatesYAML []byte

// DefaultWindow is how far back generated timestamps may reach.
const DefaultWindow = 24 * time.Hour

// template is one entry of the fixed demo pool. Engagement numbers are
// part of the template so repeated calls keep the same relative order;
// every template keeps views >= likes for realism.
type template struct {
	Author struct {
		Username    string `yaml:"username"`
		DisplayName string `yaml:"displayName"`
		Verified    bool   `yaml:"verified"`
		Followers   int    `yaml:"followers"`
	} `yaml:"author"`
	Text     string `yaml:"text"`
	Likes    int    `yaml:"likes"`
	Retweets int    `yaml:"retweets"`
	Replies  int    `yaml:"replies"`
	Views    int    `yaml:"views"`
}

// Synthesizer produces plausible tweets derived from a textual seed.
type Synthesizer struct {
	pool []template
	rand *rand.Rand
}

// New creates a synthesizer from the embedded template pool.
func New() (*Synthesizer, error) {
	var doc struct {
		Templates []template `yaml:"templates"`
	}
	if err := yaml.Unmarshal(templatesYAML, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse demo templates: %w", err)
	}
	if len(doc.Templates) == 0 {
		return nil, fmt.Errorf("demo template pool is empty")
	}
	return &Synthesizer{
		pool: doc.Templates,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// Synthesize returns up to limit tweets deterministically selected from
// the pool by seed: the same seed always yields the same authors and
// texts in the same relative order. Ids and timestamps are randomized
// on every call and must never be compared across calls. Output is
// sorted descending by likes.
func (s *Synthesizer) Synthesize(seed string, limit int, window time.Duration) []models.Tweet {
	return s.generate(seed, limit, window, "", "")
}

// SynthesizeReplies generates tweets that all reply to parentID.
func (s *Synthesizer) SynthesizeReplies(parentID string, limit int, window time.Duration) []models.Tweet {
	return s.generate(parentID, limit, window, parentID, "")
}

// SynthesizeTimeline generates tweets authored by username. The author
// is pinned to the requested username unless it already names a pool
// member, in which case that member's full profile is used.
func (s *Synthesizer) SynthesizeTimeline(username string, limit int, window time.Duration) []models.Tweet {
	return s.generate(username, limit, window, "", username)
}

func (s *Synthesizer) generate(seed string, limit int, window time.Duration, replyTo, pinUser string) []models.Tweet {
	if limit <= 0 {
		return nil
	}
	if window <= 0 {
		window = DefaultWindow
	}

	var pinned *models.Author
	if pinUser != "" {
		if t, ok := s.poolMember(pinUser); ok {
			a := toAuthor(t)
			pinned = &a
		} else {
			pinned = &models.Author{
				ID:          s.numericID(),
				Username:    pinUser,
				DisplayName: displayName(pinUser),
			}
		}
	}

	start := int(seedHash(seed) % uint64(len(s.pool)))
	tweets := make([]models.Tweet, 0, limit)
	for i := 0; i < limit; i++ {
		// Walk forward from the seeded offset so a single call never
		// repeats a template unless limit exceeds the pool.
		tpl := s.pool[(start+i)%len(s.pool)]

		author := toAuthor(tpl)
		if pinned != nil {
			author = *pinned
		}

		tweets = append(tweets, models.Tweet{
			ID:        s.numericID(),
			Text:      tpl.Text,
			Author:    author,
			CreatedAt: s.timestampWithin(window),
			Metrics: models.Metrics{
				Likes:    tpl.Likes,
				Retweets: tpl.Retweets,
				Replies:  tpl.Replies,
				Views:    tpl.Views,
			},
			ReplyToID: replyTo,
		})
	}

	models.SortByLikes(tweets)
	return tweets
}

func (s *Synthesizer) poolMember(username string) (template, bool) {
	for _, t := range s.pool {
		if strings.EqualFold(t.Author.Username, username) {
			return t, true
		}
	}
	return template{}, false
}

// numericID mints a fresh snowflake-looking id.
func (s *Synthesizer) numericID() string {
	return fmt.Sprintf("1%018d", s.rand.Int63n(1e18))
}

func (s *Synthesizer) timestampWithin(window time.Duration) time.Time {
	offset := time.Duration(s.rand.Int63n(int64(window)))
	return time.Now().Add(-offset)
}

func toAuthor(t template) models.Author {
	return models.Author{
		ID:          authorID(t.Author.Username),
		Username:    t.Author.Username,
		DisplayName: t.Author.DisplayName,
		Verified:    t.Author.Verified,
		Followers:   t.Author.Followers,
	}
}

// authorID derives a stable numeric id for a pool author so the same
// handle always maps to the same author id within demo data.
func authorID(username string) string {
	return fmt.Sprintf("%d", 100000000+seedHash(username)%900000000)
}

func seedHash(seed string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(seed))))
	return h.Sum64()
}

// displayName turns a handle like quiet_coder into "Quiet Coder".
func displayName(username string) string {
	parts := strings.Split(username, "_")
	for i, p := range parts {
		if len(p) > 0 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

// PoolSize reports how many templates are available, which bounds how
// many distinct records one call can return.
func (s *Synthesizer) PoolSize() int {
	return len(s.pool)
}
