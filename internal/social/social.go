// Package social fakes the feed a report is posted to: likes, retweets,
// comments and trending tags. Nothing here feeds back into the score.
package social

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"justicemango/internal/random"
	"justicemango/internal/schedule"
)

var positiveComments = []string{
	"Well done!",
	"People like this are why the streets are dirty.",
	"They should crack down harder.",
	"A real hero of justice!",
	"I'll report it too if I see it.",
}

var negativeComments = []string{
	"Isn't this a bit much?",
	"Justice warrior spotted.",
	"Don't you have anything better to do?",
	"Surveillance society is scary.",
	"Try being a little more tolerant.",
}

var neutralComments = []string{
	"Tough call.",
	"I get where you're coming from.",
	"Hmm...",
	"I see.",
	"Is that so.",
}

var trendingTags = []string{
	"#JusticeMan",
	"#BadManners",
	"#SurveillanceSociety",
	"#SNSReport",
	"#SafeStreets",
}

var usernamePrefixes = []string{"user", "justice", "citizen", "observer", "watcher"}

type PostConfig struct {
	Message          string   `json:"message"`
	ImageDescription string   `json:"image_description,omitempty"`
	Tags             []string `json:"tags"`
}

type Post struct {
	ID               int      `json:"id"`
	Message          string   `json:"message"`
	ImageDescription string   `json:"image_description,omitempty"`
	Tags             []string `json:"tags"`
	PostTime         float64  `json:"post_time"`
}

type Comment struct {
	Text       string  `json:"text"`
	Author     string  `json:"author"`
	IsNegative bool    `json:"is_negative"`
	Time       float64 `json:"time"`
}

type Reactions struct {
	Likes    int       `json:"likes"`
	Retweets int       `json:"retweets"`
	Comments []Comment `json:"comments"`
}

// NegativeCount returns how many comments came from the negative pool.
func (r Reactions) NegativeCount() int {
	n := 0
	for _, c := range r.Comments {
		if c.IsNegative {
			n++
		}
	}
	return n
}

// Simulator generates posts and their reactions. Animation timing runs on
// the scheduler it is given, which the owner advances.
type Simulator struct {
	rng       random.Source
	sched     *schedule.Scheduler
	nextID    int
	animating bool
	current   PostConfig
	anim      schedule.Handle
}

func NewSimulator(rng random.Source, sched *schedule.Scheduler) *Simulator {
	if sched == nil {
		sched = schedule.New()
	}
	return &Simulator{rng: rng, sched: sched, nextID: 1}
}

// CreatePost stamps cfg with the next post id and the time now.
func (s *Simulator) CreatePost(cfg PostConfig, now float64) Post {
	p := Post{
		ID:               s.nextID,
		Message:          cfg.Message,
		ImageDescription: cfg.ImageDescription,
		Tags:             append([]string{}, cfg.Tags...),
		PostTime:         now,
	}
	s.nextID++
	return p
}

// SimulateReactions rolls likes, retweets and comments for post.
func (s *Simulator) SimulateReactions(post Post, successRate, backlashRate float64) Reactions {
	var r Reactions
	base := s.rng.IntRange(10, 50)
	r.Likes = int(math.Round(float64(base) * (1 + successRate)))

	if s.rng.Float64() < successRate*0.5 {
		r.Retweets = s.rng.IntRange(1, max(1, r.Likes/2))
	}

	count := s.rng.IntRange(3, 10)
	r.Comments = s.GenerateComments(backlashRate, count, post.PostTime)
	return r
}

// GenerateComments draws count comments. Each roll below backlashRate is
// negative, the next 0.3 of the range neutral and the rest positive.
// Comments are timestamped 10 to 300 seconds after base and returned in
// time order.
func (s *Simulator) GenerateComments(backlashRate float64, count int, base float64) []Comment {
	out := make([]Comment, 0, max(count, 0))
	for i := 0; i < count; i++ {
		r := s.rng.Float64()
		var c Comment
		switch {
		case r < backlashRate:
			c.Text = pick(s.rng, negativeComments)
			c.IsNegative = true
		case r < backlashRate+0.3:
			c.Text = pick(s.rng, neutralComments)
		default:
			c.Text = pick(s.rng, positiveComments)
		}
		c.Author = s.username()
		c.Time = base + s.rng.Range(10, 300)
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}

func (s *Simulator) username() string {
	return pick(s.rng, usernamePrefixes) + strconv.Itoa(s.rng.IntRange(100, 9998))
}

// TrendingHashtags samples three distinct tags from the trending pool.
func (s *Simulator) TrendingHashtags() []string {
	pool := append([]string(nil), trendingTags...)
	// partial Fisher-Yates
	n := min(3, len(pool))
	for i := 0; i < n; i++ {
		j := i + s.rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

// TrendingPool returns the full tag pool.
func TrendingPool() []string {
	return append([]string(nil), trendingTags...)
}

// ViralPotential scores how far post might spread, in [0,1].
func ViralPotential(post Post, goodTiming bool) float64 {
	p := 0.3
	for _, tag := range post.Tags {
		if isTrending(tag) {
			p += 0.1
		}
	}
	if goodTiming {
		p += 0.3
	}
	if n := utf8.RuneCountInString(post.Message); n > 50 && n < 200 {
		p += 0.1
	}
	return math.Max(0, math.Min(1, p))
}

func isTrending(tag string) bool {
	for _, t := range trendingTags {
		if t == tag {
			return true
		}
	}
	return false
}

// PlayPostAnimation shows cfg for duration seconds. It returns false and
// does nothing while another post is still animating.
func (s *Simulator) PlayPostAnimation(cfg PostConfig, duration float64) bool {
	if s.animating {
		return false
	}
	s.animating = true
	s.current = cfg
	s.anim = s.sched.After(duration, func() {
		s.animating = false
		s.current = PostConfig{}
	})
	return true
}

func (s *Simulator) IsAnimating() bool { return s.animating }

// Animating returns the post on screen, if any.
func (s *Simulator) Animating() (PostConfig, bool) {
	return s.current, s.animating
}

// StopAnimation hides the current post immediately.
func (s *Simulator) StopAnimation() {
	s.anim.Cancel()
	s.animating = false
	s.current = PostConfig{}
}

// FormatNumber abbreviates counts the way the feed displays them:
// 1.2K, 12K, 1.5M.
func FormatNumber(n int) string {
	switch {
	case n >= 1_000_000:
		return oneDecimal(float64(n)/1_000_000) + "M"
	case n >= 10_000:
		return strconv.Itoa(n/1000) + "K"
	case n >= 1000:
		return oneDecimal(float64(n)/1000) + "K"
	default:
		return strconv.Itoa(n)
	}
}

func oneDecimal(v float64) string {
	return strings.TrimSuffix(strconv.FormatFloat(v, 'f', 1, 64), ".0")
}

func pick(rng random.Source, pool []string) string {
	return pool[rng.Intn(len(pool))]
}
