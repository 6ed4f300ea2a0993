package crawler

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
	"go.uber.org/zap"

	"stockpulse/pkg/reddit"
	"stockpulse/pkg/ticker"
)

type fakeFetcher struct {
	posts    map[string][]reddit.Post
	comments map[string][]string

	failSubreddits map[string]bool
	failComments   map[string]bool
}

func (f *fakeFetcher) HotPosts(subreddit string, limit int) ([]reddit.Post, error) {
	if f.failSubreddits[subreddit] {
		return nil, fmt.Errorf("listing failed")
	}
	posts := f.posts[subreddit]
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (f *fakeFetcher) TopComments(postID string, limit int) ([]string, error) {
	if f.failComments[postID] {
		return nil, fmt.Errorf("comments failed")
	}
	comments := f.comments[postID]
	if len(comments) > limit {
		comments = comments[:limit]
	}
	return comments, nil
}

func noSleep(time.Duration) {}

func TestRunCountsAllFragments(t *testing.T) {
	fetcher := &fakeFetcher{
		posts: map[string][]reddit.Post{
			"wallstreetbets": {
				{ID: "p1", Title: "I love $TSLA and TSLA", Body: ""},
				{ID: "p2", Title: "AAPL AAPL GME", Body: "THE best stock is GME"},
			},
		},
		comments: map[string][]string{
			"p1": {"AMC to the moon", "holding $AMC"},
		},
	}

	agg := ticker.NewAggregator(ticker.NewDenylist("THE", "I"))
	c := New(&Config{Subreddits: []string{"wallstreetbets"}}, fetcher, zap.NewNop())
	c.Sleep = noSleep

	stats := c.Run(agg)
	assert.Equal(t, Stats{Posts: 2, Comments: 2, Skipped: 0}, stats)

	// All tied at 2; comments on p1 land before p2's title, so AMC is seen
	// before AAPL and GME.
	want := []ticker.Mention{
		{Symbol: "TSLA", Count: 2},
		{Symbol: "AMC", Count: 2},
		{Symbol: "AAPL", Count: 2},
		{Symbol: "GME", Count: 2},
	}
	assert.Equal(t, want, agg.Rank(10))
}

func TestRunSkipsFailedSubreddit(t *testing.T) {
	fetcher := &fakeFetcher{
		posts: map[string][]reddit.Post{
			"stocks": {{ID: "p1", Title: "NVDA", Body: ""}},
		},
		failSubreddits: map[string]bool{"wallstreetbets": true},
	}

	agg := ticker.NewAggregator(nil)
	c := New(&Config{Subreddits: []string{"wallstreetbets", "stocks"}}, fetcher, zap.NewNop())
	c.Sleep = noSleep

	stats := c.Run(agg)
	assert.Equal(t, Stats{Posts: 1, Comments: 0, Skipped: 1}, stats)
	assert.Equal(t, []ticker.Mention{{Symbol: "NVDA", Count: 1}}, agg.Rank(10))
}

func TestRunKeepsPostFragmentsWhenCommentsFail(t *testing.T) {
	fetcher := &fakeFetcher{
		posts: map[string][]reddit.Post{
			"wallstreetbets": {{ID: "p1", Title: "GME", Body: "$GME"}},
		},
		failComments: map[string]bool{"p1": true},
	}

	agg := ticker.NewAggregator(nil)
	c := New(&Config{}, fetcher, zap.NewNop())
	c.Sleep = noSleep

	stats := c.Run(agg)
	assert.Equal(t, Stats{Posts: 1, Comments: 0, Skipped: 1}, stats)
	assert.Equal(t, []ticker.Mention{{Symbol: "GME", Count: 2}}, agg.Rank(10))
}

func TestRunRespectsLimits(t *testing.T) {
	fetcher := &fakeFetcher{
		posts: map[string][]reddit.Post{
			"wallstreetbets": {
				{ID: "p1", Title: "AMC"},
				{ID: "p2", Title: "GME"},
				{ID: "p3", Title: "BB"},
			},
		},
		comments: map[string][]string{
			"p1": {"one TSLA", "two TSLA", "three TSLA"},
		},
	}

	agg := ticker.NewAggregator(nil)
	c := New(&Config{PostLimit: 2, CommentLimit: 2}, fetcher, zap.NewNop())
	c.Sleep = noSleep

	stats := c.Run(agg)
	assert.Equal(t, 2, stats.Posts)
	assert.Equal(t, 2, stats.Comments)
}

func TestRunSleepsBetweenPosts(t *testing.T) {
	fetcher := &fakeFetcher{
		posts: map[string][]reddit.Post{
			"wallstreetbets": {{ID: "p1", Title: "A1"}, {ID: "p2", Title: "A2"}},
		},
	}

	var slept []time.Duration
	c := New(&Config{Delay: 100 * time.Millisecond}, fetcher, zap.NewNop())
	c.Sleep = func(d time.Duration) { slept = append(slept, d) }

	c.Run(ticker.NewAggregator(nil))
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 100 * time.Millisecond}, slept)
}
