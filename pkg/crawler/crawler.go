package crawler

import (
	"time"

	"go.uber.org/zap"

	"stockpulse/pkg/reddit"
	"stockpulse/pkg/ticker"
)

// Fetcher is the external feed boundary. *reddit.Client satisfies it; tests
// substitute synthetic fixtures.
type Fetcher interface {
	HotPosts(subreddit string, limit int) ([]reddit.Post, error)
	TopComments(postID string, limit int) ([]string, error)
}

// Sink receives every text fragment the crawl produces.
type Sink interface {
	Ingest(ticker.Fragment)
}

type Config struct {
	Subreddits   []string
	PostLimit    int
	CommentLimit int
	Delay        time.Duration
}

// Stats summarizes one crawl run.
type Stats struct {
	Posts    int
	Comments int
	Skipped  int
}

// Crawler drives the pipeline: one subreddit at a time, one post at a time,
// one comment at a time. Per-item failures are logged and skipped; nothing
// here aborts the run.
type Crawler struct {
	Config  *Config
	Fetcher Fetcher
	Logger  *zap.Logger

	// Sleep is the wait strategy between post-level fetches. Overridable so
	// tests run without real delays.
	Sleep func(time.Duration)
}

func New(config *Config, fetcher Fetcher, logger *zap.Logger) *Crawler {
	if len(config.Subreddits) == 0 {
		config.Subreddits = []string{"wallstreetbets"}
	}
	if config.PostLimit == 0 {
		config.PostLimit = 25
	}
	if config.CommentLimit == 0 {
		config.CommentLimit = 10
	}
	if config.Delay == 0 {
		config.Delay = 100 * time.Millisecond
	}

	return &Crawler{
		Config:  config,
		Fetcher: fetcher,
		Logger:  logger,
		Sleep:   time.Sleep,
	}
}

// Run walks every configured subreddit and feeds each title, body and comment
// fragment into sink.
func (c *Crawler) Run(sink Sink) Stats {
	var stats Stats

	for _, subreddit := range c.Config.Subreddits {
		c.Logger.Info("crawling subreddit", zap.String("subreddit", subreddit))

		posts, err := c.Fetcher.HotPosts(subreddit, c.Config.PostLimit)
		if err != nil {
			c.Logger.Warn("skipping subreddit",
				zap.String("subreddit", subreddit), zap.Error(err))
			stats.Skipped++
			continue
		}

		for _, post := range posts {
			sink.Ingest(ticker.Fragment{Text: post.Title, PostID: post.ID, Kind: ticker.KindTitle})
			sink.Ingest(ticker.Fragment{Text: post.Body, PostID: post.ID, Kind: ticker.KindBody})
			stats.Posts++

			comments, err := c.Fetcher.TopComments(post.ID, c.Config.CommentLimit)
			if err != nil {
				// Title and body fragments already counted; only the
				// comments are lost.
				c.Logger.Warn("skipping comments",
					zap.String("post", post.ID), zap.Error(err))
				stats.Skipped++
			}
			for _, comment := range comments {
				sink.Ingest(ticker.Fragment{Text: comment, PostID: post.ID, Kind: ticker.KindComment})
				stats.Comments++
			}

			c.Sleep(c.Config.Delay)
		}
	}

	return stats
}
