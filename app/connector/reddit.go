package connector

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/keebindex/keebindex/app/catalog"
	"github.com/keebindex/keebindex/app/normalize"
)

// feedPageSize bounds the number of posts fetched per feed request.
const feedPageSize = 100

// Reddit fetches recent posts from one or more listing feeds, keeping only
// posts whose title carries a group-buy/interest-check bracket tag. Upvote
// and comment counts are carried through for display only.
type Reddit struct {
	feeds  []string
	client *resty.Client
	norm   *normalize.Normalizer
	delay  time.Duration
}

func NewReddit(feeds []string, client *resty.Client, norm *normalize.Normalizer, delay time.Duration) *Reddit {
	return &Reddit{
		feeds:  feeds,
		client: client,
		norm:   norm,
		delay:  delay,
	}
}

func (r *Reddit) Name() string {
	return "reddit"
}

func (r *Reddit) Kind() Kind {
	return KindFeed
}

type redditPost struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Subreddit   string  `json:"subreddit"`
	Permalink   string  `json:"permalink"`
	SelfText    string  `json:"selftext"`
	Ups         int     `json:"ups"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

var bracketTagRe = regexp.MustCompile(`(?i)\[\s*(gb|ic|group\s*buy|interest\s*check)\s*\]`)

func (r *Reddit) Fetch(ctx context.Context) ([]catalog.Item, error) {
	var items []catalog.Item

	for i, feed := range r.feeds {
		if i > 0 {
			Sleep(ctx, r.delay)
		}
		if err := ctx.Err(); err != nil {
			return nil, &SourceError{Source: r.Name(), Err: err}
		}

		posts, err := r.fetchFeed(ctx, feed)
		if err != nil {
			return nil, &SourceError{Source: r.Name(), Err: err}
		}

		for _, post := range posts {
			category, ok := classifyPost(post.Title)
			if !ok {
				continue
			}

			item, ok := r.norm.Post(normalize.PostCandidate{
				Title:     post.Title,
				URL:       postURL(post),
				PostID:    post.ID,
				Author:    post.Author,
				Subreddit: post.Subreddit,
				Body:      post.SelfText,
				Upvotes:   post.Ups,
				Comments:  post.NumComments,
				Category:  category,
			})
			if !ok {
				continue
			}
			items = append(items, item)
		}
	}

	slog.Debug("Feed fetch complete", "source", r.Name(), "feeds", len(r.feeds), "items", len(items))
	return items, nil
}

func (r *Reddit) fetchFeed(ctx context.Context, feed string) ([]redditPost, error) {
	resp, err := r.client.R().
		SetContext(ctx).
		SetQueryParam("limit", strconv.Itoa(feedPageSize)).
		Get(feed)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed %s: %w", feed, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode(), feed)
	}

	var listing redditListing
	if err := json.Unmarshal(resp.Body(), &listing); err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", feed, err)
	}

	posts := make([]redditPost, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		posts = append(posts, child.Data)
	}
	return posts, nil
}

// classifyPost matches the bracket tag pattern and maps it onto a
// promotional category. Posts without a tag are not listings.
func classifyPost(title string) (catalog.Category, bool) {
	match := bracketTagRe.FindStringSubmatch(title)
	if match == nil {
		return "", false
	}

	tag := strings.ToLower(strings.Join(strings.Fields(match[1]), " "))
	if tag == "gb" || tag == "group buy" {
		return catalog.CategoryGroupBuy, true
	}
	return catalog.CategoryInterestCheck, true
}

func postURL(post redditPost) string {
	if post.Permalink == "" {
		return ""
	}
	return "https://www.reddit.com" + post.Permalink
}
