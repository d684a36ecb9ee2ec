package connector

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"github.com/keebindex/keebindex/app/catalog"
	"github.com/keebindex/keebindex/app/normalize"
)

// liveReplyThreshold is the engagement level at which an untagged thread is
// assumed to be a running group buy. Best-effort heuristic with no ground
// truth; do not strengthen its semantics.
const liveReplyThreshold = 100

// GeekHack fetches one forum board listing page and parses its topic rows.
type GeekHack struct {
	boardURL string
	client   *resty.Client
	norm     *normalize.Normalizer
}

func NewGeekHack(boardURL string, client *resty.Client, norm *normalize.Normalizer) *GeekHack {
	return &GeekHack{
		boardURL: boardURL,
		client:   client,
		norm:     norm,
	}
}

func (g *GeekHack) Name() string {
	return "geekhack"
}

func (g *GeekHack) Kind() Kind {
	return KindListing
}

func (g *GeekHack) Fetch(ctx context.Context) ([]catalog.Item, error) {
	resp, err := g.client.R().
		SetContext(ctx).
		Get(g.boardURL)
	if err != nil {
		return nil, &SourceError{Source: g.Name(), Err: fmt.Errorf("failed to fetch board: %w", err)}
	}
	if resp.StatusCode() != 200 {
		return nil, &SourceError{Source: g.Name(), Err: fmt.Errorf("HTTP %d for %s", resp.StatusCode(), g.boardURL)}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, &SourceError{Source: g.Name(), Err: fmt.Errorf("failed to parse board HTML: %w", err)}
	}

	base, err := url.Parse(g.boardURL)
	if err != nil {
		return nil, &SourceError{Source: g.Name(), Err: fmt.Errorf("invalid board URL: %w", err)}
	}

	var items []catalog.Item
	doc.Find("td.subject").Each(func(_ int, cell *goquery.Selection) {
		link := cell.Find("a").First()
		title := strings.TrimSpace(link.Text())
		href, _ := link.Attr("href")
		if title == "" || href == "" {
			return
		}

		threadURL := href
		if parsed, err := url.Parse(href); err == nil {
			threadURL = base.ResolveReference(parsed).String()
		}

		author := strings.TrimSpace(cell.Find("p a").First().Text())
		replies := parseReplyCount(cell.Parent().Find("td.stats").Text())

		category, status := ClassifyThread(title, replies)

		item, ok := g.norm.Thread(normalize.ThreadCandidate{
			Title:    title,
			URL:      threadURL,
			TopicID:  topicID(threadURL),
			Author:   author,
			Replies:  replies,
			Category: category,
			Status:   status,
		})
		if !ok {
			return
		}
		items = append(items, item)
	})

	slog.Debug("Board fetch complete", "source", g.Name(), "items", len(items))
	return items, nil
}

// ClassifyThread applies the ordered classification rules for a board row.
// Explicit bracket tags outrank keyword heuristics, which outrank the
// reply-count guess.
func ClassifyThread(title string, replies int) (catalog.Category, string) {
	lower := strings.ToLower(title)

	switch {
	case strings.Contains(lower, "[gb]"):
		return catalog.CategoryGroupBuy, catalog.StatusLive
	case strings.Contains(lower, "[ic]"):
		return catalog.CategoryInterestCheck, catalog.StatusGatheringInterest
	case strings.Contains(lower, "group buy"):
		return catalog.CategoryGroupBuy, catalog.StatusLive
	case strings.Contains(lower, "interest check"):
		return catalog.CategoryInterestCheck, catalog.StatusGatheringInterest
	case replies >= liveReplyThreshold:
		// High engagement with no tag: assume a live group buy.
		return catalog.CategoryGroupBuy, catalog.StatusLive
	}

	return catalog.CategoryInterestCheck, catalog.StatusGatheringInterest
}

var replyCountRe = regexp.MustCompile(`([\d,]+)\s*Replies`)
var leadingNumberRe = regexp.MustCompile(`[\d,]+`)

// parseReplyCount extracts a reply count from free-text stats. A missing or
// unparseable number yields 0, never a failure.
func parseReplyCount(stats string) int {
	match := replyCountRe.FindStringSubmatch(stats)
	var digits string
	if match != nil {
		digits = match[1]
	} else {
		digits = leadingNumberRe.FindString(stats)
	}
	if digits == "" {
		return 0
	}

	n, err := strconv.Atoi(strings.ReplaceAll(digits, ",", ""))
	if err != nil {
		return 0
	}
	return n
}

var topicIDRe = regexp.MustCompile(`topic[=/](\d+)`)

func topicID(threadURL string) string {
	match := topicIDRe.FindStringSubmatch(threadURL)
	if match == nil {
		return ""
	}
	return match[1]
}
