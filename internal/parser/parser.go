// Package parser normalizes RSS, Atom and JSON Feed documents into a
// uniform entry list.
package parser

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
)

// ParseError reports a document the universal parser could not make sense
// of at all.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "parse feed: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type Entry struct {
	GUID  string
	Title string
	URL   string
}

type Feed struct {
	Title   string
	Entries []Entry
	// Skipped counts items dropped because no stable identity could be
	// derived for them.
	Skipped int
}

type Parser struct {
	parser   *gofeed.Parser
	sanitize *bluemonday.Policy
}

func New() *Parser {
	return &Parser{
		parser:   gofeed.NewParser(),
		sanitize: bluemonday.StrictPolicy(),
	}
}

// Parse normalizes the document. Entries keep their document order; items
// without any identity source are counted in Skipped rather than failing
// the whole document.
func (p *Parser) Parse(body []byte) (Feed, error) {
	parsed, err := p.parser.Parse(bytes.NewReader(body))
	if err != nil {
		return Feed{}, &ParseError{Err: err}
	}

	feed := Feed{
		Title: p.cleanText(parsed.Title),
	}

	for _, item := range parsed.Items {
		if item == nil {
			feed.Skipped++
			continue
		}
		title := p.cleanText(item.Title)
		link := strings.TrimSpace(item.Link)
		guid := guidFor(item, title, link)
		if guid == "" {
			feed.Skipped++
			continue
		}
		feed.Entries = append(feed.Entries, Entry{
			GUID:  guid,
			Title: title,
			URL:   link,
		})
	}

	return feed, nil
}

// guidFor resolves an item identity: the feed-provided GUID when present,
// the link otherwise, and a content digest as the last resort.
func guidFor(item *gofeed.Item, title, link string) string {
	if guid := strings.TrimSpace(item.GUID); guid != "" {
		return guid
	}
	if link != "" {
		return link
	}
	if title == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(title + "\n" + link))
	return hex.EncodeToString(sum[:])
}

func (p *Parser) cleanText(s string) string {
	return strings.TrimSpace(p.sanitize.Sanitize(s))
}
