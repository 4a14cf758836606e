// Package scraper ingests completed-event fight records and per-fighter
// stat lines from ufcstats.com. Parsed output feeds the storage layer
// unchanged; the scraper owns no aggregation logic.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"

	"github.com/a-bakhtine/UFC-predictor/internal/model"
)

const userAgent = "Mozilla/5.0 (compatible; ufcpred/1.0)"

// Client fetches and parses ufcstats.com pages with a polite request delay.
type Client struct {
	BaseURL string
	Delay   time.Duration

	http *http.Client
}

// New returns a Client for the given base URL.
func New(baseURL string, delay time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Delay:   delay,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// EventData is everything parsed from one event page and its fight pages.
type EventData struct {
	Fighters  []model.Fighter
	Fights    []model.FightRecord
	StatLines []model.StatLine
}

// fetch GETs a URL and parses the response body as HTML.
func (c *Client) fetch(ctx context.Context, url string) (*html.Node, error) {
	if c.Delay > 0 {
		select {
		case <-time.After(c.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return doc, nil
}

// CompletedEventURLs returns event-details URLs from the completed-events
// listing, most recent first. limit <= 0 means all.
func (c *Client) CompletedEventURLs(ctx context.Context, limit int) ([]string, error) {
	doc, err := c.fetch(ctx, c.BaseURL+"/statistics/events/completed?page=all")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var urls []string
	for _, a := range findAll(doc, elem("a")) {
		href := attr(a, "href")
		if !strings.Contains(href, "event-details") {
			continue
		}
		if _, ok := seen[href]; ok {
			continue
		}
		seen[href] = struct{}{}
		urls = append(urls, href)
	}

	if limit > 0 && len(urls) > limit {
		urls = urls[:limit]
	}
	log.Info().Int("events", len(urls)).Msg("found completed event URLs")
	return urls, nil
}

// ScrapeEvent parses one event page and every fight-details page under it.
// Fights whose stats pages cannot be parsed (typically upcoming bouts) are
// skipped with a warning and contribute nothing.
func (c *Client) ScrapeEvent(ctx context.Context, eventURL string) (*EventData, error) {
	doc, err := c.fetch(ctx, eventURL)
	if err != nil {
		return nil, err
	}

	eventName := ""
	if h := findFirst(doc, elemClass("span", "b-content__title-highlight")); h != nil {
		eventName = text(h)
	}

	var eventDate time.Time
	for _, li := range findAll(doc, elemClass("li", "b-list__box-list-item")) {
		t := text(li)
		if strings.HasPrefix(t, "Date:") {
			eventDate, err = parseEventDate(t)
			if err != nil {
				return nil, fmt.Errorf("event %s: %w", eventURL, err)
			}
			break
		}
	}
	if eventDate.IsZero() {
		return nil, fmt.Errorf("event %s: no date found", eventURL)
	}

	data := &EventData{}
	seenFighters := make(map[string]struct{})

	for _, row := range findAll(doc, elemClass("tr", "b-fight-details__table-row")) {
		fight, fighters, ok := parseFightRow(row, eventName, eventDate)
		if !ok {
			continue
		}

		lines, err := c.scrapeFightStats(ctx, attr(row, "data-link"), fight)
		if err != nil {
			log.Warn().Str("fight", fight.ID).Err(err).Msg("skipping fight without stats")
			continue
		}

		data.Fights = append(data.Fights, *fight)
		data.StatLines = append(data.StatLines, lines...)
		for _, f := range fighters {
			if _, ok := seenFighters[f.ID]; !ok {
				seenFighters[f.ID] = struct{}{}
				data.Fighters = append(data.Fighters, f)
			}
		}
	}

	log.Info().
		Str("event", eventName).
		Int("fights", len(data.Fights)).
		Int("fighters", len(data.Fighters)).
		Msg("scraped event")
	return data, nil
}

// parseFightRow extracts a FightRecord and the two fighters from one event
// table row. Returns ok=false for rows that are not complete fight entries.
func parseFightRow(row *html.Node, eventName string, eventDate time.Time) (*model.FightRecord, []model.Fighter, bool) {
	fightURL := attr(row, "data-link")
	if !strings.Contains(fightURL, "fight-details") {
		return nil, nil, false
	}

	var fighters []model.Fighter
	for _, a := range findAll(row, elem("a")) {
		href := attr(a, "href")
		if strings.Contains(href, "fighter-details") {
			fighters = append(fighters, model.Fighter{ID: idFromURL(href), Name: text(a)})
		}
	}
	if len(fighters) != 2 || fighters[0].ID == fighters[1].ID {
		return nil, nil, false
	}

	cells := findAll(row, elemClass("td", "b-fight-details__table-col"))
	if len(cells) < 10 {
		return nil, nil, false
	}

	// Column layout of the event fights table: 0 W/L flag, 1 fighters,
	// 2 KD, 3 STR, 4 TD, 5 SUB, 6 weight class, 7 method, 8 round, 9 time.
	fight := &model.FightRecord{
		ID:               idFromURL(fightURL),
		EventName:        eventName,
		EventDate:        eventDate,
		WeightClass:      text(cells[6]),
		Fighter1ID:       fighters[0].ID,
		Fighter2ID:       fighters[1].ID,
		Method:           text(cells[7]),
		RoundEnded:       parseInt(text(cells[8])),
		TimeEndedSeconds: parseClock(text(cells[9])),
	}

	// ufcstats lists the winner first and marks the row's flag cell "win";
	// draws and no-contests carry other flags and leave WinnerID empty.
	if strings.EqualFold(text(cells[0]), "win") {
		fight.WinnerID = fighters[0].ID
	}
	return fight, fighters, true
}

// scrapeFightStats fetches a fight-details page and extracts the two stat
// lines from its totals table.
func (c *Client) scrapeFightStats(ctx context.Context, fightURL string, fight *model.FightRecord) ([]model.StatLine, error) {
	doc, err := c.fetch(ctx, fightURL)
	if err != nil {
		return nil, err
	}
	return parseTotals(doc, fight)
}

// parseTotals locates the totals table by its header labels and builds one
// StatLine per fighter. The header is mapped by label rather than position
// so ufcstats column reshuffles do not silently misattribute stats.
func parseTotals(doc *html.Node, fight *model.FightRecord) ([]model.StatLine, error) {
	duration := fightDuration(fight.RoundEnded, fight.TimeEndedSeconds)

	for _, tbl := range findAll(doc, elem("table")) {
		head := findFirst(tbl, elemClass("thead", "b-fight-details__table-head"))
		body := findFirst(tbl, elemClass("tbody", "b-fight-details__table-body"))
		if head == nil || body == nil {
			continue
		}

		var labels []string
		for _, th := range findAll(head, elem("th")) {
			labels = append(labels, strings.ToLower(text(th)))
		}
		idx := mapTotalsColumns(labels)
		if idx == nil {
			continue
		}

		row := findFirst(body, elem("tr"))
		if row == nil {
			continue
		}
		cells := findAll(row, elemClass("td", "b-fight-details__table-col"))
		if len(cells) == 0 {
			continue
		}

		// Fighter order within the table comes from the links in the first
		// cell; it need not match the event-row order.
		var order []string
		for _, a := range findAll(cells[0], elem("a")) {
			if strings.Contains(attr(a, "href"), "fighter-details") {
				order = append(order, idFromURL(attr(a, "href")))
			}
		}
		if len(order) != 2 {
			return nil, fmt.Errorf("fight %s: totals table has %d fighter links", fight.ID, len(order))
		}

		lines := make([]model.StatLine, 2)
		for i, fighterID := range order {
			cell := func(col int) string {
				if col >= len(cells) {
					return ""
				}
				ps := findAll(cells[col], elemClass("p", "b-fight-details__table-text"))
				if i >= len(ps) {
					return ""
				}
				return text(ps[i])
			}

			sigL, sigA := parseXOfY(cell(idx["sig"]))
			totL, totA := parseXOfY(cell(idx["total"]))
			tdL, tdA := parseXOfY(cell(idx["td"]))
			lines[i] = model.StatLine{
				FightID:               fight.ID,
				FighterID:             fighterID,
				Knockdowns:            parseInt(cell(idx["kd"])),
				SigStrikesLanded:      sigL,
				SigStrikesAttempted:   sigA,
				TotalStrikesLanded:    totL,
				TotalStrikesAttempted: totA,
				TakedownsLanded:       tdL,
				TakedownsAttempted:    tdA,
				SubAttempts:           parseInt(cell(idx["sub"])),
				ControlTimeSeconds:    parseClock(cell(idx["ctrl"])),
				TimeFoughtSeconds:     duration,
			}
		}
		return lines, nil
	}
	return nil, fmt.Errorf("fight %s: no totals table found", fight.ID)
}

// mapTotalsColumns maps header labels to column indices. Returns nil unless
// every required column is present (distinguishes the totals table from the
// per-round and significant-strikes tables on the same page).
func mapTotalsColumns(labels []string) map[string]int {
	idx := make(map[string]int)
	for i, lab := range labels {
		switch {
		case strings.HasPrefix(lab, "kd"):
			idx["kd"] = i
		case strings.HasPrefix(lab, "sig. str.") && !strings.Contains(lab, "%"):
			idx["sig"] = i
		case strings.HasPrefix(lab, "total str."):
			idx["total"] = i
		case lab == "td" || (strings.HasPrefix(lab, "td") && !strings.Contains(lab, "%")):
			idx["td"] = i
		case strings.HasPrefix(lab, "sub. att"):
			idx["sub"] = i
		case strings.HasPrefix(lab, "ctrl"):
			idx["ctrl"] = i
		}
	}
	for _, key := range []string{"kd", "sig", "total", "td", "sub", "ctrl"} {
		if _, ok := idx[key]; !ok {
			return nil
		}
	}
	return idx
}
