package scraper

import (
	"strings"
	"testing"
	"time"

	"golang.org/x/net/html"

	"github.com/a-bakhtine/UFC-predictor/internal/model"
)

func TestParseXOfY(t *testing.T) {
	tests := []struct {
		in               string
		landed, attempts int
	}{
		{"23 of 57", 23, 57},
		{" 0 of 0 ", 0, 0},
		{"107 of 230", 107, 230},
		{"---", 0, 0},
		{"", 0, 0},
		{"23", 0, 0},
	}
	for _, tc := range tests {
		l, a := parseXOfY(tc.in)
		if l != tc.landed || a != tc.attempts {
			t.Errorf("parseXOfY(%q) = %d/%d, want %d/%d", tc.in, l, a, tc.landed, tc.attempts)
		}
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"3:45", 225},
		{"0:00", 0},
		{"5:00", 300},
		{"12:30", 750},
		{"--", 0},
		{"", 0},
		{"3:99", 0},
	}
	for _, tc := range tests {
		if got := parseClock(tc.in); got != tc.want {
			t.Errorf("parseClock(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseEventDate(t *testing.T) {
	got, err := parseEventDate("Date: November 16, 2024")
	if err != nil {
		t.Fatalf("parseEventDate: %v", err)
	}
	want := time.Date(2024, 11, 16, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if _, err := parseEventDate("Date: sometime soon"); err == nil {
		t.Error("expected error for unparseable date")
	}
}

func TestFightDuration(t *testing.T) {
	tests := []struct {
		round, clock, want int
	}{
		{1, 225, 225},
		{3, 120, 720},
		{5, 300, 1500},
		{0, 100, 0},
	}
	for _, tc := range tests {
		if got := fightDuration(tc.round, tc.clock); got != tc.want {
			t.Errorf("fightDuration(%d, %d) = %d, want %d", tc.round, tc.clock, got, tc.want)
		}
	}
}

func TestIDFromURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"http://www.ufcstats.com/fight-details/abc123", "abc123"},
		{"http://www.ufcstats.com/fighter-details/deadbeef/", "deadbeef"},
		{"plainid", "plainid"},
	}
	for _, tc := range tests {
		if got := idFromURL(tc.in); got != tc.want {
			t.Errorf("idFromURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

const eventRowHTML = `
<table><tbody>
<tr class="b-fight-details__table-row" data-link="http://www.ufcstats.com/fight-details/f100">
  <td class="b-fight-details__table-col"><p>win</p></td>
  <td class="b-fight-details__table-col">
    <a href="http://www.ufcstats.com/fighter-details/aaa1">Alpha Fighter</a>
    <a href="http://www.ufcstats.com/fighter-details/bbb1">Bravo Fighter</a>
  </td>
  <td class="b-fight-details__table-col"><p>1</p><p>0</p></td>
  <td class="b-fight-details__table-col"><p>40</p><p>22</p></td>
  <td class="b-fight-details__table-col"><p>2</p><p>0</p></td>
  <td class="b-fight-details__table-col"><p>1</p><p>0</p></td>
  <td class="b-fight-details__table-col">Lightweight</td>
  <td class="b-fight-details__table-col">KO/TKO</td>
  <td class="b-fight-details__table-col">2</td>
  <td class="b-fight-details__table-col">3:15</td>
</tr>
</tbody></table>`

func TestParseFightRow(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(eventRowHTML))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	row := findFirst(doc, elemClass("tr", "b-fight-details__table-row"))
	if row == nil {
		t.Fatal("fixture row not found")
	}

	eventDate := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	fight, fighters, ok := parseFightRow(row, "UFC 302", eventDate)
	if !ok {
		t.Fatal("parseFightRow rejected a valid row")
	}

	if fight.ID != "f100" {
		t.Errorf("fight id %s, want f100", fight.ID)
	}
	if fight.EventName != "UFC 302" || !fight.EventDate.Equal(eventDate) {
		t.Errorf("event fields wrong: %+v", fight)
	}
	if fight.Fighter1ID != "aaa1" || fight.Fighter2ID != "bbb1" {
		t.Errorf("fighter ids %s/%s", fight.Fighter1ID, fight.Fighter2ID)
	}
	if fight.WinnerID != "aaa1" {
		t.Errorf("winner %s, want aaa1 (listed first with win flag)", fight.WinnerID)
	}
	if fight.WeightClass != "Lightweight" || fight.Method != "KO/TKO" {
		t.Errorf("class/method wrong: %+v", fight)
	}
	if fight.RoundEnded != 2 || fight.TimeEndedSeconds != 195 {
		t.Errorf("round/time wrong: %d / %d", fight.RoundEnded, fight.TimeEndedSeconds)
	}

	if len(fighters) != 2 || fighters[0].Name != "Alpha Fighter" || fighters[1].Name != "Bravo Fighter" {
		t.Errorf("fighters parsed wrong: %+v", fighters)
	}
}

func TestParseFightRowDraw(t *testing.T) {
	drawHTML := strings.Replace(eventRowHTML, "<p>win</p>", "<p>draw</p>", 1)
	doc, _ := html.Parse(strings.NewReader(drawHTML))
	row := findFirst(doc, elemClass("tr", "b-fight-details__table-row"))

	fight, _, ok := parseFightRow(row, "UFC 302", time.Now())
	if !ok {
		t.Fatal("parseFightRow rejected a draw row")
	}
	if fight.WinnerID != "" {
		t.Errorf("draw has winner %s, want empty", fight.WinnerID)
	}
	if fight.Decisive() {
		t.Error("draw must not be decisive")
	}
}

const totalsHTML = `
<table>
  <thead class="b-fight-details__table-head"><tr>
    <th>Fighter</th><th>KD</th><th>Sig. str.</th><th>Sig. str. %</th>
    <th>Total str.</th><th>Td</th><th>Td %</th><th>Sub. att</th>
    <th>Rev.</th><th>Ctrl</th>
  </tr></thead>
  <tbody class="b-fight-details__table-body"><tr>
    <td class="b-fight-details__table-col">
      <p class="b-fight-details__table-text"><a href="http://www.ufcstats.com/fighter-details/bbb1">Bravo</a></p>
      <p class="b-fight-details__table-text"><a href="http://www.ufcstats.com/fighter-details/aaa1">Alpha</a></p>
    </td>
    <td class="b-fight-details__table-col">
      <p class="b-fight-details__table-text">0</p>
      <p class="b-fight-details__table-text">1</p>
    </td>
    <td class="b-fight-details__table-col">
      <p class="b-fight-details__table-text">22 of 61</p>
      <p class="b-fight-details__table-text">40 of 85</p>
    </td>
    <td class="b-fight-details__table-col">
      <p class="b-fight-details__table-text">36%</p>
      <p class="b-fight-details__table-text">47%</p>
    </td>
    <td class="b-fight-details__table-col">
      <p class="b-fight-details__table-text">30 of 70</p>
      <p class="b-fight-details__table-text">55 of 102</p>
    </td>
    <td class="b-fight-details__table-col">
      <p class="b-fight-details__table-text">0 of 2</p>
      <p class="b-fight-details__table-text">3 of 5</p>
    </td>
    <td class="b-fight-details__table-col">
      <p class="b-fight-details__table-text">0%</p>
      <p class="b-fight-details__table-text">60%</p>
    </td>
    <td class="b-fight-details__table-col">
      <p class="b-fight-details__table-text">0</p>
      <p class="b-fight-details__table-text">2</p>
    </td>
    <td class="b-fight-details__table-col">
      <p class="b-fight-details__table-text">0</p>
      <p class="b-fight-details__table-text">1</p>
    </td>
    <td class="b-fight-details__table-col">
      <p class="b-fight-details__table-text">1:30</p>
      <p class="b-fight-details__table-text">6:45</p>
    </td>
  </tr></tbody>
</table>`

func TestParseTotals(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(totalsHTML))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}

	fight := &model.FightRecord{
		ID: "f100", Fighter1ID: "aaa1", Fighter2ID: "bbb1",
		RoundEnded: 2, TimeEndedSeconds: 195,
	}
	lines, err := parseTotals(doc, fight)
	if err != nil {
		t.Fatalf("parseTotals: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 stat lines, got %d", len(lines))
	}

	// The totals table lists Bravo first: attribution follows the table's
	// own link order, not the event-row order.
	byID := map[string]model.StatLine{}
	for _, l := range lines {
		byID[l.FighterID] = l
	}

	alpha, ok := byID["aaa1"]
	if !ok {
		t.Fatal("no stat line for aaa1")
	}
	if alpha.Knockdowns != 1 || alpha.SigStrikesLanded != 40 || alpha.SigStrikesAttempted != 85 {
		t.Errorf("alpha striking wrong: %+v", alpha)
	}
	if alpha.TotalStrikesLanded != 55 || alpha.TakedownsLanded != 3 || alpha.TakedownsAttempted != 5 {
		t.Errorf("alpha grappling wrong: %+v", alpha)
	}
	if alpha.SubAttempts != 2 || alpha.ControlTimeSeconds != 405 {
		t.Errorf("alpha sub/control wrong: %+v", alpha)
	}
	if alpha.TimeFoughtSeconds != 495 {
		t.Errorf("alpha time %d, want 495 (round 2 at 3:15)", alpha.TimeFoughtSeconds)
	}

	bravo := byID["bbb1"]
	if bravo.SigStrikesLanded != 22 || bravo.ControlTimeSeconds != 90 || bravo.Knockdowns != 0 {
		t.Errorf("bravo stats wrong: %+v", bravo)
	}
	if bravo.FightID != "f100" {
		t.Errorf("bravo fight id %s", bravo.FightID)
	}
}

func TestParseTotalsMissingTable(t *testing.T) {
	doc, _ := html.Parse(strings.NewReader("<html><body><p>upcoming bout</p></body></html>"))
	fight := &model.FightRecord{ID: "f200"}
	_, err := parseTotals(doc, fight)
	if err == nil {
		t.Fatal("expected error for page without totals table")
	}
	if !strings.Contains(err.Error(), "f200") {
		t.Errorf("error should name the fight: %v", err)
	}
}
