package livescore

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Vodeneev/livescore/internal/pkg/feed"
	"github.com/Vodeneev/livescore/internal/pkg/models"
	"github.com/Vodeneev/livescore/internal/pkg/performance"
)

const fixture = `{"Success":true,"Value":[
	{"I":11,"LE":"Ligue 1","O1":"Lyon","O2":"Nice","S":1700000000,
	 "SC":{"FS":{"S1":1,"S2":0},"TS":1200,"ST":[{"Value":[{"N":"Tirs","S1":"5","S2":"2"}]}]},
	 "E":[{"G":1,"T":1,"C":1.8},{"G":1,"T":3,"C":3.4},{"G":1,"T":2,"C":4.0}],
	 "AE":[{"G":17,"ME":[{"T":9,"P":2.5,"C":1.7}]}]},
	{"I":12,"LE":"ATP Paris","O1":"Sinner","O2":"Alcaraz","TN":"Terminé","SC":{"FS":{"S1":2,"S2":1}}},
	{"LE":"Cricket. IPL","O1":"X","O2":"Y"}
]}`

type failingSource struct{}

func (failingSource) Matches(ctx context.Context) ([]feed.RawMatch, error) {
	return nil, errors.New("upstream down")
}

func newTestServer(t *testing.T, src feed.Source) (*httptest.Server, *performance.Tracker) {
	t.Helper()
	tracker := &performance.Tracker{}
	h := NewRouter(NewService(src, tracker), Options{Tracker: tracker})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv, tracker
}

func fixtureSource(t *testing.T) feed.Source {
	t.Helper()
	resp, err := feed.Decode([]byte(fixture))
	if err != nil {
		t.Fatal(err)
	}
	return feed.StaticSource(resp.Value)
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, string(body)
}

func TestIndexPage(t *testing.T) {
	srv, tracker := newTestServer(t, fixtureSource(t))

	code, body := get(t, srv.URL+"/")
	if code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", code, body)
	}
	for _, want := range []string{"Lyon", "Sinner", "En cours (20′)", "Terminé", "Lyon gagne", "/match/11", "Cricket", "Pas de cotes disponibles"} {
		if !strings.Contains(body, want) {
			t.Errorf("index page missing %q", want)
		}
	}

	_, body = get(t, srv.URL+"/?status=finished")
	if strings.Contains(body, "Lyon") || !strings.Contains(body, "Sinner") {
		t.Error("status filter not applied")
	}

	if m := tracker.GetMetrics(); m.Normalize.Runs != 2 || m.Normalize.RecordsIn != 6 {
		t.Errorf("normalize metrics = %+v", m.Normalize)
	}
}

func TestMatchPage(t *testing.T) {
	srv, _ := newTestServer(t, fixtureSource(t))

	code, body := get(t, srv.URL+"/match/11")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	for _, want := range []string{"Lyon vs Nice", "Tirs", "Plus de 2.5 @ 1.7", "Explication"} {
		if !strings.Contains(body, want) {
			t.Errorf("details page missing %q", want)
		}
	}

	code, body = get(t, srv.URL+"/match/999")
	if code != http.StatusNotFound || body != "Aucun match trouvé pour l'identifiant 999" {
		t.Errorf("unknown id: %d %q", code, body)
	}

	if code, _ := get(t, srv.URL+"/match/abc"); code != http.StatusNotFound {
		t.Errorf("non numeric id status = %d", code)
	}
}

func TestAPIMatches(t *testing.T) {
	srv, _ := newTestServer(t, fixtureSource(t))

	code, body := get(t, srv.URL+"/api/matches?sport=Tennis")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	var listing Listing
	if err := json.Unmarshal([]byte(body), &listing); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if listing.Total != 1 || listing.Matches[0].Team1 != "Sinner" {
		t.Errorf("listing = %+v", listing)
	}
	if len(listing.Sports) != 3 {
		t.Errorf("Sports = %v", listing.Sports)
	}

	code, body = get(t, srv.URL+"/api/matches/11")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	var details models.MatchDetails
	if err := json.Unmarshal([]byte(body), &details); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if details.Match.PrimaryPrediction != "Lyon gagne" || len(details.Stats) != 1 {
		t.Errorf("details = %+v", details)
	}

	code, body = get(t, srv.URL+"/api/matches/404")
	if code != http.StatusNotFound || !strings.Contains(body, "Aucun match trouvé") {
		t.Errorf("unknown id: %d %s", code, body)
	}

	if code, _ := get(t, srv.URL+"/api/matches/x"); code != http.StatusBadRequest {
		t.Errorf("bad id status = %d", code)
	}
}

func TestFeedFailure(t *testing.T) {
	srv, _ := newTestServer(t, failingSource{})

	code, body := get(t, srv.URL+"/")
	if code != http.StatusBadGateway || !strings.Contains(body, "upstream down") {
		t.Errorf("index: %d %s", code, body)
	}
	if code, _ := get(t, srv.URL+"/api/matches"); code != http.StatusBadGateway {
		t.Errorf("api status = %d", code)
	}
	if code, _ := get(t, srv.URL+"/match/1"); code != http.StatusBadGateway {
		t.Errorf("details status = %d", code)
	}
}

func TestEmptyFeed(t *testing.T) {
	srv, _ := newTestServer(t, feed.StaticSource(nil))

	code, body := get(t, srv.URL+"/api/matches")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	var listing Listing
	if err := json.Unmarshal([]byte(body), &listing); err != nil {
		t.Fatal(err)
	}
	if listing.Total != 0 || len(listing.Matches) != 0 {
		t.Errorf("listing = %+v", listing)
	}
}

func TestServiceEndpoints(t *testing.T) {
	srv, _ := newTestServer(t, feed.StaticSource(nil))
	if code, body := get(t, srv.URL+"/ping"); code != http.StatusOK || body != "pong\n" {
		t.Errorf("/ping = %d %q", code, body)
	}
	if code, _ := get(t, srv.URL+"/health"); code != http.StatusOK {
		t.Errorf("/health = %d", code)
	}
	if code, _ := get(t, srv.URL+"/metrics"); code != http.StatusOK {
		t.Errorf("/metrics = %d", code)
	}
}
