package spectate

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

type fakeScores struct {
	records []storage.GameRecord
	err     error
	limit   int
}

func (f *fakeScores) GameByID(id string) (*storage.GameRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, rec := range f.records {
		if rec.ID == id {
			return &rec, nil
		}
	}
	return nil, nil
}

func (f *fakeScores) TopScores(limit int) ([]storage.GameRecord, error) {
	f.limit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.records[:min(limit, len(f.records))], nil
}

func newTestServer(t *testing.T, scores ScoreSource) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub()
	srv := httptest.NewServer(NewServer(hub, scores, nil).Handler())
	t.Cleanup(srv.Close)
	return hub, srv
}

func getJSON(t *testing.T, url string, wantStatus int, v any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s status = %d, expected %d", url, resp.StatusCode, wantStatus)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decoding %s: %v", url, err)
		}
	}
}

func TestListGames(t *testing.T) {
	hub, srv := newTestServer(t, nil)
	hub.Publish("g1", "alice", snapWithScore(4, 500))

	var games []GameInfo
	getJSON(t, srv.URL+"/api/games", http.StatusOK, &games)

	if len(games) != 1 || games[0].ID != "g1" || games[0].Score != 500 {
		t.Errorf("games = %+v", games)
	}
	if games[0].Status != snake.StatusRunning {
		t.Errorf("status = %v, expected running", games[0].Status)
	}
}

func TestGetGame(t *testing.T) {
	hub, srv := newTestServer(t, nil)
	hub.Publish("g1", "alice", snapWithScore(7, 250))

	var snap snake.Snapshot
	getJSON(t, srv.URL+"/api/games/g1", http.StatusOK, &snap)
	if snap.Tick != 7 || snap.Score != 250 {
		t.Errorf("snapshot = %+v", snap)
	}

	getJSON(t, srv.URL+"/api/games/missing", http.StatusNotFound, nil)
}

func TestGetFinishedGame(t *testing.T) {
	scores := &fakeScores{records: []storage.GameRecord{
		{ID: "done", Player: "alice", Score: 750, Length: 3, EndReason: "self-collision", Duration: 3 * time.Second},
	}}
	hub, srv := newTestServer(t, scores)

	hub.Publish("done", "alice", snapWithScore(9, 750))
	var snap snake.Snapshot
	getJSON(t, srv.URL+"/api/games/done", http.StatusOK, &snap)
	if snap.Tick != 9 {
		t.Errorf("live game served tick %d, expected 9", snap.Tick)
	}

	hub.Finish("done")
	var finished FinishedGame
	getJSON(t, srv.URL+"/api/games/done", http.StatusOK, &finished)
	if finished.Status != snake.StatusEnded {
		t.Errorf("status = %v, expected ended", finished.Status)
	}
	if finished.Result.Player != "alice" || finished.Result.Score != 750 || finished.Result.DurationMs != 3000 {
		t.Errorf("result = %+v", finished.Result)
	}
	if finished.Result.Rank != 0 {
		t.Errorf("rank = %d on a single game, expected none", finished.Result.Rank)
	}

	getJSON(t, srv.URL+"/api/games/never-played", http.StatusNotFound, nil)
}

func TestGetGameStoreError(t *testing.T) {
	_, srv := newTestServer(t, &fakeScores{err: errors.New("disk gone")})

	getJSON(t, srv.URL+"/api/games/any", http.StatusInternalServerError, nil)
}

func TestWriteJSONLogsEncodeFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	s := NewServer(NewHub(), nil, logger)

	rec := httptest.NewRecorder()
	s.writeJSON(rec, http.StatusOK, math.Inf(1))

	if !strings.Contains(buf.String(), "writing response") {
		t.Errorf("encode failure not logged, log = %q", buf.String())
	}
}

func TestScores(t *testing.T) {
	scores := &fakeScores{records: []storage.GameRecord{
		{ID: "a", Player: "alice", Score: 1500, EndReason: "wall-collision", Duration: 2 * time.Second},
		{ID: "b", Player: "bob", Score: 750, EndReason: "self-collision"},
	}}
	_, srv := newTestServer(t, scores)

	var entries []ScoreEntry
	getJSON(t, srv.URL+"/api/scores?limit=1", http.StatusOK, &entries)

	if scores.limit != 1 {
		t.Errorf("TopScores limit = %d, expected 1", scores.limit)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, expected 1", len(entries))
	}
	e := entries[0]
	if e.Rank != 1 || e.Player != "alice" || e.Score != 1500 || e.DurationMs != 2000 {
		t.Errorf("entry = %+v", e)
	}

	getJSON(t, srv.URL+"/api/scores", http.StatusOK, &entries)
	if scores.limit != defaultScoreLim {
		t.Errorf("default limit = %d, expected %d", scores.limit, defaultScoreLim)
	}

	getJSON(t, srv.URL+"/api/scores?limit=5000", http.StatusOK, &entries)
	if scores.limit != maxScoreLim {
		t.Errorf("limit = %d, expected cap %d", scores.limit, maxScoreLim)
	}
}

func TestScoresErrors(t *testing.T) {
	_, srv := newTestServer(t, &fakeScores{err: errors.New("disk gone")})
	getJSON(t, srv.URL+"/api/scores?limit=abc", http.StatusBadRequest, nil)
	getJSON(t, srv.URL+"/api/scores?limit=-1", http.StatusBadRequest, nil)
	getJSON(t, srv.URL+"/api/scores", http.StatusInternalServerError, nil)

	_, bare := newTestServer(t, nil)
	getJSON(t, bare.URL+"/api/scores", http.StatusServiceUnavailable, nil)
}

func TestMethodNotAllowed(t *testing.T) {
	_, srv := newTestServer(t, nil)

	resp, err := http.Post(srv.URL+"/api/games", "application/json", strings.NewReader("{}"))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, expected 405", resp.StatusCode)
	}
}

func wsURL(srv *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + path
}

func TestStream(t *testing.T) {
	hub, srv := newTestServer(t, nil)
	hub.Publish("g1", "alice", snapWithScore(1, 0))

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/games/g1"), nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var snap snake.Snapshot
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatalf("reading first snapshot: %v", err)
	}
	if snap.Tick != 1 {
		t.Errorf("first tick = %d, expected 1", snap.Tick)
	}

	hub.Publish("g1", "alice", snapWithScore(2, 1000))
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatalf("reading update: %v", err)
	}
	if snap.Tick != 2 || snap.Score != 1000 {
		t.Errorf("update = %+v", snap)
	}

	hub.Finish("g1")
	_, _, err = conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Errorf("read after finish = %v, expected a normal close", err)
	}
}

func TestStreamUnknownGame(t *testing.T) {
	_, srv := newTestServer(t, nil)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/games/missing"), nil)
	if err == nil {
		t.Fatal("Dial() succeeded for an unknown game")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Errorf("response = %v, expected 404", resp)
	}
}

func TestStreamClientLeaves(t *testing.T) {
	hub, srv := newTestServer(t, nil)
	hub.Publish("g1", "alice", snapWithScore(1, 0))

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/games/g1"), nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	var snap snake.Snapshot
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatalf("reading first snapshot: %v", err)
	}
	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Subscribers("g1") != 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscription not released after the client disconnected")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
