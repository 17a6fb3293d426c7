package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"timechess/internal/server/game"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := DefaultConfig()
	cfg.WebDir = t.TempDir()
	srv := NewServer(cfg, game.NewManager(nil), nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, ts *httptest.Server, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(ts.URL+path, "application/json", &buf)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

func newGame(t *testing.T, ts *httptest.Server) NewGameResponse {
	t.Helper()
	resp := postJSON(t, ts, "/api/new_game", struct{}{})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("new_game status %d", resp.StatusCode)
	}
	return decode[NewGameResponse](t, resp)
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
}

func TestNewGameAndState(t *testing.T) {
	ts := newTestServer(t)
	ng := newGame(t, ts)
	if ng.GameID == "" || ng.Name == "" {
		t.Fatalf("new game response: %+v", ng)
	}
	if ng.View.CurrentPlayer != "white" || len(ng.View.Pieces) != 92 {
		t.Fatalf("initial view: %s %d", ng.View.CurrentPlayer, len(ng.View.Pieces))
	}

	resp := postJSON(t, ts, "/api/state", GameRequest{GameID: ng.GameID})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("state status %d", resp.StatusCode)
	}
	v := decode[game.View](t, resp)
	if v.ID != ng.GameID || !strings.Contains(v.Diagram, "K") {
		t.Fatalf("state view: id=%s", v.ID)
	}
}

func TestSelectAndMove(t *testing.T) {
	ts := newTestServer(t)
	ng := newGame(t, ts)

	resp := postJSON(t, ts, "/api/select", SquareRequest{GameID: ng.GameID, Row: 19, Col: 1})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("select status %d", resp.StatusCode)
	}
	sel := decode[CommandResponse](t, resp)
	if !sel.OK || sel.View.Selection == nil {
		t.Fatalf("select: %+v", sel)
	}

	resp = postJSON(t, ts, "/api/move", SquareRequest{GameID: ng.GameID, Row: 17, Col: 1})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("move status %d", resp.StatusCode)
	}
	mv := decode[CommandResponse](t, resp)
	if mv.View.CurrentPlayer != "black" {
		t.Fatalf("after move: %s", mv.View.CurrentPlayer)
	}
}

func TestErrorStatuses(t *testing.T) {
	ts := newTestServer(t)
	ng := newGame(t, ts)

	cases := []struct {
		name   string
		path   string
		body   any
		status int
	}{
		{"unknown game", "/api/state", GameRequest{GameID: "missing"}, http.StatusNotFound},
		{"illegal select", "/api/select", SquareRequest{GameID: ng.GameID, Row: 2, Col: 5}, http.StatusConflict},
		{"illegal exchange", "/api/exchange", SwapRequest{GameID: ng.GameID, FromRow: 10, FromCol: 10, Row: 19, Col: 2}, http.StatusConflict},
		{"move without selection", "/api/move", SquareRequest{GameID: ng.GameID, Row: 10, Col: 10}, http.StatusConflict},
		{"unknown endpoint", "/api/nope", GameRequest{GameID: ng.GameID}, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postJSON(t, ts, tc.path, tc.body)
			if resp.StatusCode != tc.status {
				t.Fatalf("status: got=%d want=%d", resp.StatusCode, tc.status)
			}
		})
	}

	t.Run("bad json", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/api/state", "application/json", strings.NewReader("{"))
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status %d", resp.StatusCode)
		}
	})
	t.Run("wrong method", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/state")
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusMethodNotAllowed {
			t.Fatalf("status %d", resp.StatusCode)
		}
	})
}

func TestRootRedirectsToWeb(t *testing.T) {
	ts := newTestServer(t)
	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := client.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/web/" {
		t.Fatalf("got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}
}

func TestEventsStreamPushesViews(t *testing.T) {
	ts := newTestServer(t)
	ng := newGame(t, ts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/events?game_id=" + ng.GameID
	c, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.CloseNow()

	var first game.View
	if err := wsjson.Read(ctx, c, &first); err != nil {
		t.Fatalf("read initial view: %v", err)
	}
	if first.ID != ng.GameID || first.Turn != 1 {
		t.Fatalf("initial view: %+v", first)
	}

	postJSON(t, ts, "/api/select", SquareRequest{GameID: ng.GameID, Row: 19, Col: 1})
	postJSON(t, ts, "/api/move", SquareRequest{GameID: ng.GameID, Row: 17, Col: 1})

	// 推送只保证最新状态，中间的快照可能被合并
	for {
		var v game.View
		if err := wsjson.Read(ctx, c, &v); err != nil {
			t.Fatalf("read pushed view: %v", err)
		}
		if v.Turn == 2 {
			break
		}
	}
	c.Close(websocket.StatusNormalClosure, "")
}

func TestEventsUnknownGame(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/events?game_id=missing")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status %d", resp.StatusCode)
	}
}
