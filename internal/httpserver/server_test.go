package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordscramble/internal/daily"
	"github.com/robalobadob/wordscramble/internal/dictionary"
	"github.com/robalobadob/wordscramble/internal/game"
	"github.com/robalobadob/wordscramble/internal/store"
)

type listSource []string

func (l listSource) Load() ([]string, error) { return l, nil }

type failingDict struct{}

func (failingDict) IsValid(context.Context, string, string) (bool, error) {
	return false, errors.New("backend down")
}

var fixedNow = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, dict game.Dictionary, source game.WordSource) (*Server, store.Store) {
	t.Helper()
	st := store.NewMemoryStore()
	srv := New(st, dict, source, Options{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
		DailySalt: "salt",
		Now:       func() time.Time { return fixedNow },
	})
	return srv, st
}

func defaultServer(t *testing.T) *Server {
	srv, _ := newTestServer(t,
		dictionary.NewSet(game.Language, []string{"lone", "keel", "toes", "bread"}),
		listSource{"skeleton"})
	return srv
}

func do(t *testing.T, srv *Server, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func startRound(t *testing.T, srv *Server, body string) newRoundRes {
	t.Helper()
	rec := do(t, srv, http.MethodPost, "/round/new", "", body)
	require.Equal(t, http.StatusOK, rec.Code)
	var res newRoundRes
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	require.NotEmpty(t, res.Token)
	return res
}

func decodeVerdict(t *testing.T, rec *httptest.ResponseRecorder) verdict {
	t.Helper()
	var v verdict
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	rec := do(t, defaultServer(t), http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestWordStats(t *testing.T) {
	rec := do(t, defaultServer(t), http.MethodGet, "/debug/words", "", "")
	assert.JSONEq(t, `{"rootWords":1}`, rec.Body.String())
}

func TestNewRound(t *testing.T) {
	srv := defaultServer(t)
	rec := do(t, srv, http.MethodPost, "/round/new", "", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res newRoundRes
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, "skeleton", res.RootWord)
	assert.NotEmpty(t, res.RoundID)

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == roundCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, res.Token, cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestNewRound_EmptySourceFallsBack(t *testing.T) {
	srv, _ := newTestServer(t, dictionary.NewSet(game.Language, nil), listSource{})
	res := startRound(t, srv, `{}`)
	assert.Equal(t, game.FallbackRootWord, res.RootWord)
}

func TestNewRound_Daily(t *testing.T) {
	source := listSource{"chestnut", "dinosaur", "envelope", "fountain"}
	srv, _ := newTestServer(t, dictionary.NewSet(game.Language, nil), source)

	a := startRound(t, srv, `{"mode":"daily"}`)
	b := startRound(t, srv, `{"mode":"daily"}`)
	assert.Equal(t, daily.RootWord(fixedNow, "salt", source), a.RootWord)
	assert.Equal(t, a.RootWord, b.RootWord)
	assert.NotEqual(t, a.RoundID, b.RoundID)

	rec := do(t, srv, http.MethodGet, "/round", a.Token, "")
	var state roundRes
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&state))
	assert.True(t, state.Daily)
}

func TestNewRound_ReplacesPreviousRound(t *testing.T) {
	srv, st := newTestServer(t, dictionary.NewSet(game.Language, nil), listSource{"skeleton"})
	first := startRound(t, srv, `{}`)

	rec := do(t, srv, http.MethodPost, "/round/new", first.Token, `{}`)
	require.Equal(t, http.StatusOK, rec.Code)

	_, err := st.Get(context.Background(), first.RoundID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	rec = do(t, srv, http.MethodGet, "/round", first.Token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoundRequiresToken(t *testing.T) {
	srv := defaultServer(t)

	rec := do(t, srv, http.MethodGet, "/round", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, srv, http.MethodPost, "/round/word", "garbage", `{"word":"lone"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// A token from another server instance: valid signature, unknown round.
	other, _ := newTestServer(t, dictionary.NewSet(game.Language, nil), listSource{"skeleton"})
	foreign := startRound(t, other, `{}`)
	rec = do(t, srv, http.MethodGet, "/round", foreign.Token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoundToken_Expired(t *testing.T) {
	srv := defaultServer(t)
	res := startRound(t, srv, `{}`)
	srv.opts.Now = func() time.Time { return fixedNow.Add(2 * time.Hour) }

	rec := do(t, srv, http.MethodGet, "/round", res.Token, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSubmitWord_Flow(t *testing.T) {
	srv := defaultServer(t)
	res := startRound(t, srv, `{}`)

	rec := do(t, srv, http.MethodPost, "/round/word", res.Token, `{"word":" Lone "}`)
	require.Equal(t, http.StatusOK, rec.Code)
	v := decodeVerdict(t, rec)
	assert.True(t, v.Accepted)
	assert.Equal(t, "lone", v.Word)
	assert.Equal(t, 4, v.Length)
	assert.Equal(t, []usedWord{{Word: "lone", Length: 4}}, v.UsedWords)

	rec = do(t, srv, http.MethodPost, "/round/word", res.Token, `{"word":"lone"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	v = decodeVerdict(t, rec)
	assert.False(t, v.Accepted)
	assert.Equal(t, game.ReasonAlreadyUsed, v.Reason)
	assert.Equal(t, game.TitleSorry, v.Title)
	assert.Equal(t, game.MsgAlreadyUsed, v.Message)

	rec = do(t, srv, http.MethodPost, "/round/word", res.Token, `{"word":"bread"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, game.ReasonNotPossible, decodeVerdict(t, rec).Reason)

	rec = do(t, srv, http.MethodPost, "/round/word", res.Token, `{"word":"SKELETON"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	v = decodeVerdict(t, rec)
	assert.Equal(t, game.ReasonNotReal, v.Reason)
	assert.Equal(t, game.TitleNiceTry, v.Title)
	assert.Equal(t, game.MsgSameAsRoot, v.Message)

	rec = do(t, srv, http.MethodPost, "/round/word", res.Token, `{"word":"keel"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, srv, http.MethodGet, "/round", res.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var state roundRes
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&state))
	assert.Equal(t, "skeleton", state.RootWord)
	assert.Equal(t, []usedWord{{Word: "keel", Length: 4}, {Word: "lone", Length: 4}}, state.UsedWords)
}

func TestSubmitWord_EmptyIsSilent(t *testing.T) {
	srv := defaultServer(t)
	res := startRound(t, srv, `{}`)

	rec := do(t, srv, http.MethodPost, "/round/word", res.Token, `{"word":"   "}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"accepted":false,"reason":"empty"}`, rec.Body.String())
}

func TestSubmitWord_BadJSON(t *testing.T) {
	srv := defaultServer(t)
	res := startRound(t, srv, `{}`)
	rec := do(t, srv, http.MethodPost, "/round/word", res.Token, `{"word":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitWord_DictionaryFailure(t *testing.T) {
	srv, _ := newTestServer(t, failingDict{}, listSource{"skeleton"})
	res := startRound(t, srv, `{}`)

	rec := do(t, srv, http.MethodPost, "/round/word", res.Token, `{"word":"lone"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = do(t, srv, http.MethodGet, "/round", res.Token, "")
	var state roundRes
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&state))
	assert.Empty(t, state.UsedWords)
}

func TestCookieToken(t *testing.T) {
	srv := defaultServer(t)
	res := startRound(t, srv, `{}`)

	req := httptest.NewRequest(http.MethodGet, "/round", nil)
	req.AddCookie(&http.Cookie{Name: roundCookieName, Value: res.Token})
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPreflight(t *testing.T) {
	rec := do(t, defaultServer(t), http.MethodOptions, "/round/word", "", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestNotFound(t *testing.T) {
	rec := do(t, defaultServer(t), http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}

func TestRoundSocket(t *testing.T) {
	srv := defaultServer(t)
	res := startRound(t, srv, `{}`)

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/round/ws?token=" + res.Token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	send := func(word string) verdict {
		t.Helper()
		require.NoError(t, conn.WriteJSON(submitReq{Word: word}))
		var v verdict
		require.NoError(t, conn.ReadJSON(&v))
		return v
	}

	v := send("toes")
	assert.True(t, v.Accepted)
	assert.Equal(t, "toes", v.Word)

	v = send("toes")
	assert.Equal(t, game.ReasonAlreadyUsed, v.Reason)

	v = send("")
	assert.Equal(t, game.ReasonEmpty, v.Reason)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{")))
	var bad verdict
	require.NoError(t, conn.ReadJSON(&bad))
	assert.Equal(t, "bad_json", bad.Error)

	rec := do(t, srv, http.MethodGet, "/round", res.Token, "")
	var state roundRes
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&state))
	assert.Equal(t, []usedWord{{Word: "toes", Length: 4}}, state.UsedWords)
}

func TestRoundSocket_RequiresToken(t *testing.T) {
	ts := httptest.NewServer(defaultServer(t).Router())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/round/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
