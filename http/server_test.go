package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/develevate/backend/auth"
	"github.com/develevate/backend/contest"
	develhttp "github.com/develevate/backend/http"
	"github.com/develevate/backend/judge"
	"github.com/develevate/backend/subm"
)

var testJwtKey = []byte("test-signing-key")

// okRunner answers every test case with its expected output.
type okRunner struct{}

type okExecution struct{}

func (okRunner) Prepare(ctx context.Context, lang judge.Language, code string) (judge.Execution, judge.CompileResult, error) {
	return okExecution{}, judge.CompileResult{Ok: true}, nil
}

func (okExecution) Run(ctx context.Context, input string, cpuLimMs int, memLimKiB int) (judge.RunResult, error) {
	// the sample problem echoes its input
	return judge.RunResult{Stdout: input, CpuMs: 5, MemKiB: 1024}, nil
}

func (okExecution) Close() error { return nil }

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()

	contestRepo := contest.NewInMemRepo()
	submRepo := subm.NewInMemRepo()
	contestSrvc := contest.NewContestSrvc(contestRepo, submRepo)

	langs := []judge.Language{{
		ID: "python", FullName: "Python 3", CodeFilename: "main.py",
		RunCmd: "python3 main.py", Enabled: true,
	}}
	judgeSrvc := judge.NewJudgeSrvc(langs, okRunner{}, submRepo, contestRepo, nil, nil)

	server := develhttp.NewHttpServer(contestSrvc, nil, judgeSrvc, submRepo, nil, testJwtKey)
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doJson(t *testing.T, method, url, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var parsed map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp, parsed
}

func loginAs(t *testing.T, username string) string {
	t.Helper()
	token, err := auth.GenerateJWT(username, uuid.New(), []string{"user"}, testJwtKey)
	require.NoError(t, err)
	return token
}

func TestContestSubmissionFlow(t *testing.T) {
	ts := setupServer(t)
	organizer := loginAs(t, "organizer")
	alice := loginAs(t, "alice")

	// a contest whose window is open right now
	resp, body := doJson(t, http.MethodPost, ts.URL+"/contests", organizer, map[string]any{
		"title":     "Weekly Round 12",
		"startTime": time.Now().Add(-time.Hour).Format(time.RFC3339),
		"endTime":   time.Now().Add(time.Hour).Format(time.RFC3339),
		"problems": []map[string]any{{
			"id": "echo", "title": "Echo", "points": 10,
			"tests": []map[string]any{
				{"input": "hello", "expected": "hello", "hidden": false},
				{"input": "secret", "expected": "secret", "hidden": true},
			},
		}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, true, body["success"])
	contestID := body["data"].(map[string]any)["uuid"].(string)

	t.Run("status is derived on read", func(t *testing.T) {
		resp, body := doJson(t, http.MethodGet, ts.URL+"/contests/"+contestID, "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "running", body["data"].(map[string]any)["status"])
	})

	t.Run("anonymous submission is rejected", func(t *testing.T) {
		resp, body := doJson(t, http.MethodPost, ts.URL+"/contests/"+contestID+"/submissions", "", map[string]any{
			"problemId": "echo", "code": "print(input())", "language": "python",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, false, body["success"])
	})

	var submID string
	t.Run("accepted submission", func(t *testing.T) {
		resp, body := doJson(t, http.MethodPost, ts.URL+"/contests/"+contestID+"/submissions", alice, map[string]any{
			"problemId": "echo", "code": "print(input())", "language": "python",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		data := body["data"].(map[string]any)
		assert.Equal(t, "accepted", data["verdict"])
		assert.Equal(t, float64(10), data["points"])
		submID = data["uuid"].(string)
	})

	t.Run("hidden test data is redacted", func(t *testing.T) {
		resp, body := doJson(t, http.MethodGet, ts.URL+"/submissions/"+submID, "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		results := body["data"].(map[string]any)["results"].([]any)
		require.Len(t, results, 2)

		visible := results[0].(map[string]any)
		assert.Equal(t, "hello", visible["input"])

		hidden := results[1].(map[string]any)
		_, hasInput := hidden["input"]
		assert.False(t, hasInput, "hidden case input must not leak")
		_, hasExpected := hidden["expected"]
		assert.False(t, hasExpected)
	})

	t.Run("leaderboard ranks the solver", func(t *testing.T) {
		resp, body := doJson(t, http.MethodGet, ts.URL+"/contests/"+contestID+"/leaderboard", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		rows := body["data"].([]any)
		require.Len(t, rows, 1)
		row := rows[0].(map[string]any)
		assert.Equal(t, float64(1), row["rank"])
		assert.Equal(t, float64(10), row["points"])
	})

	t.Run("unknown contest is 404", func(t *testing.T) {
		resp, _ := doJson(t, http.MethodGet, ts.URL+"/contests/"+uuid.NewString(), "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("malformed contest id is 400", func(t *testing.T) {
		resp, _ := doJson(t, http.MethodGet, ts.URL+"/contests/not-a-uuid", "", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLanguagesEndpoint(t *testing.T) {
	ts := setupServer(t)

	resp, body := doJson(t, http.MethodGet, ts.URL+"/languages", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	langs := body["data"].([]any)
	require.Len(t, langs, 1)
	assert.Equal(t, "python", langs[0].(map[string]any)["id"])
}

func TestRegisterEndpoint(t *testing.T) {
	ts := setupServer(t)
	organizer := loginAs(t, "organizer")
	alice := loginAs(t, "alice")

	_, body := doJson(t, http.MethodPost, ts.URL+"/contests", organizer, map[string]any{
		"title":     "Weekly Round 12",
		"startTime": time.Now().Add(time.Hour).Format(time.RFC3339),
		"endTime":   time.Now().Add(2 * time.Hour).Format(time.RFC3339),
	})
	contestID := body["data"].(map[string]any)["uuid"].(string)

	url := fmt.Sprintf("%s/contests/%s/register", ts.URL, contestID)
	resp, _ := doJson(t, http.MethodPost, url, alice, map[string]any{"rating": 1500})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// the same user registering again conflicts
	resp, _ = doJson(t, http.MethodPost, url, alice, map[string]any{"rating": 1500})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}
