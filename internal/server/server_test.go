package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"workout-generator-be/internal/bootstrap"
	"workout-generator-be/internal/config"
	"workout-generator-be/internal/dto"
	"workout-generator-be/internal/pkg/logger"
	"workout-generator-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	app       *fiber.App
	container *bootstrap.Container
}

func newTestServer(t *testing.T, env map[string]string) *testServer {
	t.Helper()
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("CACHE_DRIVER", "memory")
	t.Setenv("NATS_URL", "")
	t.Setenv("JWT_SECRET", "")
	for k, v := range env {
		t.Setenv(k, v)
	}

	cfg, err := config.Parse()
	require.NoError(t, err)

	container, err := bootstrap.NewContainer(nil, cfg, logger.NewNopLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, container.Start(ctx))
	t.Cleanup(func() {
		cancel()
		container.Close()
	})

	return &testServer{app: New(cfg, container).GetApp(), container: container}
}

func (s *testServer) seed(t *testing.T, names ...string) {
	t.Helper()
	for i, name := range names {
		_, err := s.container.ExerciseService.Create(context.Background(), &dto.CreateExerciseRequest{
			Name: name, Easy: i + 1, Medium: (i + 1) * 2, Hard: (i + 1) * 3,
		})
		require.NoError(t, err)
	}
}

func (s *testServer) do(t *testing.T, req *http.Request) (int, string) {
	t.Helper()
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func formRequest(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func decodeData[T any](t *testing.T, body string) T {
	t.Helper()
	var res serverutils.BaseResponse[T]
	require.NoError(t, json.Unmarshal([]byte(body), &res))
	return res.Data
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, nil)

	status, _ := s.do(t, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, status)
}

func TestCreateAndList(t *testing.T) {
	s := newTestServer(t, nil)

	status, body := s.do(t, jsonRequest(http.MethodPost, "/api/exercise/v1", `{"name":"Squat","easy":20,"medium":40,"hard":60}`))
	require.Equal(t, http.StatusCreated, status, body)
	created := decodeData[dto.CreateExerciseResponse](t, body)

	status, body = s.do(t, httptest.NewRequest(http.MethodGet, "/api/exercise/v1", nil))
	require.Equal(t, http.StatusOK, status)
	all := decodeData[[]dto.ExerciseResponse](t, body)
	require.Len(t, all, 1)
	assert.Equal(t, created.Id, all[0].Id)
	assert.Equal(t, 60, all[0].Hard)
}

func TestListFilter(t *testing.T) {
	s := newTestServer(t, nil)
	s.seed(t, "Press up", "Squat", "Sit up")

	status, body := s.do(t, httptest.NewRequest(http.MethodGet, "/api/exercise/v1?field=hard&value=6", nil))
	require.Equal(t, http.StatusOK, status, body)
	got := decodeData[[]dto.ExerciseResponse](t, body)
	require.Len(t, got, 1)
	assert.Equal(t, "Squat", got[0].Name)

	status, body = s.do(t, httptest.NewRequest(http.MethodGet, "/api/exercise/v1?field=name&value=Crunch", nil))
	require.Equal(t, http.StatusOK, status, body)
	assert.Empty(t, decodeData[[]dto.ExerciseResponse](t, body))

	status, _ = s.do(t, httptest.NewRequest(http.MethodGet, "/api/exercise/v1?field=random&value=1", nil))
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCreateValidation(t *testing.T) {
	s := newTestServer(t, nil)

	status, body := s.do(t, jsonRequest(http.MethodPost, "/api/exercise/v1", `{"easy":-1}`))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "Validation failed")

	status, _ = s.do(t, jsonRequest(http.MethodPost, "/api/exercise/v1", `{not json`))
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestWriteRoutesRequireToken(t *testing.T) {
	s := newTestServer(t, map[string]string{"JWT_SECRET": "secret"})

	status, _ := s.do(t, jsonRequest(http.MethodPost, "/api/exercise/v1", `{"name":"Squat","easy":1,"medium":2,"hard":3}`))
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = s.do(t, httptest.NewRequest(http.MethodGet, "/api/exercise/v1", nil))
	assert.Equal(t, http.StatusOK, status)
}

func TestRandomEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	status, _ := s.do(t, httptest.NewRequest(http.MethodGet, "/api/exercise/v1/random", nil))
	assert.Equal(t, http.StatusNotFound, status)

	s.seed(t, "Press up", "Squat", "Sit up", "Crunch")

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantCount  int
		ordered    bool
	}{
		{name: "subset", target: "/api/exercise/v1/random/many?quantity=2", wantStatus: 200, wantCount: 2},
		{name: "non-numeric defaults to one", target: "/api/exercise/v1/random/many?quantity=abc", wantStatus: 200, wantCount: 1},
		{name: "missing defaults to one", target: "/api/exercise/v1/random/many", wantStatus: 200, wantCount: 1},
		{name: "zero", target: "/api/exercise/v1/random/many?quantity=0", wantStatus: 200, wantCount: 0},
		{name: "everything", target: "/api/exercise/v1/random/many?quantity=9", wantStatus: 200, wantCount: 4, ordered: true},
		{name: "negative", target: "/api/exercise/v1/random/many?quantity=-1", wantStatus: 400},
		{name: "overflowing quantity selects everything", target: "/api/exercise/v1/random/many?quantity=99999999999999999999", wantStatus: 200, wantCount: 4, ordered: true},
		{name: "tag subset", target: "/api/exercise/v1/random/tag?quantity=3", wantStatus: 200, wantCount: 3},
		{name: "tag negative", target: "/api/exercise/v1/random/tag?quantity=-2", wantStatus: 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := s.do(t, httptest.NewRequest(http.MethodGet, tt.target, nil))
			require.Equal(t, tt.wantStatus, status, body)
			if status != http.StatusOK {
				return
			}
			res := decodeData[dto.RandomExercisesResponse](t, body)
			assert.Len(t, res.Exercises, tt.wantCount)
			assert.Equal(t, tt.ordered, res.Ordered)
			assert.Equal(t, 4, res.Available)
		})
	}

	status, body := s.do(t, httptest.NewRequest(http.MethodGet, "/api/exercise/v1/random", nil))
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, decodeData[dto.ExerciseResponse](t, body).Name)
}

func TestSearchAndPatch(t *testing.T) {
	s := newTestServer(t, nil)
	s.seed(t, "Press up", "Squat")

	status, _ := s.do(t, httptest.NewRequest(http.MethodGet, "/api/exercise/v1/search", nil))
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(t, httptest.NewRequest(http.MethodGet, "/api/exercise/v1/search?name=Lunge", nil))
	assert.Equal(t, http.StatusNotFound, status)

	status, body := s.do(t, httptest.NewRequest(http.MethodGet, "/api/exercise/v1/search?name=Press%20up", nil))
	require.Equal(t, http.StatusOK, status)
	found := decodeData[dto.ExerciseResponse](t, body)
	assert.Equal(t, 1, found.Easy)

	status, body = s.do(t, jsonRequest(http.MethodPatch, "/api/exercise/v1/search?name=Squat", `{"medium":45}`))
	require.Equal(t, http.StatusOK, status, body)
	patched := decodeData[dto.ExerciseResponse](t, body)
	assert.Equal(t, 45, patched.Medium)
	assert.Equal(t, 2, patched.Easy)

	status, body = s.do(t, jsonRequest(http.MethodPatch, "/api/exercise/v1/"+found.Id.String(), `{"name":"Push up"}`))
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Push up", decodeData[dto.ExerciseResponse](t, body).Name)

	status, _ = s.do(t, jsonRequest(http.MethodPatch, "/api/exercise/v1/not-a-uuid", `{"name":"x"}`))
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestHTMLPages(t *testing.T) {
	s := newTestServer(t, nil)

	status, body := s.do(t, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `action="/results"`)

	status, body = s.do(t, httptest.NewRequest(http.MethodGet, "/results?quantity=2&difficulty=easy", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "No exercises available")

	status, body = s.do(t, httptest.NewRequest(http.MethodGet, "/all-exercises", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "No content to return")

	status, body = s.do(t, formRequest("/add-exercise", url.Values{"Name": {"Squat"}, "Easy": {""}, "Medium": {"40"}, "Hard": {"60"}}))
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Fill in empty sections")
	assert.Contains(t, body, `value="Squat"`)

	status, body = s.do(t, formRequest("/add-exercise", url.Values{"Name": {"Squat"}, "Easy": {"20"}, "Medium": {"40"}, "Hard": {"60"}}))
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Successfully submitted")

	status, body = s.do(t, httptest.NewRequest(http.MethodGet, "/results?quantity=1&difficulty=hard", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `<span class="name">Squat</span> <span class="target">60</span>`)

	status, body = s.do(t, httptest.NewRequest(http.MethodGet, "/all-exercises", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "<td>Squat</td>")

	status, _ = s.do(t, httptest.NewRequest(http.MethodGet, "/results?quantity=-4", nil))
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestMetricsAndWebsocketRoute(t *testing.T) {
	s := newTestServer(t, nil)
	s.seed(t, "Crunch")

	status, _ := s.do(t, httptest.NewRequest(http.MethodGet, "/api/exercise/v1/random/many?quantity=1", nil))
	require.Equal(t, http.StatusOK, status)

	status, body := s.do(t, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "sample_requests_total")
	assert.Contains(t, body, "exercises_created_total 1")

	status, _ = s.do(t, httptest.NewRequest(http.MethodGet, "/ws/exercises", nil))
	assert.Equal(t, http.StatusUpgradeRequired, status)
}
