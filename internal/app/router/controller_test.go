package router

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oslobodiboze/RASPOREDnew/internal/app/config"
)

func newTestEngine(t *testing.T, rows [][]string) *gin.Engine {
	t.Helper()

	cfg := &config.Config{
		Channel: config.ChannelConfig{ID: "diadora-tv", Name: "DiadoraTV"},
	}
	require.NoError(t, cfg.Validate())

	engine, err := NewEngine(cfg, rows)
	require.NoError(t, err)
	return engine
}

func do(engine *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestGetSchedule(t *testing.T) {
	engine := newTestEngine(t, sessionRows())

	w := do(engine, http.MethodGet, "/schedule", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp scheduleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Rows, 2)
	assert.True(t, resp.Valid)
	assert.Equal(t, "05.03.2024.", resp.Rows[0].Date)
	assert.Equal(t, "News", resp.Rows[0].Title)
}

func TestGetScheduleWithoutLoad(t *testing.T) {
	engine := newTestEngine(t, nil)

	w := do(engine, http.MethodGet, "/schedule", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEditUndoRedoFlow(t *testing.T) {
	engine := newTestEngine(t, sessionRows())

	w := do(engine, http.MethodPost, "/schedule/edit",
		`{"op":"setCell","row":0,"col":2,"value":"Evening News"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp scheduleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Evening News", resp.Rows[0].Title)

	w = do(engine, http.MethodPost, "/schedule/undo", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "News", resp.Rows[0].Title)

	w = do(engine, http.MethodPost, "/schedule/redo", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Evening News", resp.Rows[0].Title)

	w = do(engine, http.MethodPost, "/schedule/redo", "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestEditRejectsBadRequests(t *testing.T) {
	engine := newTestEngine(t, sessionRows())

	// missing op
	w := do(engine, http.MethodPost, "/schedule/edit", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// unknown op
	w = do(engine, http.MethodPost, "/schedule/edit", `{"op":"transpose"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// setCell without coordinates
	w = do(engine, http.MethodPost, "/schedule/edit", `{"op":"setCell","value":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// invalid date rejected by the rebuild, state untouched
	w = do(engine, http.MethodPost, "/schedule/edit",
		`{"op":"setCell","row":0,"col":0,"value":"30.2.2024."}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(engine, http.MethodGet, "/schedule", "")
	var resp scheduleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "05.03.2024.", resp.Rows[0].Date)
}

func TestValidateEndpoint(t *testing.T) {
	engine := newTestEngine(t, sessionRows())

	w := do(engine, http.MethodGet, "/schedule/validate", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(engine, http.MethodPost, "/schedule/edit",
		`{"op":"setCell","row":0,"col":2,"value":""}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(engine, http.MethodGet, "/schedule/validate", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "NAZIV EMISIJE")
}

func TestGetXMLTV(t *testing.T) {
	engine := newTestEngine(t, sessionRows())

	w := do(engine, http.MethodGet, "/xmltv", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/xml")

	body := w.Body.String()
	assert.Contains(t, body, `<channel id="diadora-tv">`)
	assert.Contains(t, body, `<title lang="hr">News</title>`)
	assert.Contains(t, body, "20240305200000 +0100")
}

func TestGetXMLTVBlockedByValidation(t *testing.T) {
	engine := newTestEngine(t, sessionRows())

	w := do(engine, http.MethodPost, "/schedule/edit",
		`{"op":"setCell","row":1,"col":1,"value":""}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(engine, http.MethodGet, "/xmltv", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGetXMLTVGzip(t *testing.T) {
	engine := newTestEngine(t, sessionRows())

	w := do(engine, http.MethodGet, "/xmltv.gz", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "raspored.xml.gz")

	gz, err := gzip.NewReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	unpacked, err := io.ReadAll(gz)
	require.NoError(t, err)
	assert.Contains(t, string(unpacked), `<channel id="diadora-tv">`)
}
