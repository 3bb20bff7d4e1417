package cmd

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intonado/intonado/model"
)

func postParse(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/parse", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handleParse(rec, req)
	return rec
}

func TestHandleParseReturnsEvents(t *testing.T) {
	rec := postParse(t, `{"line": "| C4 D4 E4 F4 |", "signature": "4/4"}`)
	require.Equal(t, 200, rec.Code)

	var res model.ParseResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Events, 4)
	assert.Equal(t, uint8(60), res.Events[0].Key)
	assert.Empty(t, res.Violations)
	assert.False(t, res.PartialStart)
}

func TestHandleParseReportsViolations(t *testing.T) {
	rec := postParse(t, `{"line": "| C4 D4 E4 |", "signature": "4/4"}`)
	require.Equal(t, 200, rec.Code)

	var res model.ParseResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Violations, 1)
	assert.Equal(t, 3.0, res.Violations[0].Found)
	assert.Equal(t, 4, res.Violations[0].Expected)
}

func TestHandleParseAppliesKeyAndUnit(t *testing.T) {
	rec := postParse(t, `{"line": "F4 C42", "key": "Gmajor", "unit_length": 0.5}`)
	require.Equal(t, 200, rec.Code)

	var res model.ParseResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Events, 2)
	assert.Equal(t, uint8(66), res.Events[0].Key)
	assert.Equal(t, 1.0, res.Events[1].Beats)
}

func TestHandleParseBadNotation(t *testing.T) {
	rec := postParse(t, `{"line": "C4 X4"}`)
	require.Equal(t, 422, rec.Code)

	var res model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Contains(t, res.Error, "Invalid note format")
	assert.Contains(t, res.Error, "position 2")
}

func TestHandleParseBadRequests(t *testing.T) {
	assert.Equal(t, 400, postParse(t, `{garbage`).Code)
	assert.Equal(t, 400, postParse(t, `{"line": "C4", "key": "Xmajor"}`).Code)
	assert.Equal(t, 400, postParse(t, `{"line": "C4", "signature": "x/4"}`).Code)
}
