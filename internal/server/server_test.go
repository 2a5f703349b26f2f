package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hibf-hashing/core/dna4"
	"hibf-hashing/internal/hashing"
	"hibf-hashing/internal/hibf"
	"hibf-hashing/internal/index"
	"hibf-hashing/pkg/api"
)

const (
	ref0 = "ACGTTGCAAGGCTTACGATCGGATCCATGGCAAGTGACA"
	ref1 = "TTTTGGGGCCCCAAAATTTTGGGGCCCCAGAGAGTCTC"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	p := hashing.Params{Mode: hashing.ModeSyncmer, K: 5, W: 5, S: 2, T: 1}
	var bins [][]uint64
	for _, r := range []string{ref0, ref1} {
		v, err := p.Fingerprints(dna4.MustEncode(r))
		require.NoError(t, err)
		bins = append(bins, v)
	}
	f, err := hibf.Build(hibf.Config{}, bins)
	require.NoError(t, err)
	idx, err := index.New(p, []string{"ref0.fa", "ref1.fa"}, f)
	require.NoError(t, err)

	s, err := New(idx, Config{})
	require.NoError(t, err)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestGetIndex(t *testing.T) {
	ts := testServer(t)
	resp, err := http.Get(ts.URL + "/index")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var info api.IndexInfoV1
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.Equal(t, "syncmer", info.Mode)
	assert.Equal(t, 5, info.KmerSize)
	assert.Equal(t, []string{"ref0.fa", "ref1.fa"}, info.Bins)
	assert.NotEmpty(t, info.BuildID)
}

func postSearch(t *testing.T, url string, req api.SearchRequestV1) *http.Response {
	t.Helper()
	b, err := json.Marshal(req)
	require.NoError(t, err)
	resp, err := http.Post(url+"/search", "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	return resp
}

func TestSearch(t *testing.T) {
	ts := testServer(t)
	resp := postSearch(t, ts.URL, api.SearchRequestV1{Reads: []api.ReadV1{
		{ID: "q0", Seq: ref0},
		{ID: "q1", Seq: ref1},
		{ID: "tiny", Seq: "ACG"},
	}})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var hits []api.HitV1
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&hits))
	require.Len(t, hits, 3)
	assert.Equal(t, "q0", hits[0].ID)
	assert.Contains(t, hits[0].Bins, 0)
	assert.Contains(t, hits[0].BinFiles, "ref0.fa")
	assert.Contains(t, hits[1].Bins, 1)
	assert.Equal(t, []int{}, hits[2].Bins)
	assert.NotEmpty(t, hits[2].Error)
}

func TestSearchRejectsBadErrors(t *testing.T) {
	ts := testServer(t)
	e := 9
	resp := postSearch(t, ts.URL, api.SearchRequestV1{Errors: &e, Reads: []api.ReadV1{{ID: "a", Seq: ref0}}})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthzAndOpenAPI(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	resp, err = http.Get(ts.URL + "/swagger.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var doc map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	paths, _ := doc["paths"].(map[string]interface{})
	assert.Contains(t, paths, "/search")
	assert.Contains(t, paths, "/index")
}

func TestNewWithoutIndex(t *testing.T) {
	_, err := New(nil, Config{})
	assert.Error(t, err)
}
