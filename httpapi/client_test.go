package httpapi_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	catalog "github.com/tunefeed/catalog"
	"github.com/tunefeed/catalog/httpapi"
	"github.com/tunefeed/catalog/paginate"
)

const initialDoc = `{"contents": {"singleColumnBrowseResultsRenderer": {"tabs": [{"tabRenderer": {"content": {
	"sectionListRenderer": {
		"contents": [{"musicCarouselShelfRenderer": {
			"header": {"musicCarouselShelfBasicHeaderRenderer": {"title": {"runs": [{"text": "Listen again"}]}}},
			"contents": [{"musicTwoRowItemRenderer": {
				"title": {"runs": [{"text": "A Song"}]},
				"navigationEndpoint": {"watchEndpoint": {"videoId": "vid1"}}
			}}]
		}}],
		"continuations": [{"nextContinuationData": {"continuation": "tok1"}}]
	}
}}}]}}}`

const continuationDoc = `{"continuationContents": {"sectionListContinuation": {
	"contents": [{"musicCarouselShelfRenderer": {
		"header": {"musicCarouselShelfBasicHeaderRenderer": {"title": {"runs": [{"text": "More"}]}}},
		"contents": [{"musicTwoRowItemRenderer": {
			"title": {"runs": [{"text": "B Song"}]},
			"navigationEndpoint": {"watchEndpoint": {"videoId": "vid2"}}
		}}]
	}}]
}}}`

func TestBrowseRequestShape(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/browse", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, &gotBody))
		io.WriteString(w, initialDoc)
	}))
	defer srv.Close()

	c := httpapi.NewClient(
		httpapi.WithBaseURL(srv.URL),
		httpapi.WithVisitorID("visitor-1"),
	)
	doc, err := c.Browse(context.Background(), httpapi.BrowseHome)
	require.NoError(t, err)

	require.Equal(t, httpapi.BrowseHome, gotBody["browseId"])
	client := gotBody["context"].(map[string]any)["client"].(map[string]any)
	require.Equal(t, "WEB_REMIX", client["clientName"])
	require.Equal(t, "visitor-1", client["visitorData"])

	sections := catalog.ParseInitial(doc)
	require.Len(t, sections, 1)
	require.Equal(t, "Listen again", sections[0].Title)
}

func TestContinueCarriesToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "tok1", r.URL.Query().Get("ctoken"))
		require.Equal(t, "tok1", r.URL.Query().Get("continuation"))
		io.WriteString(w, continuationDoc)
	}))
	defer srv.Close()

	c := httpapi.NewClient(httpapi.WithBaseURL(srv.URL))
	doc, err := c.Continue(context.Background(), "tok1")
	require.NoError(t, err)
	require.Len(t, catalog.ParseContinuation(doc), 1)
}

func TestBadStatusIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	c := httpapi.NewClient(httpapi.WithBaseURL(srv.URL))
	_, err := c.Browse(context.Background(), httpapi.BrowseHome)
	require.Error(t, err)
	require.Contains(t, err.Error(), "403")
}

func TestSectionFetcherDrivesASession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("ctoken") == "tok1" {
			io.WriteString(w, continuationDoc)
			return
		}
		io.WriteString(w, initialDoc)
	}))
	defer srv.Close()

	c := httpapi.NewClient(httpapi.WithBaseURL(srv.URL))
	p := catalog.NewParser()
	s := paginate.NewSession(
		c.SectionFetcher(p, httpapi.BrowseHome),
		func(sec catalog.Section) string { return sec.ID },
	)
	require.NoError(t, s.Prefetch(context.Background()))

	items := s.Items()
	require.Len(t, items, 2)
	require.Equal(t, "Listen again", items[0].Title)
	require.Equal(t, "More", items[1].Title)
	require.False(t, s.HasMore())
}
