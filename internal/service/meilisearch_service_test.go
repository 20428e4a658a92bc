package service

import (
	"encoding/json"
	"testing"

	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"
)

func rawHit(t *testing.T, doc string) meilisearch.Hit {
	t.Helper()
	var hit map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal([]byte(doc), &hit))
	return hit
}

func TestHitIDsDecodesRawDocuments(t *testing.T) {
	hits := []meilisearch.Hit{
		rawHit(t, `{"id":"0198a9a2-1111-7000-8000-000000000001","title":"Villa in Erbil"}`),
		rawHit(t, `{"id":"0198a9a2-2222-7000-8000-000000000002","price":185000.0}`),
	}

	ids := hitIDs(hits)
	assert.Equal(t, []string{
		"0198a9a2-1111-7000-8000-000000000001",
		"0198a9a2-2222-7000-8000-000000000002",
	}, ids)
}

func TestHitIDsSkipsMalformedHits(t *testing.T) {
	hits := []meilisearch.Hit{
		rawHit(t, `{"title":"no id field"}`),
		rawHit(t, `{"id":42}`),
		rawHit(t, `{"id":""}`),
		rawHit(t, `{"id":"0198a9a2-3333-7000-8000-000000000003"}`),
	}

	ids := hitIDs(hits)
	assert.Equal(t, []string{"0198a9a2-3333-7000-8000-000000000003"}, ids)
}

func TestCleanContentForIndexStripsMarkup(t *testing.T) {
	s := &meiliSearchService{sanitizer: bluemonday.StrictPolicy()}

	got := s.cleanContentForIndex("<p>Spacious flat</p><div>near the <b>citadel</b></div><br>furnished")
	assert.Equal(t, "Spacious flat near the citadel furnished", got)
}
