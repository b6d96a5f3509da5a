package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"

	"github.com/Skotchmaster/petompp/internal/models"
)

// ResourceIndex keeps text resources searchable. Documents are keyed by the
// resource key.
type ResourceIndex struct {
	client *elasticsearch.Client
	index  string
}

func NewResourceIndex(client *elasticsearch.Client, index string) *ResourceIndex {
	return &ResourceIndex{client: client, index: index}
}

type resourceDoc struct {
	Key string  `json:"key"`
	En  string  `json:"en"`
	Pl  *string `json:"pl,omitempty"`
}

func (i *ResourceIndex) Index(ctx context.Context, r models.Resource) error {
	body, err := json.Marshal(resourceDoc{Key: r.Key, En: r.En, Pl: r.Pl})
	if err != nil {
		return fmt.Errorf("elasticsearch: marshal %q: %w", r.Key, err)
	}
	res, err := i.client.Index(i.index, bytes.NewReader(body),
		i.client.Index.WithContext(ctx),
		i.client.Index.WithDocumentID(r.Key),
		i.client.Index.WithRefresh("true"),
	)
	return checkResponse("index", res, err, false)
}

func (i *ResourceIndex) Delete(ctx context.Context, key string) error {
	res, err := i.client.Delete(i.index, key,
		i.client.Delete.WithContext(ctx),
		i.client.Delete.WithRefresh("true"),
	)
	return checkResponse("delete", res, err, true)
}

// Search runs a fuzzy match over both languages and returns the total hit
// count with the requested window of resources.
func (i *ResourceIndex) Search(ctx context.Context, q string, from, size int) (int64, []models.Resource, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"key^2", "en", "pl"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("elasticsearch: encode query: %w", err)
	}

	res, err := i.client.Search(
		i.client.Search.WithContext(ctx),
		i.client.Search.WithIndex(i.index),
		i.client.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("elasticsearch: search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("elasticsearch: search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source resourceDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("elasticsearch: decode search: %w", err)
	}

	out := make([]models.Resource, len(r.Hits.Hits))
	for n, hit := range r.Hits.Hits {
		out[n] = models.Resource{Key: hit.Source.Key, En: hit.Source.En, Pl: hit.Source.Pl}
	}
	return r.Hits.Total.Value, out, nil
}

func checkResponse(op string, res *esapi.Response, err error, allowMissing bool) error {
	if err != nil {
		return fmt.Errorf("elasticsearch: %s: %w", op, err)
	}
	defer res.Body.Close()
	if allowMissing && res.StatusCode == http.StatusNotFound {
		return nil
	}
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("elasticsearch: %s: %s: %s", op, res.Status(), body)
	}
	return nil
}
