// Package search mirrors the catalog into Elasticsearch. The index is a
// best-effort read projection: MySQL stays the source of truth, documents are
// keyed by product id so retried or duplicated syncs upsert idempotently, and
// every failure here is logged by callers instead of propagated — a broken
// mirror must never block a catalog write.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
)

const productsIndex = "products"

// Document is the flat product projection stored in the index.
type Document struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Barcode      string `json:"barcode"`
	PackSize     string `json:"pack_size"`
	ImageURL     string `json:"image_url"`
	BrandID      uint   `json:"brand_id"`
	BrandName    string `json:"brand_name"`
	CategoryID   uint   `json:"category_id"`
	CategoryName string `json:"category_name"`
}

// DocID is the Elasticsearch document id for a product.
func (d Document) DocID() string {
	return strconv.FormatUint(uint64(d.ID), 10)
}

// Client wraps the Elasticsearch client with catalog-level operations.
type Client struct {
	es *elasticsearch.Client
}

func New(url string) (*Client, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{url},
	}
	es, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("search: create client: %w", err)
	}
	return &Client{es: es}, nil
}

// IndexProduct upserts one product document.
func (c *Client) IndexProduct(ctx context.Context, doc Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	res, err := c.es.Index(
		productsIndex,
		bytes.NewReader(body),
		c.es.Index.WithDocumentID(doc.DocID()),
		c.es.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("search: index request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("search: index error [%s]: %s", res.Status(), body)
	}
	return nil
}

// BulkIndex upserts a batch of documents in one bulk request.
func (c *Client) BulkIndex(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	buf, err := BulkBody(docs)
	if err != nil {
		return err
	}

	res, err := c.es.Bulk(
		bytes.NewReader(buf),
		c.es.Bulk.WithIndex(productsIndex),
		c.es.Bulk.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("search: bulk request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("search: bulk error [%s]: %s", res.Status(), body)
	}
	return nil
}

// BulkBody renders the NDJSON payload for a bulk upsert: an action line with
// the document id followed by the document source, per the bulk API.
func BulkBody(docs []Document) ([]byte, error) {
	var buf bytes.Buffer
	for _, doc := range docs {
		action := fmt.Sprintf(`{"index":{"_id":%q}}`, doc.DocID())
		buf.WriteString(action)
		buf.WriteByte('\n')

		src, err := json.Marshal(doc)
		if err != nil {
			return nil, err
		}
		buf.Write(src)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
