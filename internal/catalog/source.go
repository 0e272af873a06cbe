package catalog

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/Flame-Codes/jersey-hub-direct/internal/models"
	"gopkg.in/yaml.v3"
)

// maxDocumentSize bounds how much of a catalog source is read
const maxDocumentSize = 16 << 20

// fetch reads the catalog document from an http(s) URL or a local file
func fetch(ctx context.Context, client *http.Client, source string) (models.Catalog, error) {
	var (
		body io.ReadCloser
		err  error
	)
	if isURL(source) {
		body, err = openURL(ctx, client, source)
	} else {
		body, err = os.Open(source)
	}
	if err != nil {
		return models.Catalog{}, err
	}
	defer body.Close()

	name := sourceName(source)

	var r io.Reader = body
	if strings.HasSuffix(name, ".gz") {
		gzReader, err := gzip.NewReader(body)
		if err != nil {
			return models.Catalog{}, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzReader.Close()
		r = gzReader
		name = strings.TrimSuffix(name, ".gz")
	}

	data, err := io.ReadAll(io.LimitReader(r, maxDocumentSize))
	if err != nil {
		return models.Catalog{}, fmt.Errorf("failed to read catalog: %w", err)
	}

	switch path.Ext(name) {
	case ".yaml", ".yml":
		return decodeYAML(data)
	default:
		return decodeJSON(data)
	}
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// sourceName is the lower-cased file name used to pick the decoder
func sourceName(source string) string {
	if isURL(source) {
		if u, err := url.Parse(source); err == nil {
			return strings.ToLower(path.Base(u.Path))
		}
	}
	return strings.ToLower(path.Base(strings.ReplaceAll(source, "\\", "/")))
}

func openURL(ctx context.Context, client *http.Client, source string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return resp.Body, nil
}

func decodeJSON(data []byte) (models.Catalog, error) {
	var doc models.Catalog
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.Catalog{}, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return doc, nil
}

// decodeYAML goes through a generic tree and JSON so that prices use the
// same decimal decoding as JSON documents.
func decodeYAML(data []byte) (models.Catalog, error) {
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return models.Catalog{}, fmt.Errorf("failed to decode catalog: %w", err)
	}
	raw, err := json.Marshal(tree)
	if err != nil {
		return models.Catalog{}, fmt.Errorf("failed to convert yaml catalog: %w", err)
	}
	return decodeJSON(raw)
}
