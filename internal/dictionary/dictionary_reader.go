// Package dictionary looks up word definitions through WordsAPI on RapidAPI,
// caching responses as JSON files so repeated lookups stay offline.
package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"

	"github.com/at-ishikawa/wordtutor/internal/dictionary/rapidapi"
)

const defaultRetryAttempts = 3

type Config struct {
	RapidAPIHost string
	RapidAPIKey  string
}

// Configured reports whether the config carries enough to call the API.
func (c Config) Configured() bool {
	return c.RapidAPIHost != "" && c.RapidAPIKey != ""
}

type Reader struct {
	config    Config
	fileCache *FileCache

	// baseURL overrides the API endpoint in tests. Empty means
	// https://<RapidAPIHost>.
	baseURL string
}

func NewReader(cacheDirectory string, config Config) *Reader {
	return &Reader{
		config:    config,
		fileCache: NewFileCache(cacheDirectory),
	}
}

func (r *Reader) endpoint(word string) string {
	if r.baseURL != "" {
		return fmt.Sprintf("%s/words/%s", r.baseURL, word)
	}
	return fmt.Sprintf("https://%s/words/%s", r.config.RapidAPIHost, word)
}

func (r *Reader) lookupAPI(ctx context.Context, word string) ([]byte, error) {
	client := resty.New()

	var body []byte
	// WordsAPI occasionally flakes; retry transient failures with backoff.
	// A 4xx (unknown word, bad key) is terminal.
	err := retry.Do(
		func() error {
			res, err := client.R().
				SetContext(ctx).
				SetHeader("x-rapidapi-host", r.config.RapidAPIHost).
				SetHeader("x-rapidapi-key", r.config.RapidAPIKey).
				Get(r.endpoint(word))
			if err != nil {
				return fmt.Errorf("client.R.Get > %w", err)
			}
			if res.StatusCode() != http.StatusOK {
				err := fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
				if res.StatusCode() >= 400 && res.StatusCode() < 500 {
					return retry.Unrecoverable(err)
				}
				return err
			}
			body = res.Body()
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(defaultRetryAttempts),
	)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// Show prints definitions to stdout.
func (r *Reader) Show(definitions rapidapi.Response) {
	fmt.Println(definitions.Describe())
}

// Lookup returns the dictionary response for expression, reading from the
// file cache first and calling the API on a miss.
func (r *Reader) Lookup(ctx context.Context, expression string) (rapidapi.Response, error) {
	var resp rapidapi.Response
	contents, err := r.fileCache.cache(expression, func() ([]byte, error) {
		body, err := r.lookupAPI(ctx, expression)
		if err != nil {
			return nil, fmt.Errorf("r.lookupAPI > %w", err)
		}
		return body, nil
	})
	if err != nil {
		return resp, fmt.Errorf("r.fileCache.cache > %w", err)
	}
	if err := json.Unmarshal(contents, &resp); err != nil {
		return resp, fmt.Errorf("json.Unmarshal > %w", err)
	}
	return resp, nil
}
