package quote

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"

	"folio/date"
)

// diskCache caches HTTP responses on disk. The cache key includes the
// current day, so entries expire at midnight.
type diskCache struct {
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	key := fmt.Sprintf("%s %s %s", date.Today(), req.Method, req.URL)
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	if resp, err := c.get(key, req); err == nil {
		return resp, nil
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v%v %v", req.Method, req.URL.Host, req.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	if err := c.put(key, resp); err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(os.TempDir(), key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

func (c *diskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(os.TempDir(), key))
	if err != nil {
		return err
	}
	_, err = f.Write(content)
	f.Close()
	return err
}

// dailyClient returns an HTTP client whose responses are cached on disk
// until the end of the day.
func dailyClient() *http.Client {
	return &http.Client{Transport: &diskCache{base: http.DefaultTransport}}
}

// jwget performs a GET request and unmarshals the JSON response body.
func jwget(ctx context.Context, client *http.Client, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, data)
}
