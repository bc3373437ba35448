package sirqul

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/example/media-platform/internal/catalog"
)

// ResponseCache memoizes upstream search responses. It is a latency
// optimization only: implementations carry no invalidation guarantees and
// a nil cache is always valid.
type ResponseCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, v any) error
}

// AlbumAPI is the port the aggregation services consume.
type AlbumAPI interface {
	SearchAlbums(ctx context.Context, req SearchRequest) (SearchResponse, error)
	GetAlbum(ctx context.Context, req GetAlbumRequest) (AlbumRecord, error)
}

type Client struct {
	baseURL   string
	appKey    string
	appSecret string

	// fallbackAccountID satisfies the upstream requireAccountId policy
	// for anonymous browsing.
	fallbackAccountID string

	httpClient *http.Client
	memo       ResponseCache
}

type Options struct {
	BaseURL           string
	AppKey            string
	AppSecret         string
	FallbackAccountID string
	Memo              ResponseCache
}

func New(opts Options) *Client {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = "https://api.sirqul.com/v2"
	}
	return &Client{
		baseURL:           base,
		appKey:            opts.AppKey,
		appSecret:         opts.AppSecret,
		fallbackAccountID: opts.FallbackAccountID,
		httpClient:        &http.Client{Timeout: 10 * time.Second},
		memo:              opts.Memo,
	}
}

type SearchRequest struct {
	AlbumType string
	Keyword   string
	Category  string
	AccountID string
	Start     int
	Limit     int
}

type SearchResponse struct {
	Valid          bool          `json:"valid"`
	Items          []AlbumRecord `json:"items"`
	CountTotal     int           `json:"countTotal"`
	HasMoreResults bool          `json:"hasMoreResults"`
}

type GetAlbumRequest struct {
	AlbumID   string
	AccountID string
}

type getAlbumResponse struct {
	Valid bool        `json:"valid"`
	Album AlbumRecord `json:"album"`
}

// SearchAlbums queries the upstream album search endpoint. The per-user
// include flags are always requested when a user account is present so
// favorite/like/rating state rides along on the records.
func (c *Client) SearchAlbums(ctx context.Context, req SearchRequest) (SearchResponse, error) {
	form := c.baseForm(req.AccountID)
	if req.AlbumType != "" {
		form.Set("albumType", req.AlbumType)
	}
	if req.Keyword != "" {
		form.Set("keyword", req.Keyword)
	}
	if req.Category != "" {
		form.Set("category", req.Category)
	}
	form.Set("start", strconv.Itoa(req.Start))
	if req.Limit > 0 {
		form.Set("limit", strconv.Itoa(req.Limit))
	}

	key := memoKey("search", form)
	if c.memo != nil {
		var cached SearchResponse
		if ok, err := c.memo.Get(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	var out SearchResponse
	if err := c.post(ctx, "/album/search", form, &out); err != nil {
		return SearchResponse{}, err
	}
	if c.memo != nil {
		_ = c.memo.Set(ctx, key, out)
	}
	return out, nil
}

// GetAlbum fetches a single album by id.
func (c *Client) GetAlbum(ctx context.Context, req GetAlbumRequest) (AlbumRecord, error) {
	if strings.TrimSpace(req.AlbumID) == "" {
		return AlbumRecord{}, fmt.Errorf("sirqul: albumId required")
	}
	form := c.baseForm(req.AccountID)
	form.Set("albumId", req.AlbumID)

	var out getAlbumResponse
	if err := c.post(ctx, "/album/get", form, &out); err != nil {
		return AlbumRecord{}, err
	}
	if !out.Valid {
		return AlbumRecord{}, &catalog.NotFoundError{Kind: "album", Key: "albumId", Value: req.AlbumID}
	}
	return out.Album, nil
}

func (c *Client) baseForm(accountID string) url.Values {
	form := url.Values{}
	form.Set("appKey", c.appKey)
	form.Set("appSecret", c.appSecret)
	if strings.TrimSpace(accountID) == "" {
		accountID = c.fallbackAccountID
	}
	form.Set("accountId", accountID)
	form.Set("includeFavorited", "true")
	form.Set("includeLiked", "true")
	form.Set("includeRating", "true")
	return form
}

func (c *Client) post(ctx context.Context, path string, form url.Values, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "media-platform-gateway/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sirqul: status %d body=%q", resp.StatusCode, string(b[:min(len(b), 200)]))
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return fmt.Errorf("sirqul: decode error: %w body=%q", err, string(b[:min(len(b), 200)]))
	}
	return nil
}

// memoKey hashes the encoded form (url.Values.Encode sorts keys, so
// equivalent requests always produce the same key).
func memoKey(op string, form url.Values) string {
	sum := sha1.Sum([]byte(form.Encode()))
	return "sirqul:" + op + ":" + hex.EncodeToString(sum[:])
}
