// Package entrez provides a client for the NCBI Entrez E-utilities API,
// used to search PubMed and fetch article metadata.
package entrez

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/time/rate"
)

// Client defines the Entrez operations used by the pipeline.
type Client interface {
	// Search runs an ESearch query against PubMed and returns matching PMIDs.
	Search(ctx context.Context, query string, maxResults int) ([]string, error)
	// Fetch retrieves article metadata for a single PMID via EFetch.
	Fetch(ctx context.Context, id string) (*Article, error)
}

// Article is the parsed metadata for one PubMed article.
type Article struct {
	PMID    string
	Title   string
	Authors []ArticleAuthor
}

// ArticleAuthor is one entry from an article's author list. Affiliation is
// the first affiliation string when present.
type ArticleAuthor struct {
	Fore        string
	Last        string
	Affiliation string
}

// Option configures the Entrez client.
type Option func(*httpClient)

// WithBaseURL sets a custom E-utilities base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithAPIKey sets an NCBI API key, raising the allowed request rate.
func WithAPIKey(key string) Option {
	return func(c *httpClient) {
		c.apiKey = key
	}
}

// WithTool overrides the tool name sent with every request.
func WithTool(tool string) Option {
	return func(c *httpClient) {
		c.tool = tool
	}
}

type httpClient struct {
	email   string
	apiKey  string
	tool    string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a new Entrez client. NCBI usage policy requires a
// contact email on every request and caps anonymous callers at 3 requests
// per second (10 with an API key); the client paces itself accordingly.
func NewClient(email string, opts ...Option) Client {
	c := &httpClient{
		email:   email,
		tool:    "prospect-cli",
		baseURL: "https://eutils.ncbi.nlm.nih.gov/entrez/eutils",
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	rps := rate.Limit(3)
	if c.apiKey != "" {
		rps = 10
	}
	c.limiter = rate.NewLimiter(rps, 1)

	return c
}

// esearchResponse mirrors the retmode=json ESearch payload.
type esearchResponse struct {
	Result struct {
		Count  string   `json:"count"`
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

func (c *httpClient) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("term", query)
	params.Set("retmax", strconv.Itoa(maxResults))
	params.Set("retmode", "json")

	body, err := c.get(ctx, "/esearch.fcgi", params)
	if err != nil {
		return nil, eris.Wrap(err, "entrez: esearch")
	}

	var result esearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "entrez: unmarshal esearch response")
	}

	return result.Result.IDList, nil
}

// efetch XML shapes (PubmedArticleSet subset).
type pubmedArticleSet struct {
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	Citation medlineCitation `xml:"MedlineCitation"`
}

type medlineCitation struct {
	PMID    string       `xml:"PMID"`
	Article citedArticle `xml:"Article"`
}

type citedArticle struct {
	Title   string        `xml:"ArticleTitle"`
	Authors []citedAuthor `xml:"AuthorList>Author"`
}

type citedAuthor struct {
	LastName     string   `xml:"LastName"`
	ForeName     string   `xml:"ForeName"`
	Affiliations []string `xml:"AffiliationInfo>Affiliation"`
}

func (c *httpClient) Fetch(ctx context.Context, id string) (*Article, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("id", id)
	params.Set("retmode", "xml")

	body, err := c.get(ctx, "/efetch.fcgi", params)
	if err != nil {
		return nil, eris.Wrapf(err, "entrez: efetch %s", id)
	}

	var set pubmedArticleSet
	decoder := xml.NewDecoder(bytes.NewReader(body))
	// PubMed serves several declared charsets; decode them all.
	decoder.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return nil, eris.Wrapf(err, "entrez: unsupported charset %q", charset)
		}
		return enc.NewDecoder().Reader(input), nil
	}
	if err := decoder.Decode(&set); err != nil {
		return nil, eris.Wrapf(err, "entrez: decode efetch response for %s", id)
	}

	if len(set.Articles) == 0 {
		return nil, eris.Errorf("entrez: no article in efetch response for %s", id)
	}

	return fromXMLArticle(set.Articles[0]), nil
}

func fromXMLArticle(a pubmedArticle) *Article {
	out := &Article{
		PMID:  a.Citation.PMID,
		Title: a.Citation.Article.Title,
	}
	for _, au := range a.Citation.Article.Authors {
		author := ArticleAuthor{
			Fore: strings.TrimSpace(au.ForeName),
			Last: strings.TrimSpace(au.LastName),
		}
		if len(au.Affiliations) > 0 {
			author.Affiliation = strings.TrimSpace(au.Affiliations[0])
		}
		out.Authors = append(out.Authors, author)
	}
	return out
}

// get performs a rate-limited GET with retries on transient failures
// (429, 500, 502, 503), returning the response body.
func (c *httpClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	params.Set("tool", c.tool)
	params.Set("email", c.email)
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}
	reqURL := c.baseURL + path + "?" + params.Encode()

	const maxAttempts = 3
	backoff := 1 * time.Second

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "entrez: rate limiter")
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, eris.Wrap(err, "entrez: create request")
		}
		req.Header.Set("Accept", "application/json, text/xml")

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			if attempt < maxAttempts {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(backoff):
				}
				backoff *= 2
				continue
			}
			return nil, lastErr
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			return nil, eris.Wrap(readErr, "entrez: read response body")
		}

		if retryableStatusCode(resp.StatusCode) && attempt < maxAttempts {
			lastErr = eris.Errorf("entrez: status %d: %s", resp.StatusCode, string(body))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			continue
		}

		if resp.StatusCode != http.StatusOK {
			return nil, eris.Errorf("entrez: unexpected status %d: %s", resp.StatusCode, string(body))
		}

		return body, nil
	}

	return nil, lastErr
}

func retryableStatusCode(code int) bool {
	return code == http.StatusTooManyRequests ||
		code == http.StatusInternalServerError ||
		code == http.StatusBadGateway ||
		code == http.StatusServiceUnavailable
}
