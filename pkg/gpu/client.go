// Package gpu is a read-only client for the Géoportail de l'Urbanisme API.
package gpu

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

const (
	// DefaultBaseURL is the public GPU API endpoint.
	DefaultBaseURL = "https://www.geoportail-urbanisme.gouv.fr/api"

	// DefaultTimeout bounds every upstream request.
	DefaultTimeout = 30 * time.Second
)

// Client exposes the GPU API endpoints used by the tool layer.
type Client interface {
	SearchGrids(ctx context.Context, q GridSearch) ([]Grid, error)
	GridDetails(ctx context.Context, code string) (map[string]any, error)
	GridParents(ctx context.Context, code string) ([]map[string]any, error)
	GridChildren(ctx context.Context, code string) ([]map[string]any, error)

	SearchDocuments(ctx context.Context, q DocumentSearch) ([]Document, error)
	DocumentDetails(ctx context.Context, id string) (map[string]any, error)
	DocumentFiles(ctx context.Context, id string) ([]File, error)

	Procedures(ctx context.Context, gridCode string, q ProcedureSearch) ([]Procedure, error)

	Models(ctx context.Context, documentType string, abstract *bool) ([]Model, error)
	Model(ctx context.Context, name string) (*Model, error)
	SupCategories(ctx context.Context) ([]Category, error)
	DuCategories(ctx context.Context) ([]Category, error)

	FeatureInfoDU(ctx context.Context, q PointQuery) (*FeatureCollection, error)
	FeatureInfoSUP(ctx context.Context, q PointQuery) (*FeatureCollection, error)
	FeatureInfoSCOT(ctx context.Context, lon, lat float64) (*FeatureCollection, error)
	ParcelFeatures(ctx context.Context, parcelID string) (*FeatureCollection, error)
}

// GridSearch holds territory search filters. Zero values mean "no filter".
type GridSearch struct {
	Code     string
	Title    string
	Types    []string
	RNU      *bool
	Approved *bool
	Limit    int
	Offset   int
}

// DocumentSearch holds document search filters.
type DocumentSearch struct {
	Families      []string
	Types         []string
	Partition     string
	Status        string
	UploadedAfter string
	Limit         int
	Offset        int
}

// ProcedureSearch holds procedure search filters for one territory.
type ProcedureSearch struct {
	DocumentType  string
	ProcedureType string
	ApprovedAfter string
	Limit         int
	Offset        int
}

// PointQuery is a lon/lat lookup with optional filters.
type PointQuery struct {
	Lon       float64
	Lat       float64
	TypeName  string
	Partition string
	Category  string
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(base string) Option {
	return func(c *httpClient) {
		c.baseURL = strings.TrimRight(base, "/")
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		c.http.Timeout = d
	}
}

// WithHTTPClient overrides the default http.Client. The configured timeout
// is applied to the provided client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		timeout := c.http.Timeout
		c.http = hc
		if c.http.Timeout == 0 {
			c.http.Timeout = timeout
		}
	}
}

type httpClient struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a GPU API client. Configuration is immutable after
// construction; concurrent use is safe.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs a GET against path, decoding the JSON response into out.
func (c *httpClient) get(ctx context.Context, path string, q *Query, out any) error {
	reqURL := c.baseURL + path
	if encoded := q.Encode(); encoded != "" {
		reqURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return eris.Wrap(err, "gpu: build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "gpu: request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "gpu: read body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Status: resp.StatusCode, Message: errorMessage(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return eris.Wrapf(err, "gpu: decode %s response", path)
	}
	return nil
}

// errorMessage extracts the "message" field from an error body, if any.
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return strings.TrimSpace(string(body))
}

func (c *httpClient) SearchGrids(ctx context.Context, q GridSearch) ([]Grid, error) {
	query := &Query{}
	query.Set("name", q.Code).
		Set("title", q.Title).
		SetList("type", q.Types)
	if q.RNU != nil {
		query.SetBool("rnu", *q.RNU)
	}
	if q.Approved != nil {
		query.SetBool("approved", *q.Approved)
	}
	addPagination(query, q.Limit, q.Offset)

	var grids []Grid
	if err := c.get(ctx, "/grid/", query, &grids); err != nil {
		return nil, err
	}
	return grids, nil
}

func (c *httpClient) GridDetails(ctx context.Context, code string) (map[string]any, error) {
	var grid map[string]any
	if err := c.get(ctx, "/grid/"+url.PathEscape(code), nil, &grid); err != nil {
		return nil, err
	}
	return grid, nil
}

func (c *httpClient) GridParents(ctx context.Context, code string) ([]map[string]any, error) {
	var grids []map[string]any
	if err := c.get(ctx, "/grid/"+url.PathEscape(code)+"/parents", nil, &grids); err != nil {
		return nil, err
	}
	return grids, nil
}

func (c *httpClient) GridChildren(ctx context.Context, code string) ([]map[string]any, error) {
	var grids []map[string]any
	if err := c.get(ctx, "/grid/"+url.PathEscape(code)+"/children", nil, &grids); err != nil {
		return nil, err
	}
	return grids, nil
}

func (c *httpClient) SearchDocuments(ctx context.Context, q DocumentSearch) ([]Document, error) {
	query := &Query{}
	query.SetList("documentFamily", q.Families).
		SetList("documentType", q.Types).
		Set("partition", q.Partition).
		Set("status", q.Status).
		Set("uploadDateAfter", q.UploadedAfter)
	addPagination(query, q.Limit, q.Offset)

	var docs []Document
	if err := c.get(ctx, "/document", query, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (c *httpClient) DocumentDetails(ctx context.Context, id string) (map[string]any, error) {
	var doc map[string]any
	if err := c.get(ctx, "/document/"+url.PathEscape(id)+"/details", nil, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *httpClient) DocumentFiles(ctx context.Context, id string) ([]File, error) {
	var files []File
	if err := c.get(ctx, "/document/"+url.PathEscape(id)+"/files", nil, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (c *httpClient) Procedures(ctx context.Context, gridCode string, q ProcedureSearch) ([]Procedure, error) {
	query := &Query{}
	query.Set("documentType", q.DocumentType).
		Set("procedureType", q.ProcedureType).
		Set("approvedAfter", q.ApprovedAfter)
	addPagination(query, q.Limit, q.Offset)

	var procs []Procedure
	if err := c.get(ctx, "/"+url.PathEscape(gridCode)+"/procedures", query, &procs); err != nil {
		return nil, err
	}
	return procs, nil
}

func (c *httpClient) Models(ctx context.Context, documentType string, abstract *bool) ([]Model, error) {
	query := &Query{}
	query.Set("documentType", documentType)
	if abstract != nil {
		query.SetBool("abstract", *abstract)
	}

	var models []Model
	if err := c.get(ctx, "/standard", query, &models); err != nil {
		return nil, err
	}
	return models, nil
}

func (c *httpClient) Model(ctx context.Context, name string) (*Model, error) {
	var model Model
	if err := c.get(ctx, "/standard/"+url.PathEscape(name), nil, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

func (c *httpClient) SupCategories(ctx context.Context) ([]Category, error) {
	var cats []Category
	if err := c.get(ctx, "/standard/sup-categories", nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (c *httpClient) DuCategories(ctx context.Context) ([]Category, error) {
	var cats []Category
	if err := c.get(ctx, "/standard/du-categories", nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (c *httpClient) FeatureInfoDU(ctx context.Context, q PointQuery) (*FeatureCollection, error) {
	query := pointQuery(q.Lon, q.Lat)
	query.Set("typeName", q.TypeName).
		Set("partition", q.Partition)
	return c.featureInfo(ctx, "/feature-info/du", query)
}

func (c *httpClient) FeatureInfoSUP(ctx context.Context, q PointQuery) (*FeatureCollection, error) {
	query := pointQuery(q.Lon, q.Lat)
	query.Set("category", q.Category)
	return c.featureInfo(ctx, "/feature-info/sup", query)
}

func (c *httpClient) FeatureInfoSCOT(ctx context.Context, lon, lat float64) (*FeatureCollection, error) {
	return c.featureInfo(ctx, "/feature-info/scot", pointQuery(lon, lat))
}

func (c *httpClient) ParcelFeatures(ctx context.Context, parcelID string) (*FeatureCollection, error) {
	return c.featureInfo(ctx, "/feature-info/parcel/"+url.PathEscape(parcelID), nil)
}

func (c *httpClient) featureInfo(ctx context.Context, path string, q *Query) (*FeatureCollection, error) {
	var raw map[string]any
	if err := c.get(ctx, path, q, &raw); err != nil {
		return nil, err
	}
	fc := PruneFeatureCollection(raw)
	return &fc, nil
}

func pointQuery(lon, lat float64) *Query {
	q := &Query{}
	q.SetFloat("lon", lon).SetFloat("lat", lat)
	return q
}

// addPagination appends limit/offset when set. Offset 0 with a set limit is
// still sent so pages stay explicit.
func addPagination(q *Query, limit, offset int) {
	if limit > 0 {
		q.SetInt("limit", limit)
		q.SetInt("offset", offset)
	}
}
