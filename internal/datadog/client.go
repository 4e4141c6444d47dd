package datadog

import (
	"context"
	"errors"
	"net/http"
	"time"

	dd "github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV1"

	"alertstate/internal/monitor"
	"alertstate/pkg/logging"
)

const (
	defaultPageSize = 1000
	maxPageSize     = 1000
	defaultTimeout  = 30 * time.Second
)

// ErrMissingCredentials is returned by Open when either key is empty.
var ErrMissingCredentials = errors.New("datadog api key and application key are required")

// Options configures a Client.
type Options struct {
	Site     string
	APIKey   string
	AppKey   string
	PageSize int
	Timeout  time.Duration

	// Transport replaces the default HTTP transport. Tests use it to point
	// the client at a local server.
	Transport http.RoundTripper
}

// Client is an authenticated Datadog session.
type Client struct {
	api        *datadogV1.MonitorsApi
	httpClient *http.Client
	site       string
	apiKey     string
	appKey     string
	pageSize   int
}

// Open creates a session for the configured site.
func Open(opts Options) (*Client, error) {
	if opts.APIKey == "" || opts.AppKey == "" {
		return nil, ErrMissingCredentials
	}
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	opts.PageSize = min(opts.PageSize, maxPageSize)
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	httpClient := &http.Client{Timeout: opts.Timeout}
	if opts.Transport != nil {
		httpClient.Transport = opts.Transport
	}

	cfg := dd.NewConfiguration()
	cfg.HTTPClient = httpClient

	logging.Debug("Datadog", "Opened session for site %s", opts.Site)

	return &Client{
		api:        datadogV1.NewMonitorsApi(dd.NewAPIClient(cfg)),
		httpClient: httpClient,
		site:       opts.Site,
		apiKey:     opts.APIKey,
		appKey:     opts.AppKey,
		pageSize:   opts.PageSize,
	}, nil
}

// Close releases idle connections held by the session.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	logging.Debug("Datadog", "Closed session for site %s", c.site)
	return nil
}

func (c *Client) withAuth(ctx context.Context) context.Context {
	ctx = context.WithValue(ctx, dd.ContextAPIKeys, map[string]dd.APIKey{
		"apiKeyAuth": {Key: c.apiKey},
		"appKeyAuth": {Key: c.appKey},
	})
	if c.site != "" {
		ctx = context.WithValue(ctx, dd.ContextServerVariables, map[string]string{
			"site": c.site,
		})
	}
	return ctx
}

// ListMonitors returns every monitor tagged with project, in the order the
// API returns them. Pages are requested until a short page comes back.
func (c *Client) ListMonitors(ctx context.Context, project string) ([]monitor.Record, error) {
	ctx = c.withAuth(ctx)

	var records []monitor.Record
	for page := int64(0); ; page++ {
		params := datadogV1.NewListMonitorsOptionalParameters().
			WithMonitorTags(project).
			WithPage(page).
			WithPageSize(int32(c.pageSize))

		monitors, resp, err := c.api.ListMonitors(ctx, *params)
		if err != nil {
			return nil, classify(err, resp)
		}

		for _, m := range monitors {
			record, err := fromMonitor(m)
			if err != nil {
				return nil, err
			}
			// monitor_tags also matches service tags, so filter on the
			// plain tag as well.
			if !record.HasTag(project) {
				continue
			}
			records = append(records, record)
		}

		if len(monitors) < c.pageSize {
			break
		}
	}

	logging.Debug("Datadog", "Listed %d monitors tagged %s", len(records), project)
	return records, nil
}

// CreateMonitor creates a monitor from the record's payload and returns the
// created monitor.
func (c *Client) CreateMonitor(ctx context.Context, record monitor.Record) (monitor.Record, error) {
	body, err := toMonitor(record.Payload())
	if err != nil {
		return monitor.Record{}, err
	}

	created, resp, err := c.api.CreateMonitor(c.withAuth(ctx), body)
	if err != nil {
		return monitor.Record{}, classify(err, resp)
	}
	return fromMonitor(created)
}

// UpdateMonitor replaces the monitor with the given id by the record's payload.
func (c *Client) UpdateMonitor(ctx context.Context, id int64, record monitor.Record) (monitor.Record, error) {
	body, err := toUpdateRequest(record.Payload())
	if err != nil {
		return monitor.Record{}, err
	}

	updated, resp, err := c.api.UpdateMonitor(c.withAuth(ctx), id, body)
	if err != nil {
		return monitor.Record{}, classify(err, resp)
	}
	return fromMonitor(updated)
}

// DeleteMonitor removes the monitor with the given id.
func (c *Client) DeleteMonitor(ctx context.Context, id int64) error {
	_, resp, err := c.api.DeleteMonitor(c.withAuth(ctx), id)
	if err != nil {
		return classify(err, resp)
	}
	return nil
}
