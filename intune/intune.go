package intune

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/xerrors"

	"github.com/aquasecurity/device-eol-report/lifecycle"
	"github.com/aquasecurity/device-eol-report/utils"
)

const (
	DefaultBaseURL = "https://graph.microsoft.com/v1.0"

	tokenURLFormat     = "https://login.microsoftonline.com/%s/oauth2/v2.0/token"
	graphScope         = "https://graph.microsoft.com/.default"
	managedDevicesPath = "/deviceManagement/managedDevices"
	selectFields       = "id,deviceName,model,operatingSystem,osVersion,userDisplayName"
	retry              = 3
	defaultPageSize    = 500
)

var wait = func(i int) time.Duration {
	sleep := math.Pow(float64(i), 2) + float64(utils.RandInt()%10)
	return time.Duration(sleep) * time.Second
}

// Credentials identify an app registration allowed to read managed devices
// (DeviceManagementManagedDevices.Read.All).
type Credentials struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	// TokenURL overrides the Microsoft identity platform endpoint of the tenant.
	TokenURL string
}

// NewHTTPClient returns an HTTP client authenticating with the client credentials flow.
func NewHTTPClient(ctx context.Context, cred Credentials) *http.Client {
	tokenURL := cred.TokenURL
	if tokenURL == "" {
		tokenURL = fmt.Sprintf(tokenURLFormat, url.PathEscape(cred.TenantID))
	}
	conf := clientcredentials.Config{
		ClientID:     cred.ClientID,
		ClientSecret: cred.ClientSecret,
		TokenURL:     tokenURL,
		Scopes:       []string{graphScope},
	}
	return conf.Client(ctx)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	retry      int
	pageSize   int
	progress   bool
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithRetry(retry int) Option {
	return func(c *Client) {
		c.retry = retry
	}
}

func WithPageSize(size int) Option {
	return func(c *Client) {
		c.pageSize = size
	}
}

func WithProgress(progress bool) Option {
	return func(c *Client) {
		c.progress = progress
	}
}

func NewClient(opts ...Option) Client {
	c := Client{
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
		retry:      retry,
		pageSize:   defaultPageSize,
		progress:   true,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// ManagedDevices returns every device enrolled in the tenant, following @odata.nextLink until exhausted.
func (c Client) ManagedDevices(ctx context.Context) ([]lifecycle.Device, error) {
	log.Print("Fetching managed devices")

	bar := pb.New(0)
	finish := func() {}
	if c.progress {
		bar.Start()
		finish = func() { bar.Finish() }
	}

	var devices []lifecycle.Device
	next := c.firstPageURL()
	for next != "" {
		page, err := c.fetchPageWithRetry(ctx, next)
		if err != nil {
			finish()
			return nil, xerrors.Errorf("failed to fetch managed devices: %w", err)
		}
		if page.Count != nil {
			bar.SetTotal(int64(*page.Count))
		}
		for _, d := range page.Value {
			devices = append(devices, d.Device())
		}
		bar.Add(len(page.Value))
		next = page.NextLink
	}
	finish()

	log.Printf("Fetched %d managed devices", len(devices))
	return devices, nil
}

func (c Client) firstPageURL() string {
	q := url.Values{}
	q.Set("$select", selectFields)
	q.Set("$top", strconv.Itoa(c.pageSize))
	return c.baseURL + managedDevicesPath + "?" + q.Encode()
}

func (c Client) fetchPageWithRetry(ctx context.Context, pageURL string) (Page, error) {
	var page Page
	var err error
	for i := 0; i <= c.retry; i++ {
		if i > 0 {
			sleep := wait(i)
			log.Printf("retry after %s", sleep)
			select {
			case <-ctx.Done():
				return Page{}, ctx.Err()
			case <-time.After(sleep):
			}
		}
		page, err = c.fetchPage(ctx, pageURL)
		if err == nil {
			return page, nil
		}
	}
	return Page{}, err
}

func (c Client) fetchPage(ctx context.Context, pageURL string) (Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return Page{}, xerrors.Errorf("unable to create a request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Page{}, xerrors.Errorf("HTTP error. url: %s, err: %w", pageURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Page{}, xerrors.Errorf("unable to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return Page{}, xerrors.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, body)
	}

	var page Page
	if err = json.Unmarshal(body, &page); err != nil {
		return Page{}, xerrors.Errorf("unable to parse JSON: %w", err)
	}
	return page, nil
}
