package workspace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	defaultBaseURL    = "https://api.notion.com"
	defaultAPIVersion = "2022-06-28"
)

// NotionClient implements Client against the Notion REST API. It performs no
// retries of its own.
type NotionClient struct {
	baseURL    string
	token      string
	apiVersion string
	httpClient *http.Client
}

type NotionClientOptions struct {
	BaseURL    string
	Token      string
	APIVersion string
	HTTPClient *http.Client
}

func NewNotionClient(opts NotionClientOptions) (*NotionClient, error) {
	token := strings.TrimSpace(opts.Token)
	if token == "" {
		return nil, fmt.Errorf("notion token is required")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	apiVersion := strings.TrimSpace(opts.APIVersion)
	if apiVersion == "" {
		apiVersion = defaultAPIVersion
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	return &NotionClient{
		baseURL:    baseURL,
		token:      token,
		apiVersion: apiVersion,
		httpClient: httpClient,
	}, nil
}

func (c *NotionClient) ReadSchema(ctx context.Context, databaseID string) (Schema, error) {
	var resp struct {
		Properties map[string]struct {
			Type   string `json:"type"`
			Select struct {
				Options []FieldOption `json:"options"`
			} `json:"select"`
		} `json:"properties"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/databases/"+databaseID, nil, &resp); err != nil {
		return nil, err
	}

	schema := make(Schema, len(resp.Properties))
	for name, prop := range resp.Properties {
		schema[name] = FieldDescriptor{Type: prop.Type, Options: prop.Select.Options}
	}
	return schema, nil
}

func (c *NotionClient) CreateRecord(ctx context.Context, databaseID string, fields map[string]any) (string, error) {
	body := map[string]any{
		"parent":     map[string]any{"database_id": databaseID},
		"properties": fields,
	}
	var resp struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/pages", body, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *NotionClient) TestConnection(ctx context.Context) bool {
	if err := c.do(ctx, http.MethodGet, "/v1/users/me", nil, nil); err != nil {
		log.Warnf("workspace connection test failed: %v", err)
		return false
	}
	return true
}

func (c *NotionClient) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", c.apiVersion)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
		var parsed struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &parsed) == nil {
			apiErr.Code = parsed.Code
			if strings.TrimSpace(parsed.Message) != "" {
				apiErr.Message = parsed.Message
			}
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode workspace response: %w", err)
		}
	}
	return nil
}
