// AngelaMos | 2026
// client.go

package media

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const uploadTimeout = 30 * time.Second

// Client proxies image uploads to Cloudinary so the API secret never
// leaves the server.
type Client struct {
	signer     *Signer
	httpClient *http.Client
	baseURL    string
}

func NewClient(signer *Signer) *Client {
	return &Client{
		signer:     signer,
		httpClient: &http.Client{Timeout: uploadTimeout},
		baseURL:    "https://api.cloudinary.com/v1_1",
	}
}

type UploadResult struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Format    string `json:"format"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Bytes     int    `json:"bytes"`
}

type uploadError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends a base64 data URI to Cloudinary's image upload endpoint
// with a server-side signature.
func (c *Client) Upload(
	ctx context.Context,
	imageData string,
) (*UploadResult, error) {
	timestamp := time.Now().Unix()
	folder := c.signer.Folder()

	form := url.Values{}
	form.Set("file", imageData)
	form.Set("api_key", c.signer.APIKey())
	form.Set("timestamp", fmt.Sprintf("%d", timestamp))
	form.Set("signature", c.signer.SignUpload(timestamp, folder))
	if folder != "" {
		form.Set("folder", folder)
	}

	endpoint := fmt.Sprintf(
		"%s/%s/image/upload",
		c.baseURL,
		c.signer.CloudName(),
	)

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		endpoint,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read upload response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr uploadError
		if jsonErr := json.Unmarshal(body, &apiErr); jsonErr == nil &&
			apiErr.Error.Message != "" {
			return nil, fmt.Errorf(
				"cloudinary upload failed: %s",
				apiErr.Error.Message,
			)
		}
		return nil, fmt.Errorf(
			"cloudinary upload failed with status %d",
			resp.StatusCode,
		)
	}

	var result UploadResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}

	return &result, nil
}
