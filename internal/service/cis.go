package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// TranscodeConfig is one target variant the CIS should produce.
type TranscodeConfig struct {
	Resolution string `json:"res"`
	Extension  string `json:"ext"`
	Bitrate    string `json:"bitrate,omitempty"`
}

// ingestRequest is the wire body of the ingest_content call.
type ingestRequest struct {
	Code             string            `json:"code"`
	RawVideo         string            `json:"raw_video"`
	Name             string            `json:"name"`
	Weight           int64             `json:"weight"`
	TranscodeConfigs []TranscodeConfig `json:"transcode_configs"`
	Thumbs           int               `json:"thumbs"`
}

// CISClient posts transcoding jobs to the external Content Ingestion
// Service. The call is a plain blocking request with an explicit timeout;
// completion is reported later through the callback endpoint, so the
// response body is ignored.
type CISClient struct {
	baseURL string
	client  *http.Client
}

func NewCISClient() *CISClient {
	timeout := viper.GetDuration("cis.timeout")
	if timeout <= 0 {
		timeout = cisCallTimeout
	}

	return &CISClient{
		baseURL: strings.TrimSuffix(viper.GetString("cis.url"), "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Ingest asks the CIS to start transcoding one staged upload. No state is
// mutated on failure and no retry happens here: the CIS deduplicates by
// activation code, so the caller may safely try again.
func (c *CISClient) Ingest(ctx context.Context, code, rawVideo, name string, weight int64, configs []TranscodeConfig, thumbs int) error {
	body, err := json.Marshal(ingestRequest{
		Code:             code,
		RawVideo:         rawVideo,
		Name:             name,
		Weight:           weight,
		TranscodeConfigs: configs,
		Thumbs:           thumbs,
	})
	if err != nil {
		return fmt.Errorf("failed to encode ingest request, %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ingest_content", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build ingest request, %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused. The body itself is opaque.
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: unexpected status %d", ErrExternalService, resp.StatusCode)
	}

	return nil
}

// DefaultTranscodeConfigs are the variants requested for every upload when
// the uploader doesn't pick any.
var DefaultTranscodeConfigs = []TranscodeConfig{
	{Resolution: "640x360", Extension: "mp4", Bitrate: "800k"},
	{Resolution: "1280x720", Extension: "mp4", Bitrate: "3000k"},
}

// cisCallTimeout bounds the dispatch round-trip when no timeout is set in
// the config.
const cisCallTimeout = 30 * time.Second
