// Package videoapi implements the video-generation provider client: job
// submission plus the status poll loop that drives a job to a terminal state.
package videoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ammahealth/explainer-backend/internal/domain/entities"
	"github.com/ammahealth/explainer-backend/internal/infrastructure/observability"
	"github.com/ammahealth/explainer-backend/pkg/config"
	apperrors "github.com/ammahealth/explainer-backend/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	defaultPollInterval = 3 * time.Second
	defaultPollTimeout  = 5 * time.Minute
)

// Client talks to the video-generation provider.
type Client struct {
	endpoint     string
	apiKey       string
	avatarID     string
	voiceID      string
	pollInterval time.Duration
	pollTimeout  time.Duration
	httpClient   *http.Client
}

// NewClient creates a new video provider client.
func NewClient(cfg *config.VideoAPIConfig) (*Client, error) {
	if cfg == nil || cfg.Endpoint == "" {
		return nil, errors.New("video api endpoint is required")
	}

	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	pollTimeout := cfg.PollTimeout
	if pollTimeout <= 0 {
		pollTimeout = defaultPollTimeout
	}

	return &Client{
		endpoint:     strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:       cfg.APIKey,
		avatarID:     cfg.AvatarID,
		voiceID:      cfg.VoiceID,
		pollInterval: pollInterval,
		pollTimeout:  pollTimeout,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

type submitResponse struct {
	ID string `json:"id"`
}

// GenerateVideo submits a job and polls until a terminal state. Submission
// failures are fatal at this layer; retrying a rejected job is caller policy.
func (c *Client) GenerateVideo(ctx context.Context, script *entities.ScriptPayload, metadata map[string]string) (*entities.VideoJobResult, error) {
	jobID, err := c.submit(ctx, script, metadata)
	if err != nil {
		return nil, err
	}
	return c.pollUntilTerminal(ctx, jobID)
}

func (c *Client) submit(ctx context.Context, script *entities.ScriptPayload, metadata map[string]string) (string, error) {
	payload := map[string]interface{}{
		"script":   script,
		"metadata": metadata,
	}
	if c.avatarID != "" {
		payload["avatar_id"] = c.avatarID
	}
	if c.voiceID != "" {
		payload["voice_id"] = c.voiceID
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", apperrors.NewSubmissionError("failed to encode job spec", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/videos", bytes.NewReader(body))
	if err != nil {
		return "", apperrors.NewSubmissionError("failed to build submit request", err)
	}
	c.setHeaders(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordVideoMetric(ctx, "submit", 0, time.Since(start), err)
		return "", apperrors.NewSubmissionError("video provider submit request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		recordVideoMetric(ctx, "submit", resp.StatusCode, time.Since(start), fmt.Errorf("status %d", resp.StatusCode))
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", apperrors.NewSubmissionError(
			fmt.Sprintf("video provider rejected job with status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail))), nil)
	}

	var submitted submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&submitted); err != nil {
		recordVideoMetric(ctx, "submit", resp.StatusCode, time.Since(start), err)
		return "", apperrors.NewSubmissionError("malformed submit response", err)
	}
	if submitted.ID == "" {
		recordVideoMetric(ctx, "submit", resp.StatusCode, time.Since(start), errors.New("missing job id"))
		return "", apperrors.NewSubmissionError("submit response missing job id", nil)
	}

	recordVideoMetric(ctx, "submit", resp.StatusCode, time.Since(start), nil)
	return submitted.ID, nil
}

// pollUntilTerminal fetches job status at a fixed interval until the job
// completes, fails, or the elapsed-time ceiling is exceeded. Transient
// request failures are retried within the same ceiling; only a
// provider-reported failure is terminal.
func (c *Client) pollUntilTerminal(ctx context.Context, jobID string) (*entities.VideoJobResult, error) {
	logger := observability.LoggerFromContext(ctx)
	deadline := time.Now().Add(c.pollTimeout)
	attempts := 0

	for {
		if time.Now().After(deadline) {
			recordVideoPollAttempts(ctx, attempts, "timeout")
			return nil, apperrors.NewPollTimeoutError(
				fmt.Sprintf("video generation timed out for job %s after %s", jobID, c.pollTimeout))
		}

		attempts++
		job, err := c.fetchJob(ctx, jobID)
		switch {
		case err != nil && ctx.Err() != nil:
			// Caller abandoned the request; stop polling promptly.
			return nil, fmt.Errorf("polling cancelled for job %s: %w", jobID, ctx.Err())
		case err != nil:
			// Transient: we failed to ask, the job itself did not fail.
			logger.Warn().
				Str("job_id", jobID).
				Int("attempt", attempts).
				Err(err).
				Msg("video status poll failed, retrying")
		case job.Status == entities.VideoJobStatusCompleted:
			recordVideoPollAttempts(ctx, attempts, "completed")
			return c.resolveResult(ctx, job)
		case job.Status == entities.VideoJobStatusFailed:
			recordVideoPollAttempts(ctx, attempts, "failed")
			detail := job.Error
			if detail == "" {
				detail = "provider reported failure without detail"
			}
			return nil, apperrors.NewPollFailedError(
				fmt.Sprintf("video generation failed for job %s", jobID), errors.New(detail))
		default:
			// queued, processing, or unrecognized: keep polling.
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("polling cancelled for job %s: %w", jobID, ctx.Err())
		case <-time.After(c.pollInterval):
		}
	}
}

func (c *Client) fetchJob(ctx context.Context, jobID string) (*entities.VideoJob, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/videos/"+jobID, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordVideoMetric(ctx, "poll", 0, time.Since(start), err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("status poll returned %d", resp.StatusCode)
		recordVideoMetric(ctx, "poll", resp.StatusCode, time.Since(start), err)
		return nil, err
	}

	var job entities.VideoJob
	if err := json.NewDecoder(resp.Body).Decode(&job); err != nil {
		recordVideoMetric(ctx, "poll", resp.StatusCode, time.Since(start), err)
		return nil, fmt.Errorf("malformed status response: %w", err)
	}
	if job.ID == "" {
		job.ID = jobID
	}

	recordVideoMetric(ctx, "poll", resp.StatusCode, time.Since(start), nil)
	return &job, nil
}

// resolveResult normalizes the two completion shapes providers use: a
// directly fetchable video URL, or a content endpoint whose bytes must be
// downloaded into a temporary file.
func (c *Client) resolveResult(ctx context.Context, job *entities.VideoJob) (*entities.VideoJobResult, error) {
	result := &entities.VideoJobResult{
		JobID:        job.ID,
		ThumbnailURL: job.ThumbnailURL,
	}

	switch {
	case job.ResultURL != "":
		result.URL = job.ResultURL
	case job.DownloadURL != "":
		path, err := c.downloadToTemp(ctx, job.DownloadURL)
		if err != nil {
			return nil, apperrors.NewUpstreamContractError(
				fmt.Sprintf("failed to download completed video for job %s: %v", job.ID, err))
		}
		result.LocalPath = path
	default:
		return nil, apperrors.NewUpstreamContractError(
			fmt.Sprintf("completed job %s carries no video reference", job.ID))
	}

	return result, nil
}

func (c *Client) downloadToTemp(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("content download returned %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "explainer-video-*.mp4")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

func (c *Client) setHeaders(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if req.Method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}
}

type videoMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
	pollAttempts    metric.Int64Histogram
}

var videoMetricsInit = false
var videoAPIMetrics videoMetrics

func ensureVideoMetrics() {
	if videoMetricsInit {
		return
	}
	meter := otel.Meter("github.com/ammahealth/explainer-backend/videoapi")

	requestCount, err := meter.Int64Counter(
		"video.provider.request.count",
		metric.WithDescription("Number of video provider requests"),
	)
	if err != nil {
		return
	}
	requestDuration, err := meter.Float64Histogram(
		"video.provider.request.duration",
		metric.WithDescription("Video provider request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}
	requestErrors, err := meter.Int64Counter(
		"video.provider.request.errors",
		metric.WithDescription("Number of video provider request errors"),
	)
	if err != nil {
		return
	}
	pollAttempts, err := meter.Int64Histogram(
		"video.provider.poll.attempts",
		metric.WithDescription("Poll attempts per job until a terminal outcome"),
	)
	if err != nil {
		return
	}

	videoAPIMetrics = videoMetrics{
		requestCount:    requestCount,
		requestDuration: requestDuration,
		requestErrors:   requestErrors,
		pollAttempts:    pollAttempts,
	}
	videoMetricsInit = true
}

func recordVideoMetric(ctx context.Context, operation string, statusCode int, duration time.Duration, err error) {
	ensureVideoMetrics()
	if !videoMetricsInit {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("video.operation", operation),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	videoAPIMetrics.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	videoAPIMetrics.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		videoAPIMetrics.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

func recordVideoPollAttempts(ctx context.Context, attempts int, outcome string) {
	ensureVideoMetrics()
	if !videoMetricsInit {
		return
	}
	videoAPIMetrics.pollAttempts.Record(ctx, int64(attempts), metric.WithAttributes(
		attribute.String("video.poll.outcome", outcome),
	))
}
