package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/nguyentantai21042004/lecture-notes/internal/metrics"
)

const (
	maxResponseBytes = 4 << 20
	maxErrorBody     = 512
)

// inferenceResponse covers both the success body {"text": ...} and the
// loading/error body {"error": ..., "estimated_time": ...}.
type inferenceResponse struct {
	Text          string          `json:"text"`
	Error         json.RawMessage `json:"error"`
	EstimatedTime *float64        `json:"estimated_time"`
}

type attemptResult struct {
	text    string
	outcome string
	err     error
	wait    time.Duration
	final   bool
}

// Transcribe posts audio to the endpoint, retrying transient failures up to
// MaxAttempts times. No wait follows the last attempt.
func (t *implTranscriber) Transcribe(ctx context.Context, audio []byte, contentType string) (Result, error) {
	if t.cfg.Token == "" {
		return Result{}, ErrMissingToken
	}

	startTime := time.Now()
	maxAttempts := t.cfg.MaxAttempts

	var lastErr error
	lastTimedOut := false
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		t.logger.Debug(ctx, "Transcription attempt %d/%d (%d bytes)", attempt, maxAttempts, len(audio))

		res := t.attempt(ctx, audio, contentType)
		metrics.RecordAttempt(res.outcome)

		if res.err == nil {
			duration := time.Since(startTime)
			metrics.ObserveTranscription(true, duration)
			t.logger.Info(ctx, "Transcription completed in %s after %d attempt(s)", duration.Truncate(time.Millisecond), attempt)
			return Result{Text: res.text, Attempts: attempt, Duration: duration}, nil
		}
		if res.final {
			metrics.ObserveTranscription(false, time.Since(startTime))
			return Result{Attempts: attempt}, res.err
		}

		lastErr = res.err
		lastTimedOut = res.outcome == metrics.OutcomeTimeout
		if attempt == maxAttempts {
			break
		}

		if res.outcome == metrics.OutcomeLoading {
			t.logger.Info(ctx, "Model is loading, waiting %s (attempt %d/%d)", res.wait, attempt, maxAttempts)
		} else {
			t.logger.Warn(ctx, "Attempt %d/%d failed: %v; retrying in %s", attempt, maxAttempts, res.err, res.wait)
		}
		if err := t.sleep(ctx, res.wait); err != nil {
			metrics.ObserveTranscription(false, time.Since(startTime))
			return Result{Attempts: attempt}, err
		}
	}

	metrics.ObserveTranscription(false, time.Since(startTime))
	if lastTimedOut {
		return Result{Attempts: maxAttempts}, fmt.Errorf("%w after %d attempts: %w", ErrTimeout, maxAttempts, lastErr)
	}
	return Result{Attempts: maxAttempts}, fmt.Errorf("%w (%d attempts): %w", ErrRetriesExhausted, maxAttempts, lastErr)
}

// attempt performs a single request and classifies the reply.
func (t *implTranscriber) attempt(ctx context.Context, audio []byte, contentType string) attemptResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.cfg.Endpoint, bytes.NewReader(audio))
	if err != nil {
		return attemptResult{outcome: metrics.OutcomeError, err: fmt.Errorf("build request: %w", err), final: true}
	}
	req.Header.Set("Authorization", "Bearer "+t.cfg.Token)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return t.transportFailure(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return t.transportFailure(ctx, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var ir inferenceResponse
		if err := json.Unmarshal(body, &ir); err != nil {
			return attemptResult{
				outcome: metrics.OutcomeError,
				err:     fmt.Errorf("decode response: %w", err),
				wait:    t.cfg.ErrorBackoff,
			}
		}
		if msg := errorMessage(ir.Error); msg != "" {
			return attemptResult{outcome: metrics.OutcomeRemoteError, err: fmt.Errorf("%w: %s", ErrRemote, msg), final: true}
		}
		return attemptResult{outcome: metrics.OutcomeSuccess, text: strings.TrimSpace(ir.Text)}

	case http.StatusServiceUnavailable:
		return attemptResult{
			outcome: metrics.OutcomeLoading,
			err:     &StatusError{StatusCode: resp.StatusCode, Body: snippet(body)},
			wait:    t.loadingWait(body),
		}

	default:
		return attemptResult{
			outcome: metrics.OutcomeError,
			err:     &StatusError{StatusCode: resp.StatusCode, Body: snippet(body)},
			wait:    t.cfg.ErrorBackoff,
		}
	}
}

// loadingWait honours the server's estimated_time hint, capped at MaxWait,
// and falls back to LoadingBackoff when the hint is absent.
func (t *implTranscriber) loadingWait(body []byte) time.Duration {
	var ir inferenceResponse
	if err := json.Unmarshal(body, &ir); err != nil || ir.EstimatedTime == nil {
		return t.cfg.LoadingBackoff
	}
	est := time.Duration(*ir.EstimatedTime * float64(time.Second))
	if est < 0 {
		est = 0
	}
	if est > t.cfg.MaxWait {
		est = t.cfg.MaxWait
	}
	return est + t.cfg.WaitPadding
}

func (t *implTranscriber) transportFailure(ctx context.Context, err error) attemptResult {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return attemptResult{outcome: metrics.OutcomeError, err: ctxErr, final: true}
	}
	if isTimeout(err) {
		return attemptResult{outcome: metrics.OutcomeTimeout, err: err, wait: t.cfg.TimeoutBackoff}
	}
	return attemptResult{outcome: metrics.OutcomeError, err: fmt.Errorf("request: %w", err), wait: t.cfg.ErrorBackoff}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// errorMessage renders the "error" field, which is a string or a list of strings.
func errorMessage(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, "; ")
	}
	return string(raw)
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody] + "..."
	}
	return s
}
