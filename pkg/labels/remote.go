package labels

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/deckgrid/deckgrid/pkg/errors"
	"github.com/deckgrid/deckgrid/pkg/httputil"
)

const remoteTimeout = 10 * time.Second

// Remote calls an external label-generation service over HTTP. Requests are
// retried with backoff on transient failures; persistent failures surface as
// coded errors for the caller (usually a fallback wrapper) to handle.
type Remote struct {
	http    *http.Client
	baseURL string
}

var _ Engine = (*Remote)(nil)

// NewRemote creates a Remote engine for the service at baseURL. Pass nil for
// client to use a default with a standard timeout.
func NewRemote(baseURL string, client *http.Client) *Remote {
	if client == nil {
		client = &http.Client{Timeout: remoteTimeout}
	}
	return &Remote{http: client, baseURL: baseURL}
}

type remoteTask struct {
	Task string `json:"task"`
	DifferenceRequest
	CAGRRequest
}

// DifferenceLabel requests a difference label from the service.
func (r *Remote) DifferenceLabel(ctx context.Context, req DifferenceRequest) (DifferenceLabel, error) {
	var out DifferenceLabel
	err := r.post(ctx, remoteTask{Task: "generate_difference_label", DifferenceRequest: req}, &out)
	return out, err
}

// CAGRLabel requests a growth-arrow label from the service.
func (r *Remote) CAGRLabel(ctx context.Context, req CAGRRequest) (string, error) {
	var out struct {
		Label string `json:"label"`
	}
	err := r.post(ctx, remoteTask{Task: "generate_cagr_label", CAGRRequest: req}, &out)
	return out.Label, err
}

func (r *Remote) post(ctx context.Context, task remoteTask, v any) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encoding %s request", task.Task)
	}

	return httputil.RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/labels", bytes.NewReader(payload))
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "building %s request", task.Task)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := r.http.Do(req)
		if err != nil {
			return errors.Wrap(errors.ErrCodeNetwork, err, "calling label service")
		}
		defer resp.Body.Close()

		if err := checkStatus(resp.StatusCode); err != nil {
			return err
		}
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "decoding %s response", task.Task)
		}
		return nil
	})
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "label service endpoint not found")
	case code >= 500:
		return errors.New(errors.ErrCodeNetwork, "label service status %d", code)
	default:
		return errors.New(errors.ErrCodeInvalidInput, "label service status %d", code)
	}
}
