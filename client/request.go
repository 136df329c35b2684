package client

import (
	"bytes"
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/octabyte/bm-blogclient/otel"
)

// fileUpload buffers the file content so a replay after a token
// refresh sends exactly the same bytes.
type fileUpload struct {
	field    string
	filename string
	content  []byte
}

// requestSpec carries everything needed to execute a request and, if
// a refresh succeeds, to replay it identically.
type requestSpec struct {
	method   string
	path     string
	query    map[string]string
	body     interface{}
	formData map[string]string
	file     *fileUpload
	out      interface{}
}

// do runs the request through the full pipeline. Outcomes per attempt:
// transport failure (reads were already retried once by resty),
// 401 on a first attempt (join the shared refresh, replay once),
// any other error status (returned verbatim), or success.
func (c *Client) do(ctx context.Context, spec requestSpec) (*resty.Response, error) {
	ctx, finish := otel.StartHTTPSpan(ctx, spec.method+" "+spec.path, spec.method, c.baseURL, spec.path)

	resp, err := c.execute(ctx, spec, false)
	if err != nil {
		finish(0, err)
		return nil, err
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		zap.L().Debug("request unauthorized, refreshing access token",
			zap.String("method", spec.method),
			zap.String("path", spec.path),
		)

		if _, rerr := c.refresher.Refresh(ctx); rerr != nil {
			finish(resp.StatusCode(), rerr)
			return nil, rerr
		}

		// Exactly one replay; a second 401 falls through below.
		resp, err = c.execute(ctx, spec, true)
		if err != nil {
			finish(0, err)
			return nil, err
		}
	}

	if resp.IsError() {
		apiErr := newAPIError(resp)
		finish(resp.StatusCode(), nil)
		return resp, apiErr
	}

	if derr := c.decode(resp, spec.out); derr != nil {
		finish(resp.StatusCode(), derr)
		return resp, derr
	}

	finish(resp.StatusCode(), nil)
	return resp, nil
}

// execute performs a single send. replayed requests are excluded from
// the transient retry condition so a logical request is never retried
// more than twice in total across both recovery paths.
func (c *Client) execute(ctx context.Context, spec requestSpec, replayed bool) (*resty.Response, error) {
	if replayed {
		ctx = markReplayed(ctx)
	}

	req := c.rc.R().SetContext(ctx)

	if len(spec.query) > 0 {
		req.SetQueryParams(spec.query)
	}
	if spec.body != nil {
		req.SetBody(spec.body)
	}
	if len(spec.formData) > 0 {
		req.SetFormData(spec.formData)
	}
	if spec.file != nil {
		req.SetFileReader(spec.file.field, spec.file.filename, bytes.NewReader(spec.file.content))
	}

	resp, err := req.Execute(spec.method, spec.path)
	if err != nil {
		return nil, &TransportError{Method: spec.method, URL: c.baseURL + spec.path, Err: err}
	}
	return resp, nil
}

func (c *Client) decode(resp *resty.Response, out interface{}) error {
	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &DecodeError{URL: resp.Request.URL, Err: err}
	}
	return nil
}
