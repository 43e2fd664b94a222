package tracker

import (
	"bytes"
	"io"
	"net/http"
	"sync"

	"github.com/danmuck/asayer/internal/observability"
)

type fetchRecord struct {
	Resource string  `json:"resource"`
	Payload  *string `json:"payload"`
	Method   string  `json:"method"`
	Start    int64   `json:"start"`
	End      int64   `json:"end"`
	Status   int     `json:"status"`
	Response string  `json:"response"`
}

// Fetch sends req through the client's HTTP client with interception.
func (c *Client) Fetch(req *http.Request) (*http.Response, error) {
	return c.fetchClient.Do(req)
}

// RoundTripper wraps base so requests carry the session header and are
// reported as fetch events. A nil base means http.DefaultTransport.
func (c *Client) RoundTripper(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &fetchTripper{client: c, base: base}
}

type fetchTripper struct {
	client *Client
	base   http.RoundTripper
}

func (t *fetchTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	c := t.client
	if !c.ready("fetch") {
		return t.base.RoundTrip(req)
	}

	out := req.Clone(req.Context())
	if out.Header == nil {
		out.Header = make(http.Header)
	}
	if id, ok := c.sessionID().Active(); ok {
		out.Header.Set(c.SessionIDHeader(), id)
	}
	payload, err := c.captureRequestBody(req, out)
	if err != nil {
		if req.Body != nil {
			req.Body.Close()
		}
		return nil, err
	}

	method := out.Method
	if method == "" {
		method = http.MethodGet
	}
	start := c.now()
	resp, err := t.base.RoundTrip(out)
	if err != nil {
		return nil, err
	}
	end := c.now()
	observability.RecordFetch(method, resp.StatusCode, end.Sub(start))

	record := fetchRecord{
		Resource: req.URL.String(),
		Payload:  payload,
		Method:   method,
		Start:    start.UnixMilli(),
		End:      end.UnixMilli(),
		Status:   resp.StatusCode,
	}
	body := resp.Body
	if body == nil {
		body = http.NoBody
	}
	resp.Body = &teeBody{
		ReadCloser: body,
		limit:      c.maxBody,
		done: func(text string) {
			record.Response = text
			c.emit(FetchEventName, record)
		},
	}
	return resp, nil
}

// captureRequestBody snapshots the outgoing body. A replayable body is read
// through GetBody; otherwise it is buffered and out gets a fresh reader.
func (c *Client) captureRequestBody(req, out *http.Request) (*string, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}
	if req.GetBody != nil {
		rc, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		data, err := io.ReadAll(io.LimitReader(rc, c.maxBody))
		if err != nil {
			return nil, err
		}
		s := string(data)
		return &s, nil
	}
	data, err := io.ReadAll(req.Body)
	req.Body.Close()
	if err != nil {
		return nil, err
	}
	out.Body = io.NopCloser(bytes.NewReader(data))
	out.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}
	if int64(len(data)) > c.maxBody {
		data = data[:c.maxBody]
	}
	s := string(data)
	return &s, nil
}

// teeBody keeps a bounded copy of what the caller reads and hands it to done
// once, on EOF or Close, from a new goroutine.
type teeBody struct {
	io.ReadCloser
	limit int64
	done  func(string)

	mu   sync.Mutex
	buf  bytes.Buffer
	once sync.Once
}

func (b *teeBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	if n > 0 {
		b.mu.Lock()
		if room := b.limit - int64(b.buf.Len()); room > 0 {
			chunk := p[:n]
			if int64(len(chunk)) > room {
				chunk = chunk[:room]
			}
			b.buf.Write(chunk)
		}
		b.mu.Unlock()
	}
	if err == io.EOF {
		b.finish()
	}
	return n, err
}

func (b *teeBody) Close() error {
	err := b.ReadCloser.Close()
	b.finish()
	return err
}

func (b *teeBody) finish() {
	b.once.Do(func() {
		b.mu.Lock()
		text := b.buf.String()
		b.mu.Unlock()
		go b.done(text)
	})
}
