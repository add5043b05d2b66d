package files

import (
	"context"
	"time"

	"vet-records/internal/platform/httpclient"
)

// Remote resuelve referencias http(s) con el cliente HTTP compartido.
type Remote struct {
	client  *httpclient.Client
	timeout time.Duration
}

func NewRemote(c *httpclient.Client, timeout time.Duration) *Remote {
	if c == nil {
		c = httpclient.New(timeout)
	}
	if timeout <= 0 {
		timeout = httpclient.DefaultTimeout
	}
	return &Remote{client: c, timeout: timeout}
}

func (r *Remote) Exists(ref string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	return r.client.Head(ctx, ref) == nil
}

func (r *Remote) ReadBytes(ref string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	return r.client.GetBytes(ctx, ref)
}
