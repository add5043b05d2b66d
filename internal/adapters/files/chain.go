package files

import (
	"vet-records/internal/platform/httpclient"
	portfiles "vet-records/internal/ports/files"
)

// Chain envía las URLs al resolver remoto y el resto al local.
type Chain struct {
	Local  portfiles.Resolver
	Remote portfiles.Resolver
}

var _ portfiles.Resolver = (*Chain)(nil)

func (c *Chain) pick(ref string) portfiles.Resolver {
	if httpclient.IsRemote(ref) {
		return c.Remote
	}
	return c.Local
}

func (c *Chain) Exists(ref string) bool {
	r := c.pick(ref)
	return r != nil && r.Exists(ref)
}

func (c *Chain) ReadBytes(ref string) ([]byte, error) {
	r := c.pick(ref)
	if r == nil {
		return nil, portfiles.ErrNotFound
	}
	return r.ReadBytes(ref)
}
