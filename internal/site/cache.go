package site

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// pageCache keeps rendered documents in memory for the configured TTL
type pageCache struct {
	c *cache.Cache
}

func newPageCache(ttl time.Duration) *pageCache {
	return &pageCache{c: cache.New(ttl, 2*ttl)}
}

func (p *pageCache) Get(path string) ([]byte, bool) {
	v, found := p.c.Get(path)
	if !found {
		return nil, false
	}
	page, ok := v.([]byte)
	return page, ok
}

func (p *pageCache) Set(path string, page []byte) {
	p.c.SetDefault(path, page)
}

// Flush drops every entry
func (p *pageCache) Flush() {
	p.c.Flush()
}

// Len reports the number of cached pages, expired or not
func (p *pageCache) Len() int {
	return p.c.ItemCount()
}
