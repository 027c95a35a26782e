package pricing

func (c *Client) record(region string, update func(*Stats)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.stats[region]
	if !ok {
		s = &Stats{}
		c.stats[region] = s
	}
	update(s)
}

// Stats returns a copy of the lookup counters keyed by region.
func (c *Client) Stats() map[string]Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]Stats, len(c.stats))
	for region, s := range c.stats {
		out[region] = *s
	}
	return out
}
