package protfeat

// Close stops the scan worker pool. It waits for running analyses and is
// safe to call more than once.
func (a *Analyzer) Close() error {
	if a == nil || a.pool == nil {
		return nil
	}
	a.pool.Close()
	return nil
}
