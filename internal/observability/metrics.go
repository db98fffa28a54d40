package observability

type Metrics interface {
	ObserveLookup(source string, durMs float64)
	ObserveUpstream(kind string, durMs float64, ok bool)
	ObserveHTTP(method, route string, status int, durMs float64)
	IncCacheHit()
	IncCacheMiss()
}

type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) ObserveLookup(string, float64)            {}
func (Noop) ObserveUpstream(string, float64, bool)    {}
func (Noop) ObserveHTTP(string, string, int, float64) {}
func (Noop) IncCacheHit()                             {}
func (Noop) IncCacheMiss()                            {}
