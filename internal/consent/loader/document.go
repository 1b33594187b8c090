package loader

import (
	"context"

	"cookieconsent/internal/consent/models"
)

// Script is an external script element appended to a page.
type Script struct {
	Src      string
	Async    bool
	Provider models.Provider
}

// Document is the page surface providers write into.
type Document interface {
	// InjectScript appends a script element and starts loading it. The
	// returned channel yields exactly one value: nil once the script has
	// loaded, or the load error. Loading is not cancelled with ctx.
	InjectScript(ctx context.Context, script Script) <-chan error

	// Call queues an invocation of a page-global command function such as
	// gtag or fbq. Calls are replayed in order when the page renders.
	Call(global string, args ...any)
}

// Provider loads one third-party script family into a document.
type Provider interface {
	Name() models.Provider
	Granted(record models.Record) bool
	Load(ctx context.Context, doc Document, accountID string) <-chan error
}

// Fetcher resolves a script source the way a browser would load it.
type Fetcher interface {
	Fetch(ctx context.Context, src string) error
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, src string) error

func (f FetcherFunc) Fetch(ctx context.Context, src string) error {
	return f(ctx, src)
}

// Default returns the providers a page loads, in evaluation order.
func Default() []Provider {
	return []Provider{NewAnalytics(), NewMarketing()}
}
