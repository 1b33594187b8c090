package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"
	"sync"
	"time"
)

// Page is an in-memory document. It records injected scripts in order and
// queues global command calls, then renders both as an HTML fragment.
type Page struct {
	fetcher Fetcher

	mu      sync.Mutex
	scripts []Script
	calls   []call
}

type call struct {
	Global string
	Args   []any
}

// NewPage constructs an empty page that loads scripts through fetcher.
func NewPage(fetcher Fetcher) *Page {
	return &Page{fetcher: fetcher}
}

func (p *Page) InjectScript(ctx context.Context, script Script) <-chan error {
	p.mu.Lock()
	p.scripts = append(p.scripts, script)
	p.mu.Unlock()

	done := make(chan error, 1)
	fetchCtx := context.WithoutCancel(ctx)
	go func() {
		done <- p.fetcher.Fetch(fetchCtx, script.Src)
	}()
	return done
}

func (p *Page) Call(global string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, call{Global: global, Args: args})
}

// Scripts returns the injected scripts in injection order.
func (p *Page) Scripts() []Script {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Script, len(p.scripts))
	copy(out, p.scripts)
	return out
}

// Calls returns the argument lists queued for global, in call order.
func (p *Page) Calls(global string) [][]any {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out [][]any
	for _, c := range p.calls {
		if c.Global == global {
			out = append(out, c.Args)
		}
	}
	return out
}

// stubs define command globals before their scripts arrive, matching the
// vendors' published snippets.
var stubs = map[string]template.JS{
	"gtag": `window.dataLayer=window.dataLayer||[];window.gtag=window.gtag||function(){window.dataLayer.push(arguments);};`,
	"fbq":  `if(!window.fbq){var n=window.fbq=function(){n.callMethod?n.callMethod.apply(n,arguments):n.queue.push(arguments);};if(!window._fbq)window._fbq=n;n.push=n;n.loaded=!0;n.version="2.0";n.queue=[];}`,
}

var pageTemplate = template.Must(template.New("page").Parse(
	`{{range .Scripts}}<script{{if .Async}} async{{end}} src="{{.Src}}" data-provider="{{.Provider}}"></script>
{{end}}{{if .Calls}}<script>
{{range .Stubs}}{{.}}
{{end}}{{range .Calls}}window[{{.Global}}]({{.Args}});
{{end}}</script>
{{end}}`))

type renderedCall struct {
	Global string
	Args   template.JS
}

// Render writes the page's script elements and queued calls as HTML.
func (p *Page) Render(w io.Writer) error {
	p.mu.Lock()
	scripts := make([]Script, len(p.scripts))
	copy(scripts, p.scripts)
	calls := make([]call, len(p.calls))
	copy(calls, p.calls)
	p.mu.Unlock()

	seen := make(map[string]bool)
	var stubList []template.JS
	rendered := make([]renderedCall, 0, len(calls))
	for _, c := range calls {
		args, err := jsArgs(c.Args)
		if err != nil {
			return fmt.Errorf("render %s call: %w", c.Global, err)
		}
		if stub, ok := stubs[c.Global]; ok && !seen[c.Global] {
			seen[c.Global] = true
			stubList = append(stubList, stub)
		}
		rendered = append(rendered, renderedCall{Global: c.Global, Args: args})
	}

	return pageTemplate.Execute(w, struct {
		Scripts []Script
		Stubs   []template.JS
		Calls   []renderedCall
	}{Scripts: scripts, Stubs: stubList, Calls: rendered})
}

// jsArgs encodes call arguments as a JavaScript argument list. Times become
// Date objects; everything else is JSON, which escapes <, > and & for safe
// embedding in a script element.
func jsArgs(args []any) (template.JS, error) {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		if t, ok := arg.(time.Time); ok {
			iso, err := json.Marshal(t.UTC().Format(time.RFC3339Nano))
			if err != nil {
				return "", err
			}
			parts = append(parts, "new Date("+string(iso)+")")
			continue
		}
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(arg); err != nil {
			return "", err
		}
		parts = append(parts, strings.TrimSuffix(buf.String(), "\n"))
	}
	return template.JS(strings.Join(parts, ",")), nil //nolint:gosec // JSON-encoded with HTML escaping
}
