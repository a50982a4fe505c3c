package server

import (
	"fmt"
	"net/http"
)

// StatusHandler renders the root page the callback redirects to. It reports
// whether a usable credential is stored so the user knows the flow landed.
type StatusHandler struct {
	authenticated func() bool
}

// NewStatusHandler creates a status page backed by the given check, usually
// the credential store's IsValid method.
func NewStatusHandler(authenticated func() bool) *StatusHandler {
	return &StatusHandler{authenticated: authenticated}
}

// Routes returns the HTTP routes this handler serves.
func (h *StatusHandler) Routes() []string {
	return []string{"/"}
}

func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	heading, detail := "Not Authenticated", "Run <code>tasktube auth login</code> to connect your Google account."
	if h.authenticated != nil && h.authenticated() {
		heading, detail = "✓ Authorization Successful", "You can close this window and return to the terminal."
	}

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `
<!DOCTYPE html>
<html>
<head>
    <title>tasktube</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #FF0000; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>%s</h1>
        <p>%s</p>
    </div>
</body>
</html>
`, heading, detail)
}
