// internal/server/reload.go
package server

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"
)

const liveReloadScript = `
<script>
  (function() {
    var socket = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
    socket.onmessage = function(event) {
      if (event.data === "reload") {
        window.location.reload();
      }
    };
    socket.onerror = function() {
      console.error("Live reload connection lost. Restart 'farzadyz serve'.");
    };
  })();
</script>
`

// isPageRequest reports whether path resolves to an HTML page: a .html file,
// a directory index, or an extensionless clean URL.
func isPageRequest(path string) bool {
	if strings.HasSuffix(path, ".html") || strings.HasSuffix(path, "/") {
		return true
	}
	last := path[strings.LastIndex(path, "/")+1:]
	return !strings.Contains(last, ".")
}

// liveReloadWrapper disables caching and injects the reload script into
// successful HTML responses.
func liveReloadWrapper(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")

		if !isPageRequest(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		iw := newInterceptingWriter()
		next.ServeHTTP(iw, r)

		for key, values := range iw.header {
			for _, value := range values {
				w.Header().Add(key, value)
			}
		}
		body := iw.body.Bytes()
		isHTML := strings.HasPrefix(iw.header.Get("Content-Type"), "text/html")
		if iw.statusCode != http.StatusOK || !isHTML {
			w.WriteHeader(iw.statusCode)
			w.Write(body)
			return
		}

		injected := bytes.Replace(body, []byte("</body>"), []byte(liveReloadScript+"</body>"), 1)
		w.Header().Set("Content-Length", strconv.Itoa(len(injected)))
		w.WriteHeader(iw.statusCode)
		w.Write(injected)
	})
}

// interceptingWriter buffers a response so it can be rewritten.
type interceptingWriter struct {
	body       bytes.Buffer
	statusCode int
	header     http.Header
}

func newInterceptingWriter() *interceptingWriter {
	return &interceptingWriter{
		header:     make(http.Header),
		statusCode: http.StatusOK,
	}
}

func (iw *interceptingWriter) Header() http.Header {
	return iw.header
}

func (iw *interceptingWriter) Write(b []byte) (int, error) {
	return iw.body.Write(b)
}

func (iw *interceptingWriter) WriteHeader(statusCode int) {
	iw.statusCode = statusCode
}
