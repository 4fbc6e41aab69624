package devserver

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"
)

var bodyClose = []byte("</body>")

// clientTag returns the script element loading the reload client.
func clientTag(notify bool) []byte {
	return []byte(`<script src="` + clientPath + `" data-notify="` + strconv.FormatBool(notify) + `"></script>`)
}

// Inject inserts tag before the last closing body tag, or appends it when the
// document has none.
func Inject(doc, tag []byte) []byte {
	i := bytes.LastIndex(bytes.ToLower(doc), bodyClose)
	if i < 0 {
		return append(append(doc[:len(doc):len(doc)], tag...), '\n')
	}

	out := make([]byte, 0, len(doc)+len(tag))
	out = append(out, doc[:i]...)
	out = append(out, tag...)
	return append(out, doc[i:]...)
}

// injector buffers an HTML response so the reload client can be added before
// it is sent.
type injector struct {
	http.ResponseWriter
	buf    bytes.Buffer
	status int
	html   bool
}

func (w *injector) WriteHeader(status int) {
	w.status = status
	w.html = strings.HasPrefix(w.Header().Get("Content-Type"), "text/html")
	if !w.html {
		w.ResponseWriter.WriteHeader(status)
	}
}

func (w *injector) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.WriteHeader(http.StatusOK)
	}
	if !w.html {
		return w.ResponseWriter.Write(p)
	}
	return w.buf.Write(p)
}

func (w *injector) finish(tag []byte) {
	if !w.html {
		return
	}
	body := Inject(w.buf.Bytes(), tag)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.ResponseWriter.WriteHeader(w.status)
	_, _ = w.ResponseWriter.Write(body)
}

// injectClient wraps next so every HTML response carries the reload client.
func injectClient(next http.Handler, notify bool) http.Handler {
	tag := clientTag(notify)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		// Range and conditional requests would break once the length changes.
		r.Header.Del("Range")
		r.Header.Del("If-Modified-Since")
		r.Header.Del("If-None-Match")

		iw := &injector{ResponseWriter: w}
		next.ServeHTTP(iw, r)
		iw.finish(tag)
	})
}
