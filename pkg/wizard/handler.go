package wizard

import (
	"net/http"
	"net/url"

	"github.com/goliatone/go-formwizard/pkg/render"
)

// CompletionHandlerFunc writes the HTTP response for a finished traversal. It
// receives the validated data for every step in definition order.
type CompletionHandlerFunc func(w http.ResponseWriter, r *http.Request, forms []CompletedForm)

// Handler exposes the wizard over HTTP. GET and HEAD render the first step,
// POST drives the traversal. When done is nil a minimal confirmation page is
// written on completion.
func (wz *Wizard) Handler(done CompletionHandlerFunc) http.Handler {
	if done == nil {
		done = defaultCompletionHandler
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead:
			page, err := wz.RenderStep(r.Context(), 0, url.Values{}, render.RenderOptions{})
			if err != nil {
				http.Error(w, "failed to render form", http.StatusInternalServerError)
				return
			}
			wz.writePage(w, page)

		case http.MethodPost:
			if err := r.ParseForm(); err != nil {
				http.Error(w, "invalid form submission", http.StatusBadRequest)
				return
			}
			outcome, err := wz.Submit(r.Context(), r.PostForm)
			if err != nil {
				http.Error(w, "failed to process form", http.StatusInternalServerError)
				return
			}
			if outcome.Done {
				done(w, r, outcome.Forms)
				return
			}
			wz.writePage(w, outcome.Page)

		default:
			w.Header().Set("Allow", "GET, HEAD, POST")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		}
	})
}

func (wz *Wizard) writePage(w http.ResponseWriter, page []byte) {
	w.Header().Set("Content-Type", wz.ContentType())
	w.WriteHeader(http.StatusOK)
	w.Write(page)
}

func defaultCompletionHandler(w http.ResponseWriter, _ *http.Request, _ []CompletedForm) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("<!doctype html><title>Thank you</title><h1>Thank you</h1><p>Your submission was received.</p>"))
}
