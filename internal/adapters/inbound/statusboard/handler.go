// Package statusboard renders the zero-downtime upgrade demo page: control
// plane and node versions, pod topology per node, and a QR code the audience
// can scan to open the page themselves.
package statusboard

import (
	"encoding/base64"
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/acmehome/fieldops/internal/app"
)

// Handler serves the status page over a StatusBoard gatherer.
type Handler struct {
	board     *app.StatusBoard
	publicURL string
	podName   string
	requests  atomic.Uint64
	tmpl      *template.Template
}

// NewHandler creates the page handler. publicURL, when set, is what the QR
// code points at; otherwise the code encodes the request's own host.
func NewHandler(board *app.StatusBoard, publicURL, podName string) *Handler {
	return &Handler{
		board:     board,
		publicURL: publicURL,
		podName:   podName,
		tmpl:      template.Must(template.New("board").Parse(pageTemplate)),
	}
}

// Router assembles the status board's routes.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.page)
	r.Get("/healthz", h.health)
	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
		"pod":    h.podName,
	})
}

// pageData is what one render of the template sees.
type pageData struct {
	Report   app.StatusReport
	Requests uint64
	QRImage  string // base64 PNG, empty if generation failed
	PageURL  string
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request) {
	report := h.board.Gather(r.Context())
	count := h.requests.Add(1)

	pageURL := h.publicURL
	if pageURL == "" {
		pageURL = "http://" + r.Host
	}

	data := pageData{
		Report:   report,
		Requests: count,
		PageURL:  pageURL,
	}
	if png, err := qrcode.Encode(pageURL, qrcode.Medium, 160); err != nil {
		log.Printf("statusboard: qr encode: %v", err)
	} else {
		data.QRImage = base64.StdEncoding.EncodeToString(png)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.Execute(w, data); err != nil {
		log.Printf("statusboard: render: %v", err)
	}
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="3">
<title>Cluster Upgrade Status</title>
<style>
body { font-family: system-ui, sans-serif; background: #0f1b2a; color: #e8eef5; margin: 0; padding: 2rem; }
h1 { margin-top: 0; }
.badges { display: flex; gap: 1rem; margin-bottom: 2rem; }
.badge { background: #18314f; border-radius: 8px; padding: 1rem 2rem; text-align: center; }
.badge .version { font-size: 2.2rem; font-weight: 700; color: #7fd4ff; }
.badge .label { font-size: 0.8rem; text-transform: uppercase; letter-spacing: 0.1em; color: #9db2c8; }
.nodes { display: grid; grid-template-columns: repeat(auto-fill, minmax(260px, 1fr)); gap: 1rem; }
.node { background: #14263d; border-radius: 8px; padding: 1rem; }
.node h2 { margin: 0 0 0.3rem 0; font-size: 1rem; color: #7fd4ff; }
.node .kubelet { font-size: 0.8rem; color: #9db2c8; margin-bottom: 0.6rem; }
.pod { background: #1d3a5c; border-radius: 4px; padding: 0.3rem 0.6rem; margin: 0.2rem 0; font-size: 0.85rem; }
.meta { margin-top: 2rem; font-size: 0.8rem; color: #9db2c8; }
.qr { position: fixed; top: 2rem; right: 2rem; background: #fff; padding: 8px; border-radius: 8px; }
</style>
</head>
<body>
<h1>EKS Zero-Downtime Upgrade</h1>
{{if .QRImage}}<div class="qr"><img src="data:image/png;base64,{{.QRImage}}" alt="scan to open {{.PageURL}}" width="160" height="160"></div>{{end}}
<div class="badges">
  <div class="badge"><div class="version">{{with .Report.ControlPlaneVersion}}{{.}}{{else}}&mdash;{{end}}</div><div class="label">control plane</div></div>
  <div class="badge"><div class="version">{{with .Report.NodeVersion}}{{.}}{{else}}&mdash;{{end}}</div><div class="label">this node ({{.Report.NodeName}})</div></div>
</div>
<div class="nodes">
{{range .Report.Groups}}
  <div class="node">
    <h2>{{.Node}}</h2>
    <div class="kubelet">kubelet {{with .KubeletVersion}}{{.}}{{else}}unknown{{end}}</div>
    {{range .Pods}}<div class="pod">{{.Name}} &middot; {{.Phase}}</div>{{end}}
  </div>
{{else}}
  <div class="node"><h2>no pods found</h2></div>
{{end}}
</div>
<div class="meta">
served by pod {{.Report.PodName}} &middot; request #{{.Requests}} &middot; {{.Report.GatheredAt.Format "15:04:05 MST"}}
</div>
</body>
</html>`
