package devserver

import (
	"html/template"
	"log"
	"net/http"

	"github.com/naveenspark/roster/pkg/domain"
)

// IndexPath is where the web page lives; "/" redirects there.
const IndexPath = "/static/index.html"

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Mergington High School Activities</title>
</head>
<body>
<h1>Mergington High School</h1>
<h2>Extracurricular Activities</h2>
{{range .Activities}}<section class="activity-card">
<h4>{{.Name}}</h4>
<p>{{.Description}}</p>
<p><strong>Schedule:</strong> {{.Schedule}}</p>
<p><strong>Availability:</strong> {{.Availability}}</p>
<ul>{{range .Participants}}<li>{{.}}</li>{{else}}<li><em>No participants yet</em></li>{{end}}</ul>
</section>
{{else}}<p>No activities on the roster.</p>
{{end}}</body>
</html>
`))

// index handles GET /static/index.html
func (h *handler) index(w http.ResponseWriter, _ *http.Request) {
	roster := h.store.Roster()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, struct{ Activities []domain.Activity }{roster.Activities}); err != nil {
		log.Printf("render index: %v", err)
	}
}

// root handles GET /
func (h *handler) root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, IndexPath, http.StatusTemporaryRedirect)
}
