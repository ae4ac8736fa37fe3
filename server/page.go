package server

import (
	"fmt"
	"html/template"
	"net/http"
	"net/url"
)

// pageData feeds the summary page.
type pageData struct {
	Dashboard  dashboardResponse
	Regions    []string
	Selected   []string
	Diagnostic string
}

var pageTmpl = template.Must(template.New("page").Funcs(template.FuncMap{
	"euros": func(v float64) string { return fmt.Sprintf("%.0f €", v) },
	"coef": func(r *float64) string {
		if r == nil {
			return "-"
		}
		return fmt.Sprintf("%.2f", *r)
	},
	"regionURL": func(region string) string { return "/?region=" + url.QueryEscape(region) },
}).Parse(`<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<title>Analyse du marché immobilier</title>
<style>
body{font-family:sans-serif;margin:2rem;color:#222}
table{border-collapse:collapse;margin-bottom:1.5rem}
td,th{border:1px solid #ccc;padding:.3rem .6rem;text-align:right}
th:first-child,td:first-child{text-align:left}
.warn{color:#b45309}
</style>
</head>
<body>
<main id="dashboard">
<h1>Analyse du marché immobilier</h1>
{{with .Diagnostic}}<p class="warn">{{.}}</p>{{end}}
<nav>{{range .Regions}}<a href="{{regionURL .}}">{{.}}</a> {{end}}</nav>
<p>Régions : {{if .Selected}}{{range $i, $r := .Selected}}{{if $i}}, {{end}}{{$r}}{{end}}{{else}}toutes{{end}}</p>
<p>{{.Dashboard.Rows}} annonces sur {{.Dashboard.Total}}</p>
{{if .Dashboard.Empty}}
<p class="warn" id="no-data">Aucune donnée pour les filtres sélectionnés.</p>
{{else}}
<h2>Annonces par ville et type</h2>
<table>
<tr><th></th>{{range .Dashboard.Counts.Types}}<th>{{.}}</th>{{end}}</tr>
{{range $i, $row := .Dashboard.Counts.Counts}}<tr><td>{{index $.Dashboard.Counts.Cities $i}}</td>{{range $row}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
<h2>Prix au m² par ville</h2>
<table>
<tr><th>Ville</th><th>Moyenne</th><th>Médiane</th></tr>
{{range .Dashboard.PriceM2ByCity}}<tr><td>{{.City}}</td><td>{{euros .Mean}}</td><td>{{euros .Median}}</td></tr>
{{end}}</table>
<h2>Corrélation surface / prix</h2>
{{if .Dashboard.Correlation.Defined}}<p id="correlation">r = {{coef .Dashboard.Correlation.R}} ({{.Dashboard.Correlation.Strength}})</p>{{else}}<p id="correlation">Non définie</p>{{end}}
{{end}}
</main>
</body>
</html>
`))

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	ds, view, ok := s.view(w, r)
	if !ok {
		return
	}

	data := pageData{
		Dashboard:  s.dashboardOf(ds, view),
		Regions:    ds.Regions(),
		Selected:   multi(r.URL.Query(), "region"),
		Diagnostic: ds.Diagnostic,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, data); err != nil {
		s.logger.Error("[server] Render page: %v", err)
	}
}
