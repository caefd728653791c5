package panel

import (
	"html/template"
	"io"
)

var menuTemplate = template.Must(template.New("panel").Parse(`<nav class="section-nav{{if .Open}} open{{end}}" data-active="{{.ActiveID}}">
<div class="section-nav-bar">
<button type="button" class="nav-step" data-step="-1"{{if not .HasPrev}} disabled{{end}}>Previous</button>
<button type="button" class="nav-toggle" aria-expanded="{{.Open}}">{{if .ActiveLabel}}{{.ActiveLabel}}{{else}}Sections{{end}}{{if .Progress}} <span class="nav-progress">{{.Progress}}</span>{{end}}</button>
<button type="button" class="nav-step" data-step="1"{{if not .HasNext}} disabled{{end}}>Next</button>
</div>
<div class="section-nav-menu">
{{- range .Groups}}
<section class="nav-group{{if .Expanded}} expanded{{end}}" data-group="{{.Group}}">
<button type="button" class="nav-group-toggle" aria-expanded="{{.Expanded}}">{{.Label}}{{if .Position}} <span class="nav-progress">{{.Position}} of {{.Total}}</span>{{end}}</button>
<ul>
{{- range .Items}}
<li><a href="{{.Href}}" data-section="{{.CompositeID}}"{{if .Active}} class="active" aria-current="true"{{end}}>{{.Label}}</a></li>
{{- end}}
</ul>
</section>
{{- end}}
</div>
</nav>
`))

// Render writes the panel as an HTML fragment.
func Render(w io.Writer, v View) error {
	return menuTemplate.Execute(w, v)
}
