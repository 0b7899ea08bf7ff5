package view

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
)

// Quiz text is authored markup; only user-generated-content safe tags survive.
var policy = bluemonday.UGCPolicy()

var page = template.Must(template.New("page").Funcs(template.FuncMap{
	"markup": func(s string) template.HTML {
		return template.HTML(policy.Sanitize(s))
	},
}).Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
</head>
<body>
<main>
<h1>{{.Title}}</h1>
<section id="quiz">
{{- with .Question}}
<article class="question" data-q="{{.ID}}">
<div class="q-title">{{.Number}}. {{markup .Text}}</div>
{{- range .Options}}
<form method="post" action="/select">
<input type="hidden" name="question_id" value="{{.Action.QuestionID}}">
<input type="hidden" name="option_id" value="{{.Action.OptionID}}">
<button type="submit" class="option{{if .Selected}} selected{{end}}" data-q="{{.Action.QuestionID}}" data-opt="{{.ID}}">{{markup .Text}}</button>
</form>
{{- end}}
</article>
{{- end}}
</section>
<section id="result"{{if not .ResultVisible}} class="hidden" hidden{{end}}>
{{- with .Result}}{{.Summary}}{{end -}}
</section>
<form method="post" action="/next">
<button type="submit" id="nextBtn"{{if not .NextVisible}} class="hidden" hidden{{end}}>Próximo</button>
</form>
</main>
</body>
</html>
`))

// HTML binds v to a complete HTML page.
func HTML(v View) ([]byte, error) {
	var buf bytes.Buffer
	if err := page.Execute(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
