// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"io"

	"github.com/google/safehtml/template"

	"github.com/consensuslab/benchplot/aggregate"
)

const htmlReport = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>benchmark results</title>
<style>
table { border-collapse: collapse; margin-bottom: 2em; }
th, td { padding: 0.1em 0.6em; text-align: right; }
th:first-child, td:first-child { text-align: left; }
tbody tr:nth-child(even) { background: #f0f0f0; }
</style>
</head>
<body>
{{range .}}
<h2>{{.System}} <small>({{.Mode}})</small></h2>
<table>
<thead><tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
{{end}}
</body>
</html>
`

var htmlTemplate = template.Must(template.New("report").Parse(htmlReport))

// FormatHTML writes sums to w as an HTML page with one table per
// system and mode.
func FormatHTML(w io.Writer, sums []*aggregate.RunSummary) error {
	return htmlTemplate.Execute(w, groups(sums))
}
