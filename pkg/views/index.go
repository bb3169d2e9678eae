package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Index renders the console shell page. The page is a static scaffold;
// all data comes from the JSON API.
func (v *Views) Index() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprint(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>S3 Console</title>
<link rel="stylesheet" href="/static/style.css">
</head>
<body>
<header><h1>S3 Console</h1></header>
<main id="main-content">
<section class="panel">
<h2>Servers</h2>
<p>Manage registered storage servers via <code>/api/servers</code>.</p>
</section>
<section class="panel">
<h2>API</h2>
<p>Buckets: <code>GET /api/servers/{id}/buckets</code></p>
<p>Objects: <code>GET /api/servers/{id}/objects?bucket=&amp;prefix=&amp;page=</code></p>
<p>Preview: <code>GET /api/servers/{id}/preview?bucket=&amp;key=</code></p>
</section>
</main>
</body>
</html>`)
		return err
	})
}

// ErrorPage renders a minimal error page with the given message.
func (v *Views) ErrorPage(message string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>S3 Console - Error</title>
<link rel="stylesheet" href="/static/style.css">
</head>
<body>
<header><h1>S3 Console</h1></header>
<main><section class="panel"><p class="error">%s</p></section></main>
</body>
</html>`, templ.EscapeString(message))
		return err
	})
}
