package server

import (
	"bytes"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/matsen/citegraph/internal/viz"
)

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

type pageData struct {
	ScriptURL string
	Layout    string
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	data := pageData{
		ScriptURL: viz.CytoscapeScriptURL,
		Layout:    viz.LayoutToCytoscape(s.layout),
	}
	if err := pageTemplate.Execute(&buf, data); err != nil {
		s.logger.Error("rendering page", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// The page keeps its own request token so a slow response for an older
// query never replaces the graph of a newer one.
const pageHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>citegraph</title>
  <script src="{{.ScriptURL}}"></script>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0;
      display: flex;
      flex-direction: column;
      height: 100vh;
      background: #f5f5f5;
    }
    header {
      display: flex;
      gap: 8px;
      align-items: center;
      padding: 10px 16px;
      background: white;
      border-bottom: 1px solid #ddd;
    }
    #doi { flex: 1; padding: 6px 8px; font-size: 14px; }
    #status { padding: 6px 16px; font-size: 13px; color: #555; }
    #status.error { color: #c0392b; }
    #cy { flex: 1; background: white; }
  </style>
</head>
<body>
  <header>
    <input id="doi" type="text" placeholder="Enter a DOI, e.g. 10.1109/5.771073" autofocus>
    <button id="go">Search</button>
  </header>
  <div id="status">Enter a DOI to draw its citation graph.</div>
  <div id="cy"></div>
  <script>
    (function() {
      const layout = "{{.Layout}}";
      const input = document.getElementById('doi');
      const statusEl = document.getElementById('status');
      let currentToken = 0;
      let cy = null;

      function setStatus(text, isError) {
        statusEl.textContent = text;
        statusEl.className = isError ? 'error' : '';
      }

      function render(elements) {
        if (cy) cy.destroy();
        cy = cytoscape({
          container: document.getElementById('cy'),
          elements: elements,
          style: [
            {
              selector: 'node',
              style: {
                'background-color': 'data(color)',
                'label': 'data(label)',
                'width': 'data(size)',
                'height': 'data(size)',
                'font-size': '10px',
                'text-wrap': 'wrap',
                'text-valign': 'bottom'
              }
            },
            {
              selector: 'edge',
              style: {
                'line-color': '#95A5A6',
                'target-arrow-color': '#95A5A6',
                'target-arrow-shape': 'triangle',
                'curve-style': 'bezier'
              }
            }
          ],
          layout: { name: layout, animate: false }
        });
        cy.on('tap', 'node', function(evt) {
          const url = evt.target.data('url');
          if (url) window.open(url, '_blank', 'noopener');
        });
        cy.on('mouseover', 'node', function(evt) {
          setStatus(evt.target.data('tooltip'), false);
        });
      }

      async function runSearch() {
        const token = ++currentToken;
        setStatus('Searching...', false);
        let body;
        try {
          const resp = await fetch('/api/graph?q=' + encodeURIComponent(input.value));
          body = await resp.json();
        } catch (err) {
          if (token !== currentToken) return;
          setStatus('Request failed: ' + err, true);
          return;
        }
        if (token !== currentToken) return;
        if (body.error) {
          setStatus(body.message, true);
          return;
        }
        render(body.elements);
        setStatus(body.status, false);
      }

      document.getElementById('go').addEventListener('click', runSearch);
      input.addEventListener('keydown', function(evt) {
        if (evt.key === 'Enter') runSearch();
      });
    })();
  </script>
</body>
</html>`
