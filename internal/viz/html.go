package viz

import (
	"bytes"
	"fmt"
	"html/template"
)

// compiledTemplate is parsed at init time to fail fast on template errors.
var compiledTemplate *template.Template

func init() {
	compiledTemplate = template.Must(template.New("viz").Parse(htmlTemplate))
}

// CytoscapeScriptURL is the CDN location of Cytoscape.js.
const CytoscapeScriptURL = "https://unpkg.com/cytoscape@3/dist/cytoscape.min.js"

// HTMLOptions configures HTML generation.
type HTMLOptions struct {
	Layout string // "force", "circle", "grid" or "breadthfirst"
}

// DefaultOptions returns default HTML generation options.
func DefaultOptions() HTMLOptions {
	return HTMLOptions{Layout: "force"}
}

// ValidLayouts lists the supported layout algorithm names.
var ValidLayouts = []string{"force", "circle", "grid", "breadthfirst"}

// GenerateHTML generates a self-contained HTML page drawing the graph.
// Hovering a node shows its tooltip; double-clicking opens its URL.
func GenerateHTML(graph *Graph, opts HTMLOptions) (string, error) {
	if graph == nil {
		return "", fmt.Errorf("graph cannot be nil")
	}

	if err := ValidateLayout(opts.Layout); err != nil {
		return "", err
	}

	if graph.IsEmpty() {
		return generateEmptyHTML(), nil
	}

	graphJSON, err := graph.ToCytoscapeJSON()
	if err != nil {
		return "", err
	}

	title := "Citation Graph"
	if root := graph.RootNode(); root != nil {
		title = root.Tooltip
	}

	data := templateData{
		Title:     title,
		ScriptURL: CytoscapeScriptURL,
		GraphJSON: template.JS(graphJSON),
		Layout:    LayoutToCytoscape(opts.Layout),
	}

	var buf bytes.Buffer
	if err := compiledTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}

// ValidateLayout checks if the layout option is valid.
func ValidateLayout(layout string) error {
	switch layout {
	case "", "force", "circle", "grid", "breadthfirst":
		return nil
	default:
		return fmt.Errorf("invalid layout %q: must be force, circle, grid, or breadthfirst", layout)
	}
}

// templateData holds data for the HTML template.
type templateData struct {
	Title     string
	ScriptURL string
	GraphJSON template.JS
	Layout    string
}

// LayoutToCytoscape converts user-friendly layout names to Cytoscape.js
// layout algorithm names.
func LayoutToCytoscape(layout string) string {
	switch layout {
	case "circle", "grid", "breadthfirst":
		return layout
	default:
		return "cose"
	}
}

// generateEmptyHTML returns HTML for an empty graph state.
func generateEmptyHTML() string {
	return `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Citation Graph - Empty</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      display: flex;
      justify-content: center;
      align-items: center;
      height: 100vh;
      margin: 0;
      background: #f5f5f5;
    }
    .empty-state {
      text-align: center;
      color: #666;
    }
  </style>
</head>
<body>
  <div class="empty-state">
    <h2>No graph data</h2>
    <p>Search for a DOI with <code>cg graph &lt;doi&gt;</code></p>
  </div>
</body>
</html>`
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <script src="{{.ScriptURL}}"></script>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0;
      padding: 0;
      background: #f5f5f5;
    }
    #cy {
      width: 100%;
      height: 100vh;
      background: white;
    }
    #tooltip {
      position: absolute;
      display: none;
      background: white;
      border: 1px solid #ccc;
      border-radius: 4px;
      padding: 8px 12px;
      box-shadow: 0 2px 8px rgba(0,0,0,0.15);
      max-width: 320px;
      font-size: 13px;
      white-space: pre-line;
      z-index: 1000;
      pointer-events: none;
    }
    #tooltip .role {
      font-size: 10px;
      text-transform: uppercase;
      color: #888;
      margin-bottom: 4px;
    }
  </style>
</head>
<body>
  <div id="cy"></div>
  <div id="tooltip"></div>
  <script>
    (function() {
      const graphData = {{.GraphJSON}};
      const layout = "{{.Layout}}";

      const cy = cytoscape({
        container: document.getElementById('cy'),
        elements: graphData,
        style: [
          {
            selector: 'node',
            style: {
              'background-color': 'data(color)',
              'label': 'data(label)',
              'color': '#333',
              'font-size': '10px',
              'text-wrap': 'wrap',
              'text-valign': 'bottom',
              'text-margin-y': '5px',
              'width': 'data(size)',
              'height': 'data(size)'
            }
          },
          {
            selector: 'node[role="root"]',
            style: {
              'font-weight': 'bold',
              'border-width': 2,
              'border-color': '#b87800'
            }
          },
          {
            selector: 'edge',
            style: {
              'line-color': '#95A5A6',
              'target-arrow-color': '#95A5A6',
              'target-arrow-shape': 'triangle',
              'arrow-scale': 0.8,
              'curve-style': 'bezier',
              'width': 2
            }
          },
          {
            selector: 'node.highlighted',
            style: {
              'border-width': 3,
              'border-color': '#ff6b6b'
            }
          },
          {
            selector: '.dimmed',
            style: {
              'opacity': 0.25
            }
          }
        ],
        layout: {
          name: layout,
          animate: false,
          nodeRepulsion: 8000,
          idealEdgeLength: 120
        }
      });

      const tooltip = document.getElementById('tooltip');

      function escapeHtml(str) {
        if (!str) return '';
        return String(str).replace(/&/g, '&amp;')
                          .replace(/</g, '&lt;')
                          .replace(/>/g, '&gt;')
                          .replace(/"/g, '&quot;');
      }

      cy.on('mouseover', 'node', function(evt) {
        const data = evt.target.data();
        tooltip.innerHTML = '<div class="role">' + escapeHtml(data.role) + '</div>' + escapeHtml(data.tooltip);
        tooltip.style.display = 'block';
        const pos = evt.renderedPosition || evt.position;
        tooltip.style.left = (pos.x + 15) + 'px';
        tooltip.style.top = (pos.y + 15) + 'px';
      });

      cy.on('mouseout', 'node', function() {
        tooltip.style.display = 'none';
      });

      cy.on('dbltap', 'node', function(evt) {
        const url = evt.target.data('url');
        if (url) window.open(url, '_blank', 'noopener');
      });

      cy.on('tap', 'node', function(evt) {
        const neighborhood = evt.target.closedNeighborhood();
        cy.elements().removeClass('highlighted dimmed');
        neighborhood.nodes().addClass('highlighted');
        cy.elements().not(neighborhood).addClass('dimmed');
      });

      cy.on('tap', function(evt) {
        if (evt.target === cy) {
          cy.elements().removeClass('highlighted dimmed');
        }
      });
    })();
  </script>
</body>
</html>`
