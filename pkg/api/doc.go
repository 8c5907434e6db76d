// Package api serves the layout pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz                 build information
//	POST /v1/layout               document → layout JSON
//	POST /v1/render?format=svg    document → rendered artifact
//
// Both POST routes take a JSON body in the shape of [pipeline.Options]:
//
//	{
//	  "document":   {"root": {"data": {"text": "Plan"}, "children": [...]}},
//	  "theme":      "line_style = \"curve\"",
//	  "line_style": "brace",
//	  "viz_type":   "mindmap"
//	}
//
// File paths are never read from requests. Every response carries an
// X-Request-Id header; errors are JSON objects with the error code, a
// message and the request id.
package api
