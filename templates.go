package main

import (
	"fmt"
	"net/http"
	"strings"
)

// HTML for the API documentation homepage
const homepageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>NPFL Pulse</title>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, Cantarell, sans-serif;
            line-height: 1.6;
            color: #2d3748;
            background: linear-gradient(135deg, #00753a 0%%, #0b4f6c 100%%);
            min-height: 100vh;
        }

        .container {
            max-width: 960px;
            margin: 0 auto;
            padding: 2rem;
        }

        .header {
            text-align: center;
            color: white;
            margin-bottom: 3rem;
        }

        .header h1 {
            font-size: 3rem;
            font-weight: 800;
            margin-bottom: 0.5rem;
            text-shadow: 0 2px 4px rgba(0,0,0,0.3);
        }

        .header p {
            font-size: 1.2rem;
            opacity: 0.9;
        }

        .card {
            background: rgba(255, 255, 255, 0.95);
            border-radius: 12px;
            padding: 1.5rem;
            margin-bottom: 1.5rem;
            box-shadow: 0 4px 12px rgba(0,0,0,0.15);
        }

        .card h2 {
            margin-bottom: 1rem;
            color: #00753a;
        }

        .endpoint {
            font-family: 'SF Mono', Menlo, Consolas, monospace;
            font-size: 0.9rem;
            padding: 0.4rem 0.6rem;
            margin: 0.3rem 0;
            background: #f7fafc;
            border-left: 3px solid #00753a;
            border-radius: 4px;
        }

        .endpoint span {
            color: #718096;
            margin-left: 0.75rem;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>&#9917; NPFL Pulse</h1>
            <p>Live Nigerian Professional Football League dashboard API &mdash; v%s</p>
        </div>

        <div class="card">
            <h2>Matches</h2>
            %s
        </div>

        <div class="card">
            <h2>Live Feed</h2>
            %s
        </div>

        <div class="card">
            <h2>Reference &amp; System</h2>
            %s
        </div>
    </div>
</body>
</html>`

type endpointDoc struct {
	Path string
	Desc string
}

var matchEndpoints = []endpointDoc{
	{"GET /api/v1/matches", "today's matches with live status and scores"},
	{"GET /api/v1/matches/{index}", "full match detail: state, timeline, statistics"},
	{"GET /api/v1/matches/{index}/events", "event timeline for one match"},
	{"GET /api/v1/matches/{index}/stats", "possession, shots, corners and more"},
}

var feedEndpoints = []endpointDoc{
	{"GET /api/v1/feed", "the 20 most recent live events across all matches"},
	{"GET /api/v1/live", "websocket feed, optional ?match_id= filter"},
}

var referenceEndpoints = []endpointDoc{
	{"GET /api/v1/teams", "the NPFL team registry"},
	{"GET /api/v1/teams/{id}", "one team with roster"},
	{"GET /api/v1/fixtures", "today's fixture set"},
	{"GET /api/v1/fixtures/sets", "all rotating fixture sets"},
	{"GET /api/v1/health", "service health snapshot"},
	{"GET /metrics", "prometheus metrics"},
}

func renderEndpoints(docs []endpointDoc) string {
	var b strings.Builder
	for _, d := range docs {
		fmt.Fprintf(&b, `<div class="endpoint">%s<span>%s</span></div>`+"\n", d.Path, d.Desc)
	}
	return b.String()
}

func (a *API) serveHomepage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, homepageTemplate,
		appVersion,
		renderEndpoints(matchEndpoints),
		renderEndpoints(feedEndpoints),
		renderEndpoints(referenceEndpoints),
	)
}
