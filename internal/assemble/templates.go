package assemble

// pageTemplate is the Go html/template shell for pages converted from
// Markdown sources. HTML sources keep their own shells and only receive
// injections.
const pageTemplate = `<!DOCTYPE html>
<html lang="de">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} – {{.SiteName}}</title>
  <link rel="stylesheet" href="{{.BasePath}}{{.Stylesheet}}">
{{- if .LiveReload}}
  <meta name="dashsite-livereload" content="on">
{{- end}}
</head>
<body>
{{.NavHTML}}
<main class="page">
{{.CrumbHTML}}
<article class="page-content">
{{.Content}}
</article>
<footer class="page-footer">Stand: {{.Generated}}</footer>
</main>
<script src="{{.BasePath}}{{.Script}}"></script>
</body>
</html>`

// cssContent is the shared stylesheet written into every build.
const cssContent = `/* ============ Variables ============ */
:root {
  --bg: #ffffff;
  --bg-panel: #f6f8fa;
  --text: #1f2328;
  --text-muted: #656d76;
  --border: #d0d7de;
  --accent: #0969da;
  --accent-bg: #ddf4ff;
  --online: #1a7f37;
  --online-bg: #dafbe1;
  --offline: #cf222e;
  --offline-bg: #ffebe9;
  --gain: #1a7f37;
  --loss: #cf222e;
  --nav-bg: #24292f;
  --nav-text: #f6f8fa;
}

* { box-sizing: border-box; }

body {
  margin: 0;
  font-family: -apple-system, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
  color: var(--text);
  background: var(--bg);
  line-height: 1.5;
}

/* ============ Navigation bar ============ */
.site-nav {
  display: flex;
  align-items: center;
  gap: 1.25rem;
  padding: 0.6rem 1.25rem;
  background: var(--nav-bg);
  color: var(--nav-text);
}

.nav-brand {
  color: var(--nav-text);
  font-weight: 600;
  text-decoration: none;
  margin-right: auto;
}

.nav-links { display: flex; gap: 0.25rem; }

.nav-link {
  color: var(--nav-text);
  text-decoration: none;
  padding: 0.3rem 0.75rem;
  border-radius: 6px;
  opacity: 0.85;
}

.nav-link:hover { background: rgba(255,255,255,0.12); opacity: 1; }

.nav-link.active {
  background: rgba(255,255,255,0.18);
  opacity: 1;
  font-weight: 600;
}

/* ============ Breadcrumb ============ */
.breadcrumb {
  padding: 0.5rem 1.25rem;
  font-size: 0.85rem;
  color: var(--text-muted);
}

.breadcrumb .crumb-link { color: var(--accent); text-decoration: none; }
.breadcrumb .crumb-link:hover { text-decoration: underline; }
.breadcrumb .crumb-sep { margin: 0 0.4rem; }
.breadcrumb .crumb-current { color: var(--text); font-weight: 500; }

/* ============ Page body ============ */
.page { max-width: 1080px; margin: 0 auto; padding: 1rem 1.25rem 3rem; }
body.fullwidth .page { max-width: none; }
.page-content h1 { border-bottom: 1px solid var(--border); padding-bottom: 0.3rem; }
.page-content pre { background: var(--bg-panel); padding: 0.75rem 1rem; border-radius: 6px; overflow-x: auto; }
.page-content code { font-family: ui-monospace, SFMono-Regular, Menlo, Consolas, monospace; font-size: 0.9em; }
.page-content table { border-collapse: collapse; width: 100%; }
.page-content th, .page-content td { border: 1px solid var(--border); padding: 0.4rem 0.6rem; text-align: left; }
.page-content tr:nth-child(even) { background: var(--bg-panel); }
.page-footer { margin-top: 2rem; font-size: 0.8rem; color: var(--text-muted); }

/* ============ Status badges & tiles ============ */
.status-badges { display: flex; gap: 0.5rem; flex-wrap: wrap; margin: 0.5rem 0; }

.badge {
  display: inline-block;
  padding: 0.2rem 0.6rem;
  border-radius: 999px;
  font-size: 0.8rem;
  font-weight: 600;
}

.badge-online { color: var(--online); background: var(--online-bg); }
.badge-offline { color: var(--offline); background: var(--offline-bg); }

.status-tiles { display: flex; gap: 0.75rem; flex-wrap: wrap; margin: 0.5rem 0; }

.tile {
  display: flex;
  flex-direction: column;
  min-width: 7rem;
  padding: 0.6rem 0.9rem;
  background: var(--bg-panel);
  border: 1px solid var(--border);
  border-radius: 6px;
}

.tile-label { font-size: 0.75rem; color: var(--text-muted); text-transform: uppercase; }
.tile-value { font-size: 1.15rem; font-weight: 600; font-variant-numeric: tabular-nums; }

.status-meta { font-size: 0.8rem; color: var(--text-muted); margin: 0.25rem 0; }
.status-meta .status-availability + .status-stand { margin-left: 0.75rem; }

/* ============ Profit/loss ============ */
.pl-positive { color: var(--gain); font-weight: 600; }
.pl-negative { color: var(--loss); font-weight: 600; }
.pl-flat { color: var(--text-muted); }

/* ============ Utility widgets ============ */
#clock { font-variant-numeric: tabular-nums; }
#page-switcher { max-width: 18rem; }
`

// jsContent is the shared client script: clock tick, status refresh,
// fullwidth toggle, and the page quick-switcher. It finds the site root the
// same way the pages do: from the injected stylesheet reference.
const jsContent = `(function() {
  "use strict";

  // ===== Base path from the injected stylesheet =====
  function basePath() {
    var link = document.querySelector("link[rel=stylesheet]");
    if (!link) return "./";
    var href = link.getAttribute("href") || "";
    var idx = href.lastIndexOf("/");
    return idx === -1 ? "./" : href.slice(0, idx + 1);
  }

  // ===== Clock =====
  var clock = document.getElementById("clock");
  if (clock) {
    var tick = function() {
      clock.textContent = new Date().toLocaleTimeString("de-DE");
    };
    tick();
    setInterval(tick, 1000);
  }

  // ===== Fullwidth toggle =====
  var fullwidthToggle = document.getElementById("fullwidth-toggle");
  if (fullwidthToggle) {
    try {
      if (localStorage.getItem("dashsite-fullwidth") === "1") {
        document.body.classList.add("fullwidth");
      }
    } catch (e) {}
    fullwidthToggle.addEventListener("click", function() {
      var on = document.body.classList.toggle("fullwidth");
      try { localStorage.setItem("dashsite-fullwidth", on ? "1" : "0"); } catch (e) {}
    });
  }

  // ===== Status refresh =====
  // The dev server renders the fragment; without it the containers keep
  // whatever the page shipped with.
  var badges = document.getElementById("status-badges");
  var tiles = document.getElementById("status-tiles");
  var meta = document.getElementById("status-meta");

  function refreshStatus() {
    fetch("/fragment/status")
      .then(function(r) {
        if (!r.ok) throw new Error("status " + r.status);
        return r.text();
      })
      .then(function(html) {
        var wrap = document.createElement("div");
        wrap.innerHTML = html;
        var b = wrap.querySelector(".status-badges");
        var t = wrap.querySelector(".status-tiles");
        var m = wrap.querySelector(".status-meta");
        if (badges && b) badges.innerHTML = b.innerHTML;
        if (tiles && t) tiles.innerHTML = t.innerHTML;
        if (meta && m) meta.innerHTML = m.innerHTML;
      })
      .catch(function() { /* offline or statically hosted: keep markup */ });
  }

  if (badges || tiles || meta) {
    refreshStatus();
    setInterval(refreshStatus, 30000);
  }

  // ===== Page quick-switcher =====
  var switcher = document.getElementById("page-switcher");
  if (switcher) {
    fetch(basePath() + "pages.json")
      .then(function(r) { return r.json(); })
      .then(function(pages) {
        pages.forEach(function(p) {
          var opt = document.createElement("option");
          opt.value = p.path;
          opt.textContent = p.title;
          switcher.appendChild(opt);
        });
        switcher.addEventListener("change", function() {
          if (switcher.value) window.location.href = basePath() + switcher.value;
        });
      })
      .catch(function() { switcher.disabled = true; });
  }

  // ===== Live reload (dev server only) =====
  var lr = document.querySelector("meta[name=dashsite-livereload]");
  if (lr && lr.getAttribute("content") === "on" && "WebSocket" in window) {
    var proto = window.location.protocol === "https:" ? "wss://" : "ws://";
    var ws = new WebSocket(proto + window.location.host + "/livereload");
    ws.onmessage = function(ev) {
      if (ev.data === "reload") window.location.reload();
    };
  }
})();
`
